package customer

import "time"

// Customer places beer orders. Its orders reference it through
// beer_order.customer_id and go away with it.
type Customer struct {
	ID           int
	Version      int
	Name         string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 *string
	City         string
	State        string
	PostalCode   string
	CreatedDate  time.Time
	UpdateDate   time.Time
}
