package customer

import "time"

// CustomerDTO is the wire shape of a customer.
type CustomerDTO struct {
	ID           int        `json:"id"`
	Version      int        `json:"version"`
	Name         string     `json:"name" binding:"notblank,min=2,max=100"`
	Email        string     `json:"email" binding:"notblank,email"`
	Phone        string     `json:"phone" binding:"notblank,min=5,max=20"`
	AddressLine1 string     `json:"addressLine1" binding:"notblank,max=255"`
	AddressLine2 *string    `json:"addressLine2,omitempty" binding:"omitempty,max=255"`
	City         string     `json:"city" binding:"notblank,max=100"`
	State        string     `json:"state" binding:"notblank,max=50"`
	PostalCode   string     `json:"postalCode" binding:"notblank,max=20"`
	CreatedDate  *time.Time `json:"createdDate,omitempty"`
	UpdateDate   *time.Time `json:"updateDate,omitempty"`
}
