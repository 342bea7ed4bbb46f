package order

import "time"

// Order statuses in use. The status is free text; nothing enforces transitions.
const (
	StatusNew        = "NEW"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
)

// BeerOrder is a customer's order. Lines are stored with a reference back to it.
type BeerOrder struct {
	ID          int
	Version     int
	CustomerID  int
	OrderStatus string
	OrderLines  []OrderLine
	CreatedDate time.Time
	UpdateDate  time.Time
}

// OrderLine is one beer and quantity within an order. BeerName is read from
// the beer table and is never stored on the line.
type OrderLine struct {
	ID            int
	Version       int
	BeerOrderID   int
	BeerID        int
	BeerName      string
	OrderQuantity int
	CreatedDate   time.Time
	UpdateDate    time.Time
}

// NewBeerOrder creates an order in the NEW status.
func NewBeerOrder(customerID int) *BeerOrder {
	return &BeerOrder{
		CustomerID:  customerID,
		OrderStatus: StatusNew,
		OrderLines:  []OrderLine{},
	}
}

// AddOrderLine attaches l to the order.
func (o *BeerOrder) AddOrderLine(l OrderLine) {
	l.BeerOrderID = o.ID
	o.OrderLines = append(o.OrderLines, l)
}
