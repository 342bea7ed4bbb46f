package order

import "time"

// OrderLineRequest is a line of a new order.
type OrderLineRequest struct {
	BeerID        *int `json:"beerId" binding:"required"`
	OrderQuantity *int `json:"orderQuantity" binding:"required,gt=0"`
}

// CreateOrderCommand is the body of POST /orders.
type CreateOrderCommand struct {
	CustomerID *int               `json:"customerId" binding:"required"`
	OrderLines []OrderLineRequest `json:"orderLines" binding:"required,min=1,dive"`
}

// OrderLineDTO is the wire shape of an order line.
type OrderLineDTO struct {
	ID            int    `json:"id"`
	OrderQuantity *int   `json:"orderQuantity" binding:"required,gt=0"`
	BeerID        *int   `json:"beerId" binding:"required"`
	BeerName      string `json:"beerName,omitempty"`
}

// BeerOrderDTO is the wire shape of an order. On PUT only orderStatus is
// applied; the rest is validated but left as stored.
type BeerOrderDTO struct {
	ID          int            `json:"id"`
	Version     int            `json:"version"`
	// OrderStatus must be non-blank on PUT even though the stored order may carry any text.
	OrderStatus string         `json:"orderStatus" binding:"notblank,max=255"`
	CreatedDate *time.Time     `json:"createdDate,omitempty"`
	UpdateDate  *time.Time     `json:"updateDate,omitempty"`
	CustomerID  *int           `json:"customerId" binding:"required"`
	OrderLines  []OrderLineDTO `json:"orderLines" binding:"required,min=1,dive"`
}
