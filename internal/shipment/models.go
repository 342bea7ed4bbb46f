package shipment

import "time"

// CreateShipmentCommand is the body of POST /shipments.
type CreateShipmentCommand struct {
	BeerOrderID    *int   `json:"beerOrderId" binding:"required"`
	ShipmentDate   *Date  `json:"shipmentDate" binding:"required"`
	Carrier        string `json:"carrier" binding:"notblank"`
	TrackingNumber string `json:"trackingNumber" binding:"notblank"`
}

// ShipmentDTO is the wire shape of a shipment and the body of PUT /shipments/:id.
type ShipmentDTO struct {
	ID             int        `json:"id"`
	Version        int        `json:"version"`
	ShipmentDate   *Date      `json:"shipmentDate" binding:"required"`
	Carrier        string     `json:"carrier" binding:"notblank"`
	TrackingNumber string     `json:"trackingNumber" binding:"notblank"`
	CreatedDate    *time.Time `json:"createdDate,omitempty"`
	UpdateDate     *time.Time `json:"updateDate,omitempty"`
	BeerOrderID    *int       `json:"beerOrderId" binding:"required"`
}
