package shipment

import "time"

// BeerOrderShipment records one dispatch of a beer order.
type BeerOrderShipment struct {
	ID             int
	Version        int
	ShipmentDate   Date
	Carrier        string
	TrackingNumber string
	BeerOrderID    int
	CreatedDate    time.Time
	UpdateDate     time.Time
}
