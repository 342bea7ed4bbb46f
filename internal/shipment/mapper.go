package shipment

// ToDTO maps a stored shipment to its wire shape.
func ToDTO(s *BeerOrderShipment) ShipmentDTO {
	date := s.ShipmentDate
	created := s.CreatedDate
	updated := s.UpdateDate
	orderID := s.BeerOrderID

	return ShipmentDTO{
		ID:             s.ID,
		Version:        s.Version,
		ShipmentDate:   &date,
		Carrier:        s.Carrier,
		TrackingNumber: s.TrackingNumber,
		CreatedDate:    &created,
		UpdateDate:     &updated,
		BeerOrderID:    &orderID,
	}
}

// FromCommand builds an unsaved shipment. The order reference is set by the
// caller once the order is known to exist.
func FromCommand(cmd CreateShipmentCommand) *BeerOrderShipment {
	s := &BeerOrderShipment{
		Carrier:        cmd.Carrier,
		TrackingNumber: cmd.TrackingNumber,
	}
	if cmd.ShipmentDate != nil {
		s.ShipmentDate = *cmd.ShipmentDate
	}
	return s
}

// ApplyUpdate copies date, carrier and tracking number. The order reference
// is moved separately.
func ApplyUpdate(s *BeerOrderShipment, dto ShipmentDTO) {
	if dto.ShipmentDate != nil {
		s.ShipmentDate = *dto.ShipmentDate
	}
	s.Carrier = dto.Carrier
	s.TrackingNumber = dto.TrackingNumber
}

func toDTOs(shipments []BeerOrderShipment) []ShipmentDTO {
	out := make([]ShipmentDTO, 0, len(shipments))
	for i := range shipments {
		out = append(out, ToDTO(&shipments[i]))
	}
	return out
}
