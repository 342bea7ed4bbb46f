package order

// ToDTO maps an order and its lines to the wire shape.
func ToDTO(o *BeerOrder) BeerOrderDTO {
	created := o.CreatedDate
	updated := o.UpdateDate
	customerID := o.CustomerID

	lines := make([]OrderLineDTO, 0, len(o.OrderLines))
	for i := range o.OrderLines {
		lines = append(lines, lineToDTO(&o.OrderLines[i]))
	}

	return BeerOrderDTO{
		ID:          o.ID,
		Version:     o.Version,
		OrderStatus: o.OrderStatus,
		CreatedDate: &created,
		UpdateDate:  &updated,
		CustomerID:  &customerID,
		OrderLines:  lines,
	}
}

func lineToDTO(l *OrderLine) OrderLineDTO {
	qty := l.OrderQuantity
	beerID := l.BeerID
	return OrderLineDTO{
		ID:            l.ID,
		OrderQuantity: &qty,
		BeerID:        &beerID,
		BeerName:      l.BeerName,
	}
}

// lineFromRequest builds an unsaved line. The beer reference and name come
// from the resolved beer, not from the request.
func lineFromRequest(req OrderLineRequest, beerID int, beerName string) OrderLine {
	l := OrderLine{BeerID: beerID, BeerName: beerName}
	if req.OrderQuantity != nil {
		l.OrderQuantity = *req.OrderQuantity
	}
	return l
}

func toDTOs(orders []BeerOrder) []BeerOrderDTO {
	out := make([]BeerOrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, ToDTO(&orders[i]))
	}
	return out
}
