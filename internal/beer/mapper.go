package beer

import (
	"github.com/shopspring/decimal"

	"github.com/matheusmosca/brewery-orders-service/internal/patch"
)

// ToDTO maps a stored beer to its wire shape.
func ToDTO(b *Beer) BeerDTO {
	if b == nil {
		return BeerDTO{}
	}

	qty := b.QuantityOnHand
	price := b.Price
	created := b.CreatedDate
	updated := b.UpdateDate

	dto := BeerDTO{
		ID:             b.ID,
		Version:        b.Version,
		BeerName:       b.BeerName,
		BeerStyle:      b.BeerStyle,
		UPC:            b.UPC,
		QuantityOnHand: &qty,
		Price:          &price,
		CreatedDate:    &created,
		UpdateDate:     &updated,
	}
	if b.Description != nil {
		d := *b.Description
		dto.Description = &d
	}
	return dto
}

// FromDTO builds a new, unsaved beer. id, version and the dates are never
// taken from the input.
func FromDTO(dto BeerDTO) *Beer {
	b := &Beer{
		BeerName:  dto.BeerName,
		BeerStyle: dto.BeerStyle,
		UPC:       dto.UPC,
	}
	if dto.Description != nil {
		d := *dto.Description
		b.Description = &d
	}
	if dto.QuantityOnHand != nil {
		b.QuantityOnHand = *dto.QuantityOnHand
	}
	if dto.Price != nil {
		b.Price = *dto.Price
	}
	return b
}

// ApplyUpdate replaces the fields a full update owns. Description is not one of them.
func ApplyUpdate(dst *Beer, src *Beer) {
	dst.BeerName = src.BeerName
	dst.BeerStyle = src.BeerStyle
	dst.UPC = src.UPC
	dst.Price = src.Price
	dst.QuantityOnHand = src.QuantityOnHand
}

// ApplyPatch overwrites the fields present in p and reports whether any was.
func ApplyPatch(dst *Beer, p BeerPatchDTO) bool {
	return patch.Apply(
		patch.Field(&dst.BeerName, p.BeerName),
		patch.Field(&dst.BeerStyle, p.BeerStyle),
		patch.Nullable(&dst.Description, p.Description),
		patch.Field(&dst.UPC, p.UPC),
		patch.Field(&dst.QuantityOnHand, p.QuantityOnHand),
		patch.Field[decimal.Decimal](&dst.Price, p.Price),
	)
}

func toDTOs(beers []Beer) []BeerDTO {
	out := make([]BeerDTO, 0, len(beers))
	for i := range beers {
		out = append(out, ToDTO(&beers[i]))
	}
	return out
}
