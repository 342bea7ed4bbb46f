package beer

import (
	"time"

	"github.com/shopspring/decimal"
)

// BeerDTO is the wire shape for create, update and read. id, version and
// the dates are read-only.
type BeerDTO struct {
	ID             int              `json:"id"`
	Version        int              `json:"version"`
	BeerName       string           `json:"beerName" binding:"notblank"`
	BeerStyle      string           `json:"beerStyle" binding:"notblank"`
	Description    *string          `json:"description,omitempty"`
	UPC            string           `json:"upc" binding:"notblank"`
	QuantityOnHand *int             `json:"quantityOnHand" binding:"required,gt=0"`
	Price          *decimal.Decimal `json:"price" binding:"required,gt=0"`
	CreatedDate    *time.Time       `json:"createdDate,omitempty"`
	UpdateDate     *time.Time       `json:"updateDate,omitempty"`
}

// BeerPatchDTO carries a partial update; nil fields are left alone.
type BeerPatchDTO struct {
	BeerName       *string          `json:"beerName"`
	BeerStyle      *string          `json:"beerStyle"`
	Description    *string          `json:"description"`
	UPC            *string          `json:"upc"`
	QuantityOnHand *int             `json:"quantityOnHand"`
	Price          *decimal.Decimal `json:"price"`
}

// ListQuery are the raw query parameters of GET /beers.
type ListQuery struct {
	BeerName      string `form:"beerName"`
	BeerStyle     string `form:"beerStyle"`
	Page          string `form:"page"`
	Size          string `form:"size"`
	SortField     string `form:"sortField"`
	SortDirection string `form:"sortDirection"`
}
