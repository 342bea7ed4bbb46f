package beer

import (
	"time"

	"github.com/shopspring/decimal"
)

// Beer is a catalog item.
type Beer struct {
	ID             int             `db:"id"`
	Version        int             `db:"version"`
	BeerName       string          `db:"beer_name"`
	BeerStyle      string          `db:"beer_style"`
	Description    *string         `db:"description"`
	UPC            string          `db:"upc"`
	QuantityOnHand int             `db:"quantity_on_hand"`
	Price          decimal.Decimal `db:"price"`
	CreatedDate    time.Time       `db:"created_date"`
	UpdateDate     time.Time       `db:"update_date"`
}

// Filter selects beers by case-insensitive substrings. Blank means unset.
type Filter struct {
	BeerName  string
	BeerStyle string
}

// sortColumns maps the sort fields accepted on the wire to beer columns
var sortColumns = map[string]string{
	"id":             "id",
	"beerName":       "beer_name",
	"beerStyle":      "beer_style",
	"upc":            "upc",
	"price":          "price",
	"quantityOnHand": "quantity_on_hand",
	"createdDate":    "created_date",
	"updateDate":     "update_date",
}
