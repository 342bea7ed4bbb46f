package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/matheusmosca/brewery-orders-service/internal/beer"
)

// Smoke creates a beer, reads it back, deletes it and checks it is gone.
func Smoke(ctx context.Context, c *Client) error {
	if err := c.Health(ctx); err != nil {
		return fmt.Errorf("health check: %w", err)
	}

	qty := 12
	price := decimal.RequireFromString("12.99")
	created, err := c.CreateBeer(ctx, beer.BeerDTO{
		BeerName:       "Smoke Test Lager",
		BeerStyle:      "Lager",
		UPC:            "0000000000000",
		QuantityOnHand: &qty,
		Price:          &price,
	})
	if err != nil {
		return fmt.Errorf("create beer: %w", err)
	}
	zap.S().Infof("✅ Created beer id=%d", created.ID)

	got, err := c.GetBeer(ctx, created.ID)
	if err != nil {
		return fmt.Errorf("get beer %d: %w", created.ID, err)
	}
	if got.BeerName != created.BeerName {
		return fmt.Errorf("get beer %d: name %q, want %q", created.ID, got.BeerName, created.BeerName)
	}

	if err := c.DeleteBeer(ctx, created.ID); err != nil {
		return fmt.Errorf("delete beer %d: %w", created.ID, err)
	}

	_, err = c.GetBeer(ctx, created.ID)
	if StatusOf(err) != http.StatusNotFound {
		return fmt.Errorf("get deleted beer %d: expected 404, got %v", created.ID, err)
	}

	zap.S().Infof("✅ Smoke scenario passed against beer id=%d", created.ID)
	return nil
}
