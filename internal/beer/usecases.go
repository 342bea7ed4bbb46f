package beer

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/matheusmosca/brewery-orders-service/internal/apperr"
	"github.com/matheusmosca/brewery-orders-service/internal/paging"
	"github.com/matheusmosca/brewery-orders-service/internal/postgres"
)

const entityName = "Beer"

// BeerUseCase holds the beer catalog rules.
type BeerUseCase struct {
	repository   Repository
	transactor   postgres.Transactor
	tracer       trace.Tracer
	beersCreated metric.Int64Counter
}

// NewBeerUseCase creates a BeerUseCase.
func NewBeerUseCase(repository Repository, transactor postgres.Transactor, tracer trace.Tracer) *BeerUseCase {
	uc := &BeerUseCase{
		repository: repository,
		transactor: transactor,
		tracer:     tracer,
	}

	counter, err := otel.Meter("brewery/beers").Int64Counter(
		"brewery.beers.created",
		metric.WithDescription("Number of beers added to the catalog"),
	)
	if err != nil {
		zap.S().Warnf("⚠️ Failed to create beers counter: %v", err)
	}
	uc.beersCreated = counter
	return uc
}

// Create stores a new beer.
func (uc *BeerUseCase) Create(ctx context.Context, in BeerDTO) (BeerDTO, error) {
	ctx, span := uc.tracer.Start(ctx, "beers.create")
	defer span.End()

	b := FromDTO(in)
	if err := uc.repository.CreateBeer(ctx, b); err != nil {
		span.RecordError(err)
		return BeerDTO{}, err
	}

	if uc.beersCreated != nil {
		uc.beersCreated.Add(ctx, 1)
	}
	span.SetAttributes(attribute.Int("beer_id", b.ID))
	zap.S().Infof("✅ Beer created: id=%d name=%q", b.ID, b.BeerName)
	return ToDTO(b), nil
}

// GetByID returns the beer or a NotFoundError.
func (uc *BeerUseCase) GetByID(ctx context.Context, id int) (BeerDTO, error) {
	ctx, span := uc.tracer.Start(ctx, "beers.get")
	defer span.End()

	b, err := uc.load(ctx, id)
	if err != nil {
		return BeerDTO{}, err
	}
	return ToDTO(b), nil
}

// ListAll returns every beer, unpaged.
func (uc *BeerUseCase) ListAll(ctx context.Context) ([]BeerDTO, error) {
	ctx, span := uc.tracer.Start(ctx, "beers.list_all")
	defer span.End()

	beers, err := uc.repository.ListBeers(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toDTOs(beers), nil
}

// List returns one page of beers filtered by name and style.
func (uc *BeerUseCase) List(ctx context.Context, q ListQuery) (paging.Page[BeerDTO], error) {
	ctx, span := uc.tracer.Start(ctx, "beers.list")
	defer span.End()

	req, err := paging.Parse(q.Page, q.Size, q.SortField, q.SortDirection, sortColumns)
	if err != nil {
		return paging.Page[BeerDTO]{}, err
	}

	f := Filter{
		BeerName:  strings.TrimSpace(q.BeerName),
		BeerStyle: strings.TrimSpace(q.BeerStyle),
	}
	span.SetAttributes(
		attribute.String("beer_name", f.BeerName),
		attribute.String("beer_style", f.BeerStyle),
		attribute.Int("page", req.Page),
		attribute.Int("size", req.Size),
	)

	page, err := uc.repository.FindBeers(ctx, f, req)
	if err != nil {
		span.RecordError(err)
		return paging.Page[BeerDTO]{}, err
	}
	return paging.Map(page, func(b Beer) BeerDTO { return ToDTO(&b) }), nil
}

// Update replaces name, style, UPC, price and quantity of an existing beer.
func (uc *BeerUseCase) Update(ctx context.Context, id int, in BeerDTO) (BeerDTO, error) {
	ctx, span := uc.tracer.Start(ctx, "beers.update")
	defer span.End()
	span.SetAttributes(attribute.Int("beer_id", id))

	var out BeerDTO
	err := uc.transactor.WithinTx(ctx, func(ctx context.Context) error {
		b, err := uc.load(ctx, id)
		if err != nil {
			return err
		}

		ApplyUpdate(b, FromDTO(in))
		if err := uc.repository.UpdateBeer(ctx, b); err != nil {
			return err
		}
		out = ToDTO(b)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return BeerDTO{}, err
	}

	zap.S().Infof("✅ Beer updated: id=%d version=%d", id, out.Version)
	return out, nil
}

// Patch overwrites only the fields present in p. An empty patch returns the
// current row without writing.
func (uc *BeerUseCase) Patch(ctx context.Context, id int, p BeerPatchDTO) (BeerDTO, error) {
	ctx, span := uc.tracer.Start(ctx, "beers.patch")
	defer span.End()
	span.SetAttributes(attribute.Int("beer_id", id))

	var out BeerDTO
	err := uc.transactor.WithinTx(ctx, func(ctx context.Context) error {
		b, err := uc.load(ctx, id)
		if err != nil {
			return err
		}

		if ApplyPatch(b, p) {
			if err := uc.repository.UpdateBeer(ctx, b); err != nil {
				return err
			}
		}
		out = ToDTO(b)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return BeerDTO{}, err
	}
	return out, nil
}

// Delete removes the beer and reports whether it existed.
func (uc *BeerUseCase) Delete(ctx context.Context, id int) (bool, error) {
	ctx, span := uc.tracer.Start(ctx, "beers.delete")
	defer span.End()
	span.SetAttributes(attribute.Int("beer_id", id))

	deleted, err := uc.repository.DeleteBeer(ctx, id)
	if err != nil {
		span.RecordError(err)
		zap.S().Errorf("❌ Failed to delete beer %d: %v", id, err)
		return false, err
	}
	if deleted {
		zap.S().Infof("🗑️ Beer deleted: id=%d", id)
	}
	return deleted, nil
}

func (uc *BeerUseCase) load(ctx context.Context, id int) (*Beer, error) {
	b, err := uc.repository.GetBeer(ctx, id)
	if postgres.IsNotFound(err) {
		return nil, apperr.NotFound(entityName, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load beer: %w", err)
	}
	return b, nil
}
