package beer

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/matheusmosca/brewery-orders-service/internal/paging"
	"github.com/matheusmosca/brewery-orders-service/internal/postgres"
)

// Repository is the beer gateway.
type Repository interface {
	// CreateBeer inserts b and fills in the generated id, version and dates
	CreateBeer(ctx context.Context, b *Beer) error

	// GetBeer returns pgx.ErrNoRows (wrapped) when id does not exist
	GetBeer(ctx context.Context, id int) (*Beer, error)

	// ListBeers returns every beer ordered by id
	ListBeers(ctx context.Context) ([]Beer, error)

	// FindBeers returns one page of beers matching f
	FindBeers(ctx context.Context, f Filter, req paging.Request) (paging.Page[Beer], error)

	// UpdateBeer writes b if its version is still current and bumps it
	UpdateBeer(ctx context.Context, b *Beer) error

	// DeleteBeer reports whether a row was removed
	DeleteBeer(ctx context.Context, id int) (bool, error)
}

// PostgresBeerRepository implements Repository on PostgreSQL.
type PostgresBeerRepository struct {
	db *postgres.DB
}

// NewPostgresBeerRepository creates a PostgresBeerRepository.
func NewPostgresBeerRepository(db *postgres.DB) *PostgresBeerRepository {
	return &PostgresBeerRepository{db: db}
}

// beerColumns lists the columns Beer is scanned from by its db tags.
const beerColumns = `id, version, beer_name, beer_style, description, upc, quantity_on_hand, price, created_date, update_date`

func (r *PostgresBeerRepository) CreateBeer(ctx context.Context, b *Beer) error {
	err := r.db.Conn(ctx).QueryRow(ctx, `
		INSERT INTO beer (beer_name, beer_style, description, upc, quantity_on_hand, price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, version, created_date, update_date
	`, b.BeerName, b.BeerStyle, b.Description, b.UPC, b.QuantityOnHand, b.Price).
		Scan(&b.ID, &b.Version, &b.CreatedDate, &b.UpdateDate)
	if err != nil {
		return fmt.Errorf("failed to insert beer: %w", postgres.Classify(err, "Beer"))
	}
	return nil
}

func (r *PostgresBeerRepository) GetBeer(ctx context.Context, id int) (*Beer, error) {
	rows, err := r.db.Conn(ctx).Query(ctx, `SELECT `+beerColumns+` FROM beer WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get beer %d: %w", id, err)
	}

	b, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[Beer])
	if err != nil {
		return nil, fmt.Errorf("failed to get beer %d: %w", id, err)
	}
	return &b, nil
}

func (r *PostgresBeerRepository) ListBeers(ctx context.Context) ([]Beer, error) {
	rows, err := r.db.Conn(ctx).Query(ctx, `SELECT `+beerColumns+` FROM beer ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list beers: %w", err)
	}
	return collectBeers(rows)
}

func (r *PostgresBeerRepository) FindBeers(ctx context.Context, f Filter, req paging.Request) (paging.Page[Beer], error) {
	where, args := filterClause(f)
	conn := r.db.Conn(ctx)

	var total int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM beer`+where, args...).Scan(&total); err != nil {
		return paging.Page[Beer]{}, fmt.Errorf("failed to count beers: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM beer%s %s LIMIT $%d OFFSET $%d`,
		beerColumns, where, req.OrderBy(), len(args)+1, len(args)+2)
	rows, err := conn.Query(ctx, query, append(args, req.Size, req.Offset())...)
	if err != nil {
		return paging.Page[Beer]{}, fmt.Errorf("failed to find beers: %w", err)
	}

	beers, err := collectBeers(rows)
	if err != nil {
		return paging.Page[Beer]{}, err
	}
	return paging.NewPage(beers, total, req), nil
}

func (r *PostgresBeerRepository) UpdateBeer(ctx context.Context, b *Beer) error {
	err := r.db.Conn(ctx).QueryRow(ctx, `
		UPDATE beer
		SET beer_name = $1, beer_style = $2, description = $3, upc = $4,
		    quantity_on_hand = $5, price = $6, version = version + 1, update_date = NOW()
		WHERE id = $7 AND version = $8
		RETURNING version, update_date
	`, b.BeerName, b.BeerStyle, b.Description, b.UPC, b.QuantityOnHand, b.Price, b.ID, b.Version).
		Scan(&b.Version, &b.UpdateDate)
	if postgres.IsNotFound(err) {
		err = postgres.ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("failed to update beer %d: %w", b.ID, postgres.Classify(err, "Beer"))
	}
	return nil
}

func (r *PostgresBeerRepository) DeleteBeer(ctx context.Context, id int) (bool, error) {
	tag, err := r.db.Conn(ctx).Exec(ctx, `DELETE FROM beer WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete beer %d: %w", id, postgres.Classify(err, "Beer"))
	}
	return tag.RowsAffected() > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches column against the literal text in placeholder n.
func containsPattern(column string, n int) string {
	return fmt.Sprintf(`%s ILIKE '%%' || $%d || '%%' ESCAPE '\'`, column, n)
}

// filterClause builds the WHERE clause for f. Both filters are literal
// substring matches that ignore case.
func filterClause(f Filter) (string, []any) {
	switch {
	case f.BeerName != "" && f.BeerStyle != "":
		return " WHERE " + containsPattern("beer_name", 1) + " AND " + containsPattern("beer_style", 2),
			[]any{likeEscaper.Replace(f.BeerName), likeEscaper.Replace(f.BeerStyle)}
	case f.BeerName != "":
		return " WHERE " + containsPattern("beer_name", 1), []any{likeEscaper.Replace(f.BeerName)}
	case f.BeerStyle != "":
		return " WHERE " + containsPattern("beer_style", 1), []any{likeEscaper.Replace(f.BeerStyle)}
	default:
		return "", nil
	}
}

func collectBeers(rows pgx.Rows) ([]Beer, error) {
	beers, err := pgx.CollectRows(rows, pgx.RowToStructByName[Beer])
	if err != nil {
		return nil, fmt.Errorf("failed to read beers: %w", err)
	}
	return beers, nil
}
