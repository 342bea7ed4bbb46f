package shipment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/matheusmosca/brewery-orders-service/internal/postgres"
)

// Repository is the shipment gateway.
type Repository interface {
	CreateShipment(ctx context.Context, s *BeerOrderShipment) error
	// GetShipment returns pgx.ErrNoRows (wrapped) when id does not exist
	GetShipment(ctx context.Context, id int) (*BeerOrderShipment, error)
	ListShipments(ctx context.Context) ([]BeerOrderShipment, error)
	ListShipmentsByOrder(ctx context.Context, orderID int) ([]BeerOrderShipment, error)
	// UpdateShipment writes every column including beer_order_id if s.Version is current
	UpdateShipment(ctx context.Context, s *BeerOrderShipment) error
	DeleteShipment(ctx context.Context, id int) (bool, error)
}

// PostgresShipmentRepository implements Repository on PostgreSQL.
type PostgresShipmentRepository struct {
	db *postgres.DB
}

// NewPostgresShipmentRepository creates a PostgresShipmentRepository.
func NewPostgresShipmentRepository(db *postgres.DB) *PostgresShipmentRepository {
	return &PostgresShipmentRepository{db: db}
}

const shipmentColumns = `id, version, shipment_date, carrier, tracking_number, beer_order_id, created_date, update_date`

func scanShipment(row pgx.Row, s *BeerOrderShipment) error {
	return row.Scan(&s.ID, &s.Version, &s.ShipmentDate.Time, &s.Carrier, &s.TrackingNumber, &s.BeerOrderID,
		&s.CreatedDate, &s.UpdateDate)
}

func (r *PostgresShipmentRepository) CreateShipment(ctx context.Context, s *BeerOrderShipment) error {
	err := r.db.Conn(ctx).QueryRow(ctx, `
		INSERT INTO beer_order_shipment (shipment_date, carrier, tracking_number, beer_order_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, version, created_date, update_date
	`, s.ShipmentDate.Time, s.Carrier, s.TrackingNumber, s.BeerOrderID).
		Scan(&s.ID, &s.Version, &s.CreatedDate, &s.UpdateDate)
	if err != nil {
		return fmt.Errorf("failed to insert shipment: %w", postgres.Classify(err, "BeerOrderShipment"))
	}
	return nil
}

func (r *PostgresShipmentRepository) GetShipment(ctx context.Context, id int) (*BeerOrderShipment, error) {
	var s BeerOrderShipment
	row := r.db.Conn(ctx).QueryRow(ctx, `SELECT `+shipmentColumns+` FROM beer_order_shipment WHERE id = $1`, id)
	if err := scanShipment(row, &s); err != nil {
		return nil, fmt.Errorf("failed to get shipment %d: %w", id, err)
	}
	return &s, nil
}

func (r *PostgresShipmentRepository) ListShipments(ctx context.Context) ([]BeerOrderShipment, error) {
	return r.list(ctx, `SELECT `+shipmentColumns+` FROM beer_order_shipment ORDER BY id`)
}

func (r *PostgresShipmentRepository) ListShipmentsByOrder(ctx context.Context, orderID int) ([]BeerOrderShipment, error) {
	return r.list(ctx, `SELECT `+shipmentColumns+` FROM beer_order_shipment WHERE beer_order_id = $1 ORDER BY id`, orderID)
}

func (r *PostgresShipmentRepository) UpdateShipment(ctx context.Context, s *BeerOrderShipment) error {
	err := r.db.Conn(ctx).QueryRow(ctx, `
		UPDATE beer_order_shipment
		SET shipment_date = $1, carrier = $2, tracking_number = $3, beer_order_id = $4,
		    version = version + 1, update_date = NOW()
		WHERE id = $5 AND version = $6
		RETURNING version, update_date
	`, s.ShipmentDate.Time, s.Carrier, s.TrackingNumber, s.BeerOrderID, s.ID, s.Version).
		Scan(&s.Version, &s.UpdateDate)
	if postgres.IsNotFound(err) {
		err = postgres.ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("failed to update shipment %d: %w", s.ID, postgres.Classify(err, "BeerOrderShipment"))
	}
	return nil
}

func (r *PostgresShipmentRepository) DeleteShipment(ctx context.Context, id int) (bool, error) {
	tag, err := r.db.Conn(ctx).Exec(ctx, `DELETE FROM beer_order_shipment WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete shipment %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresShipmentRepository) list(ctx context.Context, query string, args ...any) ([]BeerOrderShipment, error) {
	rows, err := r.db.Conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}

	shipments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (BeerOrderShipment, error) {
		var s BeerOrderShipment
		err := scanShipment(row, &s)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read shipments: %w", err)
	}
	if shipments == nil {
		shipments = []BeerOrderShipment{}
	}
	return shipments, nil
}
