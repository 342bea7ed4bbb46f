package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/matheusmosca/brewery-orders-service/internal/postgres"
)

// Repository is the gateway for orders and their lines.
type Repository interface {
	// CreateOrder inserts the order and every line. Call it inside a unit of work.
	CreateOrder(ctx context.Context, o *BeerOrder) error

	// GetOrder returns the order with its lines, or pgx.ErrNoRows (wrapped)
	GetOrder(ctx context.Context, id int) (*BeerOrder, error)

	ListOrders(ctx context.Context) ([]BeerOrder, error)
	ListOrdersByCustomer(ctx context.Context, customerID int) ([]BeerOrder, error)

	// UpdateOrderStatus writes o.OrderStatus if o.Version is still current
	UpdateOrderStatus(ctx context.Context, o *BeerOrder) error

	// DeleteOrder removes the order; lines and shipments go with it
	DeleteOrder(ctx context.Context, id int) (bool, error)

	OrderExists(ctx context.Context, id int) (bool, error)
}

// PostgresOrderRepository implements Repository on PostgreSQL.
type PostgresOrderRepository struct {
	db *postgres.DB
}

// NewPostgresOrderRepository creates a PostgresOrderRepository.
func NewPostgresOrderRepository(db *postgres.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

const orderColumns = `id, version, customer_id, order_status, created_date, update_date`

func scanOrder(row pgx.Row, o *BeerOrder) error {
	return row.Scan(&o.ID, &o.Version, &o.CustomerID, &o.OrderStatus, &o.CreatedDate, &o.UpdateDate)
}

func (r *PostgresOrderRepository) CreateOrder(ctx context.Context, o *BeerOrder) error {
	conn := r.db.Conn(ctx)

	err := conn.QueryRow(ctx, `
		INSERT INTO beer_order (customer_id, order_status)
		VALUES ($1, $2)
		RETURNING id, version, created_date, update_date
	`, o.CustomerID, o.OrderStatus).Scan(&o.ID, &o.Version, &o.CreatedDate, &o.UpdateDate)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", postgres.Classify(err, "BeerOrder"))
	}

	for i := range o.OrderLines {
		l := &o.OrderLines[i]
		l.BeerOrderID = o.ID
		err := conn.QueryRow(ctx, `
			INSERT INTO order_line (order_quantity, beer_id, beer_order_id)
			VALUES ($1, $2, $3)
			RETURNING id, version, created_date, update_date
		`, l.OrderQuantity, l.BeerID, l.BeerOrderID).Scan(&l.ID, &l.Version, &l.CreatedDate, &l.UpdateDate)
		if err != nil {
			return fmt.Errorf("failed to insert order line for beer %d: %w", l.BeerID, postgres.Classify(err, "OrderLine"))
		}
	}
	return nil
}

func (r *PostgresOrderRepository) GetOrder(ctx context.Context, id int) (*BeerOrder, error) {
	var o BeerOrder
	row := r.db.Conn(ctx).QueryRow(ctx, `SELECT `+orderColumns+` FROM beer_order WHERE id = $1`, id)
	if err := scanOrder(row, &o); err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}

	lines, err := r.loadLines(ctx, []int{o.ID})
	if err != nil {
		return nil, err
	}
	o.OrderLines = lines[o.ID]
	if o.OrderLines == nil {
		o.OrderLines = []OrderLine{}
	}
	return &o, nil
}

func (r *PostgresOrderRepository) ListOrders(ctx context.Context) ([]BeerOrder, error) {
	return r.listOrders(ctx, `SELECT `+orderColumns+` FROM beer_order ORDER BY id`)
}

func (r *PostgresOrderRepository) ListOrdersByCustomer(ctx context.Context, customerID int) ([]BeerOrder, error) {
	return r.listOrders(ctx, `SELECT `+orderColumns+` FROM beer_order WHERE customer_id = $1 ORDER BY id`, customerID)
}

func (r *PostgresOrderRepository) UpdateOrderStatus(ctx context.Context, o *BeerOrder) error {
	err := r.db.Conn(ctx).QueryRow(ctx, `
		UPDATE beer_order
		SET order_status = $1, version = version + 1, update_date = NOW()
		WHERE id = $2 AND version = $3
		RETURNING version, update_date
	`, o.OrderStatus, o.ID, o.Version).Scan(&o.Version, &o.UpdateDate)
	if postgres.IsNotFound(err) {
		err = postgres.ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("failed to update order %d: %w", o.ID, postgres.Classify(err, "BeerOrder"))
	}
	return nil
}

func (r *PostgresOrderRepository) DeleteOrder(ctx context.Context, id int) (bool, error) {
	tag, err := r.db.Conn(ctx).Exec(ctx, `DELETE FROM beer_order WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete order %d: %w", id, postgres.Classify(err, "BeerOrder"))
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresOrderRepository) OrderExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.Conn(ctx).QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM beer_order WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check order %d: %w", id, err)
	}
	return exists, nil
}

func (r *PostgresOrderRepository) listOrders(ctx context.Context, query string, args ...any) ([]BeerOrder, error) {
	rows, err := r.db.Conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (BeerOrder, error) {
		var o BeerOrder
		err := scanOrder(row, &o)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	if len(orders) == 0 {
		return []BeerOrder{}, nil
	}

	ids := make([]int, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	lines, err := r.loadLines(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].OrderLines = lines[orders[i].ID]
		if orders[i].OrderLines == nil {
			orders[i].OrderLines = []OrderLine{}
		}
	}
	return orders, nil
}

// loadLines fetches the lines of the given orders keyed by order id, each
// with the name of the beer it points to.
func (r *PostgresOrderRepository) loadLines(ctx context.Context, orderIDs []int) (map[int][]OrderLine, error) {
	rows, err := r.db.Conn(ctx).Query(ctx, `
		SELECT ol.id, ol.version, ol.beer_order_id, ol.beer_id, b.beer_name, ol.order_quantity,
		       ol.created_date, ol.update_date
		FROM order_line ol
		JOIN beer b ON b.id = ol.beer_id
		WHERE ol.beer_order_id = ANY($1)
		ORDER BY ol.beer_order_id, ol.id
	`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load order lines: %w", err)
	}
	defer rows.Close()

	lines := make(map[int][]OrderLine, len(orderIDs))
	for rows.Next() {
		var l OrderLine
		if err := rows.Scan(&l.ID, &l.Version, &l.BeerOrderID, &l.BeerID, &l.BeerName, &l.OrderQuantity,
			&l.CreatedDate, &l.UpdateDate); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines[l.BeerOrderID] = append(lines[l.BeerOrderID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order lines: %w", err)
	}
	return lines, nil
}
