package customer

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/matheusmosca/brewery-orders-service/internal/postgres"
)

// Repository is the customer gateway.
type Repository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	// GetCustomer returns pgx.ErrNoRows (wrapped) when id does not exist
	GetCustomer(ctx context.Context, id int) (*Customer, error)
	ListCustomers(ctx context.Context) ([]Customer, error)
	UpdateCustomer(ctx context.Context, c *Customer) error
	// DeleteCustomer also removes the customer's orders, their lines and shipments
	DeleteCustomer(ctx context.Context, id int) (bool, error)
	CustomerExists(ctx context.Context, id int) (bool, error)
}

// PostgresCustomerRepository implements Repository on PostgreSQL.
type PostgresCustomerRepository struct {
	db *postgres.DB
}

// NewPostgresCustomerRepository creates a PostgresCustomerRepository.
func NewPostgresCustomerRepository(db *postgres.DB) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

const customerColumns = `id, version, name, email, phone, address_line1, address_line2, city, state, postal_code, created_date, update_date`

func scanCustomer(row pgx.Row, c *Customer) error {
	return row.Scan(&c.ID, &c.Version, &c.Name, &c.Email, &c.Phone, &c.AddressLine1, &c.AddressLine2,
		&c.City, &c.State, &c.PostalCode, &c.CreatedDate, &c.UpdateDate)
}

func (r *PostgresCustomerRepository) CreateCustomer(ctx context.Context, c *Customer) error {
	err := r.db.Conn(ctx).QueryRow(ctx, `
		INSERT INTO customer (name, email, phone, address_line1, address_line2, city, state, postal_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, version, created_date, update_date
	`, c.Name, c.Email, c.Phone, c.AddressLine1, c.AddressLine2, c.City, c.State, c.PostalCode).
		Scan(&c.ID, &c.Version, &c.CreatedDate, &c.UpdateDate)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", postgres.Classify(err, "Customer"))
	}
	return nil
}

func (r *PostgresCustomerRepository) GetCustomer(ctx context.Context, id int) (*Customer, error) {
	var c Customer
	row := r.db.Conn(ctx).QueryRow(ctx, `SELECT `+customerColumns+` FROM customer WHERE id = $1`, id)
	if err := scanCustomer(row, &c); err != nil {
		return nil, fmt.Errorf("failed to get customer %d: %w", id, err)
	}
	return &c, nil
}

func (r *PostgresCustomerRepository) ListCustomers(ctx context.Context) ([]Customer, error) {
	rows, err := r.db.Conn(ctx).Query(ctx, `SELECT `+customerColumns+` FROM customer ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []Customer{}
	for rows.Next() {
		var c Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}
	return customers, nil
}

func (r *PostgresCustomerRepository) UpdateCustomer(ctx context.Context, c *Customer) error {
	err := r.db.Conn(ctx).QueryRow(ctx, `
		UPDATE customer
		SET name = $1, email = $2, phone = $3, address_line1 = $4, address_line2 = $5,
		    city = $6, state = $7, postal_code = $8, version = version + 1, update_date = NOW()
		WHERE id = $9 AND version = $10
		RETURNING version, update_date
	`, c.Name, c.Email, c.Phone, c.AddressLine1, c.AddressLine2, c.City, c.State, c.PostalCode, c.ID, c.Version).
		Scan(&c.Version, &c.UpdateDate)
	if postgres.IsNotFound(err) {
		err = postgres.ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("failed to update customer %d: %w", c.ID, postgres.Classify(err, "Customer"))
	}
	return nil
}

func (r *PostgresCustomerRepository) DeleteCustomer(ctx context.Context, id int) (bool, error) {
	tag, err := r.db.Conn(ctx).Exec(ctx, `DELETE FROM customer WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete customer %d: %w", id, postgres.Classify(err, "Customer"))
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresCustomerRepository) CustomerExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.Conn(ctx).QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM customer WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check customer %d: %w", id, err)
	}
	return exists, nil
}
