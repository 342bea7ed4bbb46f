package customer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/matheusmosca/brewery-orders-service/internal/apperr"
	"github.com/matheusmosca/brewery-orders-service/internal/postgres"
)

const entityName = "Customer"

// CustomerUseCase holds the customer rules.
type CustomerUseCase struct {
	repository Repository
	transactor postgres.Transactor
	tracer     trace.Tracer
}

// NewCustomerUseCase creates a CustomerUseCase.
func NewCustomerUseCase(repository Repository, transactor postgres.Transactor, tracer trace.Tracer) *CustomerUseCase {
	return &CustomerUseCase{
		repository: repository,
		transactor: transactor,
		tracer:     tracer,
	}
}

func (uc *CustomerUseCase) Create(ctx context.Context, in CustomerDTO) (CustomerDTO, error) {
	ctx, span := uc.tracer.Start(ctx, "customers.create")
	defer span.End()

	c := FromDTO(in)
	if err := uc.repository.CreateCustomer(ctx, c); err != nil {
		span.RecordError(err)
		return CustomerDTO{}, err
	}

	span.SetAttributes(attribute.Int("customer_id", c.ID))
	zap.S().Infof("✅ Customer created: id=%d", c.ID)
	return ToDTO(c), nil
}

func (uc *CustomerUseCase) GetByID(ctx context.Context, id int) (CustomerDTO, error) {
	ctx, span := uc.tracer.Start(ctx, "customers.get")
	defer span.End()

	c, err := uc.load(ctx, id)
	if err != nil {
		return CustomerDTO{}, err
	}
	return ToDTO(c), nil
}

func (uc *CustomerUseCase) ListAll(ctx context.Context) ([]CustomerDTO, error) {
	ctx, span := uc.tracer.Start(ctx, "customers.list_all")
	defer span.End()

	customers, err := uc.repository.ListCustomers(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	out := make([]CustomerDTO, 0, len(customers))
	for i := range customers {
		out = append(out, ToDTO(&customers[i]))
	}
	return out, nil
}

// Update overwrites contact and address fields. The customer's orders are untouched.
func (uc *CustomerUseCase) Update(ctx context.Context, id int, in CustomerDTO) (CustomerDTO, error) {
	ctx, span := uc.tracer.Start(ctx, "customers.update")
	defer span.End()
	span.SetAttributes(attribute.Int("customer_id", id))

	var out CustomerDTO
	err := uc.transactor.WithinTx(ctx, func(ctx context.Context) error {
		c, err := uc.load(ctx, id)
		if err != nil {
			return err
		}

		ApplyUpdate(c, in)
		if err := uc.repository.UpdateCustomer(ctx, c); err != nil {
			return err
		}
		out = ToDTO(c)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return CustomerDTO{}, err
	}

	zap.S().Infof("✅ Customer updated: id=%d version=%d", id, out.Version)
	return out, nil
}

// Delete removes the customer together with its orders.
func (uc *CustomerUseCase) Delete(ctx context.Context, id int) (bool, error) {
	ctx, span := uc.tracer.Start(ctx, "customers.delete")
	defer span.End()
	span.SetAttributes(attribute.Int("customer_id", id))

	deleted, err := uc.repository.DeleteCustomer(ctx, id)
	if err != nil {
		span.RecordError(err)
		zap.S().Errorf("❌ Failed to delete customer %d: %v", id, err)
		return false, err
	}
	if deleted {
		zap.S().Infof("🗑️ Customer deleted with its orders: id=%d", id)
	}
	return deleted, nil
}

func (uc *CustomerUseCase) load(ctx context.Context, id int) (*Customer, error) {
	c, err := uc.repository.GetCustomer(ctx, id)
	if postgres.IsNotFound(err) {
		return nil, apperr.NotFound(entityName, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	return c, nil
}
