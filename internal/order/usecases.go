package order

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/matheusmosca/brewery-orders-service/internal/apperr"
	"github.com/matheusmosca/brewery-orders-service/internal/beer"
	"github.com/matheusmosca/brewery-orders-service/internal/postgres"
)

const entityName = "BeerOrder"

// CustomerLookup checks that an order's customer exists.
type CustomerLookup interface {
	CustomerExists(ctx context.Context, id int) (bool, error)
}

// BeerLookup resolves the beer an order line points to.
type BeerLookup interface {
	GetBeer(ctx context.Context, id int) (*beer.Beer, error)
}

// OrderUseCase holds the order rules.
type OrderUseCase struct {
	repository    Repository
	customers     CustomerLookup
	beers         BeerLookup
	transactor    postgres.Transactor
	tracer        trace.Tracer
	ordersCreated metric.Int64Counter
}

// NewOrderUseCase creates an OrderUseCase.
func NewOrderUseCase(
	repository Repository,
	customers CustomerLookup,
	beers BeerLookup,
	transactor postgres.Transactor,
	tracer trace.Tracer,
) *OrderUseCase {
	uc := &OrderUseCase{
		repository: repository,
		customers:  customers,
		beers:      beers,
		transactor: transactor,
		tracer:     tracer,
	}

	counter, err := otel.Meter("brewery/orders").Int64Counter(
		"brewery.orders.created",
		metric.WithDescription("Number of beer orders placed"),
	)
	if err != nil {
		zap.S().Warnf("⚠️ Failed to create orders counter: %v", err)
	}
	uc.ordersCreated = counter
	return uc
}

// Create places a NEW order for an existing customer. Every beer is
// resolved before anything is written; a missing customer or beer leaves
// the store untouched.
func (uc *OrderUseCase) Create(ctx context.Context, cmd CreateOrderCommand) (BeerOrderDTO, error) {
	ctx, span := uc.tracer.Start(ctx, "orders.create")
	defer span.End()

	if cmd.CustomerID == nil {
		return BeerOrderDTO{}, apperr.Validation("customerId", "customerId is required")
	}
	customerID := *cmd.CustomerID
	span.SetAttributes(
		attribute.Int("customer_id", customerID),
		attribute.Int("order_lines", len(cmd.OrderLines)),
	)

	var o *BeerOrder
	err := uc.transactor.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := uc.customers.CustomerExists(ctx, customerID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("Customer", customerID)
		}

		o = NewBeerOrder(customerID)
		for i, req := range cmd.OrderLines {
			if req.BeerID == nil {
				return apperr.Validation(fmt.Sprintf("orderLines[%d].beerId", i), "beerId is required")
			}
			b, err := uc.beers.GetBeer(ctx, *req.BeerID)
			if postgres.IsNotFound(err) {
				return apperr.NotFound("Beer", *req.BeerID)
			}
			if err != nil {
				return fmt.Errorf("failed to resolve beer %d: %w", *req.BeerID, err)
			}
			o.AddOrderLine(lineFromRequest(req, b.ID, b.BeerName))
		}

		return uc.repository.CreateOrder(ctx, o)
	})
	if err != nil {
		span.RecordError(err)
		zap.S().Errorf("❌ Failed to create order for customer %d: %v", customerID, err)
		return BeerOrderDTO{}, err
	}

	if uc.ordersCreated != nil {
		uc.ordersCreated.Add(ctx, 1)
	}
	span.SetAttributes(attribute.Int("order_id", o.ID))
	zap.S().Infof("✅ Order created: id=%d customer=%d lines=%d", o.ID, customerID, len(o.OrderLines))
	return ToDTO(o), nil
}

func (uc *OrderUseCase) GetByID(ctx context.Context, id int) (BeerOrderDTO, error) {
	ctx, span := uc.tracer.Start(ctx, "orders.get")
	defer span.End()

	o, err := uc.load(ctx, id)
	if err != nil {
		return BeerOrderDTO{}, err
	}
	return ToDTO(o), nil
}

func (uc *OrderUseCase) ListAll(ctx context.Context) ([]BeerOrderDTO, error) {
	ctx, span := uc.tracer.Start(ctx, "orders.list_all")
	defer span.End()

	orders, err := uc.repository.ListOrders(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toDTOs(orders), nil
}

// ListByCustomerID returns the customer's orders; an unknown customer simply has none.
func (uc *OrderUseCase) ListByCustomerID(ctx context.Context, customerID int) ([]BeerOrderDTO, error) {
	ctx, span := uc.tracer.Start(ctx, "orders.list_by_customer")
	defer span.End()
	span.SetAttributes(attribute.Int("customer_id", customerID))

	orders, err := uc.repository.ListOrdersByCustomer(ctx, customerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toDTOs(orders), nil
}

// Update applies the status of dto. Customer and lines are not changed.
func (uc *OrderUseCase) Update(ctx context.Context, id int, dto BeerOrderDTO) (BeerOrderDTO, error) {
	return uc.setStatus(ctx, "orders.update", id, dto.OrderStatus)
}

// UpdateStatus overwrites the status with any value.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id int, status string) (BeerOrderDTO, error) {
	return uc.setStatus(ctx, "orders.update_status", id, status)
}

func (uc *OrderUseCase) Delete(ctx context.Context, id int) (bool, error) {
	ctx, span := uc.tracer.Start(ctx, "orders.delete")
	defer span.End()
	span.SetAttributes(attribute.Int("order_id", id))

	deleted, err := uc.repository.DeleteOrder(ctx, id)
	if err != nil {
		span.RecordError(err)
		return false, err
	}
	if deleted {
		zap.S().Infof("🗑️ Order deleted with its lines and shipments: id=%d", id)
	}
	return deleted, nil
}

func (uc *OrderUseCase) setStatus(ctx context.Context, spanName string, id int, status string) (BeerOrderDTO, error) {
	ctx, span := uc.tracer.Start(ctx, spanName)
	defer span.End()
	span.SetAttributes(attribute.Int("order_id", id), attribute.String("order_status", status))

	var out BeerOrderDTO
	err := uc.transactor.WithinTx(ctx, func(ctx context.Context) error {
		o, err := uc.load(ctx, id)
		if err != nil {
			return err
		}

		previous := o.OrderStatus
		o.OrderStatus = status
		if err := uc.repository.UpdateOrderStatus(ctx, o); err != nil {
			return err
		}

		zap.S().Infof("🔄 Order %d status: %s -> %s", id, previous, status)
		out = ToDTO(o)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return BeerOrderDTO{}, err
	}
	return out, nil
}

func (uc *OrderUseCase) load(ctx context.Context, id int) (*BeerOrder, error) {
	o, err := uc.repository.GetOrder(ctx, id)
	if postgres.IsNotFound(err) {
		return nil, apperr.NotFound(entityName, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return o, nil
}
