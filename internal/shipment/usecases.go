package shipment

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/matheusmosca/brewery-orders-service/internal/apperr"
	"github.com/matheusmosca/brewery-orders-service/internal/postgres"
)

const entityName = "BeerOrderShipment"

// OrderLookup checks that a shipment's order exists.
type OrderLookup interface {
	OrderExists(ctx context.Context, id int) (bool, error)
}

// ShipmentUseCase holds the shipment rules.
type ShipmentUseCase struct {
	repository Repository
	orders     OrderLookup
	transactor postgres.Transactor
	tracer     trace.Tracer
	reparented metric.Int64Counter
}

// NewShipmentUseCase creates a ShipmentUseCase.
func NewShipmentUseCase(repository Repository, orders OrderLookup, transactor postgres.Transactor, tracer trace.Tracer) *ShipmentUseCase {
	uc := &ShipmentUseCase{
		repository: repository,
		orders:     orders,
		transactor: transactor,
		tracer:     tracer,
	}

	counter, err := otel.Meter("brewery/shipments").Int64Counter(
		"brewery.shipments.reparented",
		metric.WithDescription("Number of shipments moved to another order"),
	)
	if err != nil {
		zap.S().Warnf("⚠️ Failed to create shipments counter: %v", err)
	}
	uc.reparented = counter
	return uc
}

// Create attaches a new shipment to an existing order.
func (uc *ShipmentUseCase) Create(ctx context.Context, cmd CreateShipmentCommand) (ShipmentDTO, error) {
	ctx, span := uc.tracer.Start(ctx, "shipments.create")
	defer span.End()

	if cmd.BeerOrderID == nil {
		return ShipmentDTO{}, apperr.Validation("beerOrderId", "beerOrderId is required")
	}
	orderID := *cmd.BeerOrderID
	span.SetAttributes(attribute.Int("order_id", orderID))

	s := FromCommand(cmd)
	err := uc.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.requireOrder(ctx, orderID); err != nil {
			return err
		}
		s.BeerOrderID = orderID
		return uc.repository.CreateShipment(ctx, s)
	})
	if err != nil {
		span.RecordError(err)
		return ShipmentDTO{}, err
	}

	zap.S().Infof("🚚 Shipment created: id=%d order=%d carrier=%s", s.ID, orderID, s.Carrier)
	return ToDTO(s), nil
}

func (uc *ShipmentUseCase) GetByID(ctx context.Context, id int) (ShipmentDTO, error) {
	ctx, span := uc.tracer.Start(ctx, "shipments.get")
	defer span.End()

	s, err := uc.load(ctx, id)
	if err != nil {
		return ShipmentDTO{}, err
	}
	return ToDTO(s), nil
}

func (uc *ShipmentUseCase) ListAll(ctx context.Context) ([]ShipmentDTO, error) {
	ctx, span := uc.tracer.Start(ctx, "shipments.list_all")
	defer span.End()

	shipments, err := uc.repository.ListShipments(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toDTOs(shipments), nil
}

// ListByOrderID returns the order's shipments, possibly none.
func (uc *ShipmentUseCase) ListByOrderID(ctx context.Context, orderID int) ([]ShipmentDTO, error) {
	ctx, span := uc.tracer.Start(ctx, "shipments.list_by_order")
	defer span.End()
	span.SetAttributes(attribute.Int("order_id", orderID))

	shipments, err := uc.repository.ListShipmentsByOrder(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toDTOs(shipments), nil
}

// Update overwrites date, carrier and tracking number. When dto names a
// different order the shipment is moved to it, which must exist.
func (uc *ShipmentUseCase) Update(ctx context.Context, id int, dto ShipmentDTO) (ShipmentDTO, error) {
	ctx, span := uc.tracer.Start(ctx, "shipments.update")
	defer span.End()
	span.SetAttributes(attribute.Int("shipment_id", id))

	var (
		out   ShipmentDTO
		moved bool
	)
	err := uc.transactor.WithinTx(ctx, func(ctx context.Context) error {
		s, err := uc.load(ctx, id)
		if err != nil {
			return err
		}

		ApplyUpdate(s, dto)

		if dto.BeerOrderID != nil && *dto.BeerOrderID != s.BeerOrderID {
			target := *dto.BeerOrderID
			if err := uc.requireOrder(ctx, target); err != nil {
				return err
			}
			zap.S().Infof("🔀 Moving shipment %d: order %d -> %d", id, s.BeerOrderID, target)
			s.BeerOrderID = target
			moved = true
		}

		if err := uc.repository.UpdateShipment(ctx, s); err != nil {
			return err
		}
		out = ToDTO(s)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return ShipmentDTO{}, err
	}

	if moved && uc.reparented != nil {
		uc.reparented.Add(ctx, 1)
	}
	span.SetAttributes(attribute.Bool("reparented", moved))
	return out, nil
}

// Delete removes the shipment, detaching it from its order.
func (uc *ShipmentUseCase) Delete(ctx context.Context, id int) (bool, error) {
	ctx, span := uc.tracer.Start(ctx, "shipments.delete")
	defer span.End()
	span.SetAttributes(attribute.Int("shipment_id", id))

	deleted, err := uc.repository.DeleteShipment(ctx, id)
	if err != nil {
		span.RecordError(err)
		return false, err
	}
	return deleted, nil
}

func (uc *ShipmentUseCase) requireOrder(ctx context.Context, orderID int) error {
	exists, err := uc.orders.OrderExists(ctx, orderID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("BeerOrder", orderID)
	}
	return nil
}

func (uc *ShipmentUseCase) load(ctx context.Context, id int) (*BeerOrderShipment, error) {
	s, err := uc.repository.GetShipment(ctx, id)
	if postgres.IsNotFound(err) {
		return nil, apperr.NotFound(entityName, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load shipment: %w", err)
	}
	return s, nil
}
