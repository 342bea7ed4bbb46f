// Package app wires gateways, use cases and handlers into one service.
package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"

	"github.com/matheusmosca/brewery-orders-service/internal/beer"
	"github.com/matheusmosca/brewery-orders-service/internal/config"
	"github.com/matheusmosca/brewery-orders-service/internal/customer"
	"github.com/matheusmosca/brewery-orders-service/internal/order"
	"github.com/matheusmosca/brewery-orders-service/internal/postgres"
	"github.com/matheusmosca/brewery-orders-service/internal/server"
	"github.com/matheusmosca/brewery-orders-service/internal/shipment"
)

// App is the assembled service.
type App struct {
	DB        *postgres.DB
	Beers     *beer.BeerUseCase
	Customers *customer.CustomerUseCase
	Orders    *order.OrderUseCase
	Shipments *shipment.ShipmentUseCase
	Router    *gin.Engine
}

// New builds every component on top of pool.
func New(cfg *config.Config, pool *pgxpool.Pool) *App {
	db := postgres.NewDB(pool)
	tracer := otel.Tracer(cfg.ServiceName)

	beerRepo := beer.NewPostgresBeerRepository(db)
	customerRepo := customer.NewPostgresCustomerRepository(db)
	orderRepo := order.NewPostgresOrderRepository(db)
	shipmentRepo := shipment.NewPostgresShipmentRepository(db)

	a := &App{
		DB:        db,
		Beers:     beer.NewBeerUseCase(beerRepo, db, tracer),
		Customers: customer.NewCustomerUseCase(customerRepo, db, tracer),
		Orders:    order.NewOrderUseCase(orderRepo, customerRepo, beerRepo, db, tracer),
		Shipments: shipment.NewShipmentUseCase(shipmentRepo, orderRepo, db, tracer),
	}

	a.Router = server.NewRouter(server.Options{
		ServiceName: cfg.ServiceName,
		Debug:       cfg.GinMode == gin.DebugMode,
		Pinger:      db,
		Handlers: []server.RouteRegistrar{
			beer.NewBeerHandler(a.Beers),
			customer.NewCustomerHandler(a.Customers),
			order.NewOrderHandler(a.Orders),
			shipment.NewShipmentHandler(a.Shipments),
		},
	})
	return a
}
