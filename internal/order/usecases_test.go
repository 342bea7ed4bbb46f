package order

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/matheusmosca/brewery-orders-service/internal/apperr"
	"github.com/matheusmosca/brewery-orders-service/internal/beer"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateOrder(ctx context.Context, o *BeerOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockRepository) GetOrder(ctx context.Context, id int) (*BeerOrder, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*BeerOrder)
	return o, args.Error(1)
}

func (m *MockRepository) ListOrders(ctx context.Context) ([]BeerOrder, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]BeerOrder)
	return orders, args.Error(1)
}

func (m *MockRepository) ListOrdersByCustomer(ctx context.Context, customerID int) ([]BeerOrder, error) {
	args := m.Called(ctx, customerID)
	orders, _ := args.Get(0).([]BeerOrder)
	return orders, args.Error(1)
}

func (m *MockRepository) UpdateOrderStatus(ctx context.Context, o *BeerOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockRepository) DeleteOrder(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) OrderExists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockCustomers struct {
	mock.Mock
}

func (m *MockCustomers) CustomerExists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockBeers struct {
	mock.Mock
}

func (m *MockBeers) GetBeer(ctx context.Context, id int) (*beer.Beer, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*beer.Beer)
	return b, args.Error(1)
}

// recordingTx runs fn in place and remembers how the unit of work ended.
type recordingTx struct {
	committed  int
	rolledBack int
}

func (tx *recordingTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		tx.rolledBack++
		return err
	}
	tx.committed++
	return nil
}

type fixture struct {
	repo      *MockRepository
	customers *MockCustomers
	beers     *MockBeers
	tx        *recordingTx
	uc        *OrderUseCase
}

func newFixture() *fixture {
	f := &fixture{
		repo:      new(MockRepository),
		customers: new(MockCustomers),
		beers:     new(MockBeers),
		tx:        &recordingTx{},
	}
	f.uc = NewOrderUseCase(f.repo, f.customers, f.beers, f.tx, noop.NewTracerProvider().Tracer("test"))
	return f
}

func ptr[T any](v T) *T { return &v }

func command(customerID int, beerIDs ...int) CreateOrderCommand {
	cmd := CreateOrderCommand{CustomerID: ptr(customerID)}
	for _, id := range beerIDs {
		cmd.OrderLines = append(cmd.OrderLines, OrderLineRequest{BeerID: ptr(id), OrderQuantity: ptr(2)})
	}
	return cmd
}

func missing(what string, id int) error {
	return fmt.Errorf("failed to get %s %d: %w", what, id, pgx.ErrNoRows)
}

func TestOrderUseCase_Create(t *testing.T) {
	// Arrange
	f := newFixture()
	f.customers.On("CustomerExists", mock.Anything, 1).Return(true, nil)
	f.beers.On("GetBeer", mock.Anything, 10).Return(&beer.Beer{ID: 10, BeerName: "Mango Bobs"}, nil)
	f.beers.On("GetBeer", mock.Anything, 11).Return(&beer.Beer{ID: 11, BeerName: "Galaxy Cat"}, nil)
	f.repo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *BeerOrder) bool {
		return o.CustomerID == 1 && o.OrderStatus == StatusNew && len(o.OrderLines) == 2
	})).Run(func(args mock.Arguments) {
		o := args.Get(1).(*BeerOrder)
		o.ID = 100
		for i := range o.OrderLines {
			o.OrderLines[i].ID = 500 + i
		}
	}).Return(nil)

	// Act
	out, err := f.uc.Create(context.Background(), command(1, 10, 11))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 100, out.ID)
	assert.Equal(t, "NEW", out.OrderStatus)
	assert.Equal(t, 1, *out.CustomerID)
	require.Len(t, out.OrderLines, 2)
	assert.Equal(t, "Mango Bobs", out.OrderLines[0].BeerName)
	assert.Equal(t, 11, *out.OrderLines[1].BeerID)
	assert.Equal(t, 2, *out.OrderLines[1].OrderQuantity)
	assert.Equal(t, 501, out.OrderLines[1].ID)
	assert.Equal(t, 1, f.tx.committed)
}

func TestOrderUseCase_Create_UnknownCustomer(t *testing.T) {
	f := newFixture()
	f.customers.On("CustomerExists", mock.Anything, 9).Return(false, nil)

	_, err := f.uc.Create(context.Background(), command(9, 10))

	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Customer", nf.Entity)
	f.beers.AssertNotCalled(t, "GetBeer", mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	assert.Equal(t, 1, f.tx.rolledBack)
}

func TestOrderUseCase_Create_UnknownBeerPersistsNothing(t *testing.T) {
	f := newFixture()
	f.customers.On("CustomerExists", mock.Anything, 1).Return(true, nil)
	f.beers.On("GetBeer", mock.Anything, 10).Return(&beer.Beer{ID: 10, BeerName: "Mango Bobs"}, nil)
	f.beers.On("GetBeer", mock.Anything, 999).Return(nil, missing("beer", 999))

	_, err := f.uc.Create(context.Background(), command(1, 10, 999, 11))

	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Beer", nf.Entity)
	assert.Equal(t, 999, nf.ID)
	f.beers.AssertNotCalled(t, "GetBeer", mock.Anything, 11)
	f.repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	assert.Equal(t, 0, f.tx.committed)
	assert.Equal(t, 1, f.tx.rolledBack)
}

func TestOrderUseCase_Create_StoreFailureRollsBack(t *testing.T) {
	f := newFixture()
	f.customers.On("CustomerExists", mock.Anything, 1).Return(true, nil)
	f.beers.On("GetBeer", mock.Anything, 10).Return(&beer.Beer{ID: 10}, nil)
	f.repo.On("CreateOrder", mock.Anything, mock.Anything).Return(errors.New("insert order_line: broken pipe"))

	_, err := f.uc.Create(context.Background(), command(1, 10))

	require.Error(t, err)
	assert.Equal(t, 1, f.tx.rolledBack)
}

func TestOrderUseCase_UpdateStatus_AnyValue(t *testing.T) {
	f := newFixture()
	f.repo.On("GetOrder", mock.Anything, 5).Return(&BeerOrder{ID: 5, CustomerID: 1, OrderStatus: StatusNew}, nil)
	f.repo.On("UpdateOrderStatus", mock.Anything, mock.MatchedBy(func(o *BeerOrder) bool {
		return o.OrderStatus == "ON_HOLD"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*BeerOrder).Version++
	}).Return(nil)

	out, err := f.uc.UpdateStatus(context.Background(), 5, "ON_HOLD")

	require.NoError(t, err)
	assert.Equal(t, "ON_HOLD", out.OrderStatus)
	assert.Equal(t, 1, out.Version)
	assert.NotNil(t, out.OrderLines)
}

func TestOrderUseCase_Update_OnlyStatus(t *testing.T) {
	f := newFixture()
	stored := &BeerOrder{ID: 5, CustomerID: 1, OrderStatus: StatusNew, OrderLines: []OrderLine{{ID: 1, BeerID: 10, OrderQuantity: 3}}}
	f.repo.On("GetOrder", mock.Anything, 5).Return(stored, nil)
	f.repo.On("UpdateOrderStatus", mock.Anything, mock.Anything).Return(nil)

	out, err := f.uc.Update(context.Background(), 5, BeerOrderDTO{
		OrderStatus: StatusProcessing,
		CustomerID:  ptr(2),
		OrderLines:  []OrderLineDTO{{BeerID: ptr(99), OrderQuantity: ptr(1)}},
	})

	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, out.OrderStatus)
	assert.Equal(t, 1, *out.CustomerID)
	require.Len(t, out.OrderLines, 1)
	assert.Equal(t, 10, *out.OrderLines[0].BeerID)
}

func TestOrderUseCase_UpdateStatus_NotFound(t *testing.T) {
	f := newFixture()
	f.repo.On("GetOrder", mock.Anything, 404).Return(nil, missing("order", 404))

	_, err := f.uc.UpdateStatus(context.Background(), 404, StatusCompleted)

	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "BeerOrder", nf.Entity)
}

func TestOrderUseCase_ListByCustomerID_Empty(t *testing.T) {
	f := newFixture()
	f.repo.On("ListOrdersByCustomer", mock.Anything, 8).Return([]BeerOrder{}, nil)

	out, err := f.uc.ListByCustomerID(context.Background(), 8)

	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestBeerOrder_AddOrderLine(t *testing.T) {
	o := NewBeerOrder(3)
	o.ID = 12

	o.AddOrderLine(OrderLine{BeerID: 1, OrderQuantity: 4})

	require.Len(t, o.OrderLines, 1)
	assert.Equal(t, 12, o.OrderLines[0].BeerOrderID)
	assert.Equal(t, StatusNew, o.OrderStatus)
}
