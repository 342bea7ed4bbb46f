package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/matheusmosca/brewery-orders-service/internal/api"
	"github.com/matheusmosca/brewery-orders-service/internal/apperr"
)

func init() {
	gin.SetMode(gin.TestMode)
	api.SetupValidation()
}

type MockOrderUseCase struct {
	mock.Mock
}

func (m *MockOrderUseCase) Create(ctx context.Context, cmd CreateOrderCommand) (BeerOrderDTO, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(BeerOrderDTO), args.Error(1)
}

func (m *MockOrderUseCase) GetByID(ctx context.Context, id int) (BeerOrderDTO, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(BeerOrderDTO), args.Error(1)
}

func (m *MockOrderUseCase) ListAll(ctx context.Context) ([]BeerOrderDTO, error) {
	args := m.Called(ctx)
	return args.Get(0).([]BeerOrderDTO), args.Error(1)
}

func (m *MockOrderUseCase) ListByCustomerID(ctx context.Context, customerID int) ([]BeerOrderDTO, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]BeerOrderDTO), args.Error(1)
}

func (m *MockOrderUseCase) Update(ctx context.Context, id int, dto BeerOrderDTO) (BeerOrderDTO, error) {
	args := m.Called(ctx, id, dto)
	return args.Get(0).(BeerOrderDTO), args.Error(1)
}

func (m *MockOrderUseCase) UpdateStatus(ctx context.Context, id int, status string) (BeerOrderDTO, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(BeerOrderDTO), args.Error(1)
}

func (m *MockOrderUseCase) Delete(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newRouter(uc OrderUseCaseInterface) *gin.Engine {
	r := gin.New()
	r.Use(api.RequestIDMiddleware(), api.ErrorHandler())
	NewOrderHandler(uc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(r http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func problemOf(t *testing.T, w *httptest.ResponseRecorder) api.Problem {
	t.Helper()
	var p api.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func TestCreateOrder(t *testing.T) {
	uc := new(MockOrderUseCase)
	uc.On("Create", mock.Anything, mock.MatchedBy(func(cmd CreateOrderCommand) bool {
		return *cmd.CustomerID == 1 && len(cmd.OrderLines) == 1 && *cmd.OrderLines[0].BeerID == 10
	})).Return(ToDTO(&BeerOrder{ID: 3, CustomerID: 1, OrderStatus: StatusNew,
		OrderLines: []OrderLine{{ID: 4, BeerID: 10, BeerName: "Mango Bobs", OrderQuantity: 2}}}), nil)
	r := newRouter(uc)

	w := do(r, http.MethodPost, "/api/v1/orders", "application/json",
		`{"customerId":1,"orderLines":[{"beerId":10,"orderQuantity":2}]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "NEW", out["orderStatus"])
	lines := out["orderLines"].([]any)
	require.Len(t, lines, 1)
	assert.Equal(t, "Mango Bobs", lines[0].(map[string]any)["beerName"])
}

func TestCreateOrder_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
		msg   string
	}{
		{"no lines", `{"customerId":1,"orderLines":[]}`, "orderLines", "orderLines must have at least one entry"},
		{"missing lines", `{"customerId":1}`, "orderLines", "orderLines is required"},
		{"missing customer", `{"orderLines":[{"beerId":1,"orderQuantity":1}]}`, "customerId", "customerId is required"},
		{"zero quantity", `{"customerId":1,"orderLines":[{"beerId":1,"orderQuantity":0}]}`, "orderLines[0].orderQuantity", "orderQuantity must be positive"},
		{"missing beer", `{"customerId":1,"orderLines":[{"orderQuantity":1}]}`, "orderLines[0].beerId", "beerId is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockOrderUseCase)
			r := newRouter(uc)

			w := do(r, http.MethodPost, "/api/v1/orders", "application/json", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.msg, problemOf(t, w).Errors[tt.field])
			uc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	uc := new(MockOrderUseCase)
	uc.On("Create", mock.Anything, mock.Anything).Return(BeerOrderDTO{}, apperr.NotFound("Customer", 42))
	r := newRouter(uc)

	w := do(r, http.MethodPost, "/api/v1/orders", "application/json",
		`{"customerId":42,"orderLines":[{"beerId":1,"orderQuantity":1}]}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Customer not found with ID: 42", problemOf(t, w).Detail)
}

func TestUpdateOrderStatus_Body(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        string
	}{
		{"plain text", "text/plain", "PROCESSING", "PROCESSING"},
		{"padded", "text/plain", "  COMPLETED\n", "COMPLETED"},
		{"json string", "application/json", `"ON_HOLD"`, "ON_HOLD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockOrderUseCase)
			uc.On("UpdateStatus", mock.Anything, 5, tt.want).
				Return(BeerOrderDTO{ID: 5, OrderStatus: tt.want, OrderLines: []OrderLineDTO{}}, nil)
			r := newRouter(uc)

			w := do(r, http.MethodPatch, "/api/v1/orders/5/status", tt.contentType, tt.body)

			assert.Equal(t, http.StatusOK, w.Code)
			uc.AssertExpectations(t)
		})
	}
}

func TestUpdateOrderStatus_EmptyBody(t *testing.T) {
	uc := new(MockOrderUseCase)
	r := newRouter(uc)

	w := do(r, http.MethodPatch, "/api/v1/orders/5/status", "text/plain", "   ")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "status is required", problemOf(t, w).Errors["status"])
	uc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_TooLong(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"over column width", strings.Repeat("S", 256)},
		{"over body limit", strings.Repeat("S", 2000)},
		{"quoted over column width", `"` + strings.Repeat("S", 256) + `"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockOrderUseCase)
			r := newRouter(uc)

			w := do(r, http.MethodPatch, "/api/v1/orders/5/status", "text/plain", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "status must be at most 255 characters", problemOf(t, w).Errors["status"])
			uc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateOrderStatus_AtColumnWidth(t *testing.T) {
	status := strings.Repeat("S", 255)
	uc := new(MockOrderUseCase)
	uc.On("UpdateStatus", mock.Anything, 5, status).
		Return(BeerOrderDTO{ID: 5, OrderStatus: status, OrderLines: []OrderLineDTO{}}, nil)
	r := newRouter(uc)

	w := do(r, http.MethodPatch, "/api/v1/orders/5/status", "text/plain", status)

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestUpdateOrder_StatusTooLong(t *testing.T) {
	uc := new(MockOrderUseCase)
	r := newRouter(uc)

	w := do(r, http.MethodPut, "/api/v1/orders/5", "application/json",
		`{"orderStatus":"`+strings.Repeat("S", 256)+`","customerId":1,"orderLines":[{"beerId":1,"orderQuantity":1}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "orderStatus must be at most 255 characters", problemOf(t, w).Errors["orderStatus"])
	uc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	uc := new(MockOrderUseCase)
	uc.On("UpdateStatus", mock.Anything, 9, "NEW").Return(BeerOrderDTO{}, apperr.NotFound("BeerOrder", 9))
	r := newRouter(uc)

	w := do(r, http.MethodPatch, "/api/v1/orders/9/status", "text/plain", "NEW")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCustomerOrders(t *testing.T) {
	uc := new(MockOrderUseCase)
	uc.On("ListByCustomerID", mock.Anything, 3).Return([]BeerOrderDTO{}, nil)
	r := newRouter(uc)

	w := do(r, http.MethodGet, "/api/v1/orders/customer/3", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestDeleteOrder(t *testing.T) {
	uc := new(MockOrderUseCase)
	uc.On("Delete", mock.Anything, 1).Return(true, nil)
	uc.On("Delete", mock.Anything, 2).Return(false, nil)
	r := newRouter(uc)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/api/v1/orders/1", "", "").Code)
	w := do(r, http.MethodDelete, "/api/v1/orders/2", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "BeerOrder not found with ID: 2", problemOf(t, w).Detail)
}
