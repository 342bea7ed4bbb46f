package order

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/matheusmosca/brewery-orders-service/internal/api"
	"github.com/matheusmosca/brewery-orders-service/internal/apperr"
)

const (
	// maxStatusBody bounds the plain-text body of PATCH /orders/:id/status.
	maxStatusBody = 1 << 10
	// maxStatusLength matches the order_status column.
	maxStatusLength = 255
)

// OrderUseCaseInterface is what the handlers need from OrderUseCase.
type OrderUseCaseInterface interface {
	Create(ctx context.Context, cmd CreateOrderCommand) (BeerOrderDTO, error)
	GetByID(ctx context.Context, id int) (BeerOrderDTO, error)
	ListAll(ctx context.Context) ([]BeerOrderDTO, error)
	ListByCustomerID(ctx context.Context, customerID int) ([]BeerOrderDTO, error)
	Update(ctx context.Context, id int, dto BeerOrderDTO) (BeerOrderDTO, error)
	UpdateStatus(ctx context.Context, id int, status string) (BeerOrderDTO, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// OrderHandler serves /api/v1/orders.
type OrderHandler struct {
	useCase OrderUseCaseInterface
}

func NewOrderHandler(useCase OrderUseCaseInterface) *OrderHandler {
	return &OrderHandler{useCase: useCase}
}

// RegisterRoutes mounts the order endpoints on rg.
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.POST("", h.CreateOrder)
	orders.GET("", h.ListOrders)
	orders.GET("/customer/:customerId", h.ListCustomerOrders)
	orders.GET("/:id", h.GetOrder)
	orders.PUT("/:id", h.UpdateOrder)
	orders.PATCH("/:id/status", h.UpdateOrderStatus)
	orders.DELETE("/:id", h.DeleteOrder)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var cmd CreateOrderCommand
	if err := api.BindJSON(c, &cmd); err != nil {
		_ = c.Error(err)
		return
	}

	out, err := h.useCase.Create(c.Request.Context(), cmd)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	out, err := h.useCase.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	out, err := h.useCase.ListAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) ListCustomerOrders(c *gin.Context) {
	customerID, err := api.PathID(c, "customerId")
	if err != nil {
		_ = c.Error(err)
		return
	}

	out, err := h.useCase.ListByCustomerID(c.Request.Context(), customerID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var dto BeerOrderDTO
	if err := api.BindJSON(c, &dto); err != nil {
		_ = c.Error(err)
		return
	}

	out, err := h.useCase.Update(c.Request.Context(), id, dto)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// UpdateOrderStatus takes the new status as the raw request body. A JSON
// string literal is accepted as well.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	status, err := readStatus(c.Request.Body)
	if err != nil {
		_ = c.Error(err)
		return
	}

	out, err := h.useCase.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	deleted, err := h.useCase.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !deleted {
		_ = c.Error(apperr.NotFound(entityName, id))
		return
	}
	c.Status(http.StatusNoContent)
}

func statusTooLong() error {
	return apperr.Validation("status", fmt.Sprintf("status must be at most %d characters", maxStatusLength))
}

func readStatus(body io.Reader) (string, error) {
	if body == nil {
		return "", apperr.Validation("status", "status is required")
	}

	raw, err := io.ReadAll(io.LimitReader(body, maxStatusBody+1))
	if err != nil {
		return "", apperr.Validation("status", "failed to read status: "+err.Error())
	}
	if len(raw) > maxStatusBody {
		return "", statusTooLong()
	}

	status := strings.TrimSpace(string(raw))
	if strings.HasPrefix(status, `"`) {
		var s string
		if err := json.Unmarshal([]byte(status), &s); err != nil {
			return "", apperr.Validation("status", "malformed status: "+err.Error())
		}
		status = strings.TrimSpace(s)
	}

	if status == "" {
		return "", apperr.Validation("status", "status is required")
	}
	if utf8.RuneCountInString(status) > maxStatusLength {
		return "", statusTooLong()
	}
	return status, nil
}
