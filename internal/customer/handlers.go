package customer

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matheusmosca/brewery-orders-service/internal/api"
	"github.com/matheusmosca/brewery-orders-service/internal/apperr"
)

// CustomerUseCaseInterface is what the handlers need from CustomerUseCase.
type CustomerUseCaseInterface interface {
	Create(ctx context.Context, in CustomerDTO) (CustomerDTO, error)
	GetByID(ctx context.Context, id int) (CustomerDTO, error)
	ListAll(ctx context.Context) ([]CustomerDTO, error)
	Update(ctx context.Context, id int, in CustomerDTO) (CustomerDTO, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// CustomerHandler serves /api/v1/customers.
type CustomerHandler struct {
	useCase CustomerUseCaseInterface
}

func NewCustomerHandler(useCase CustomerUseCaseInterface) *CustomerHandler {
	return &CustomerHandler{useCase: useCase}
}

// RegisterRoutes mounts the customer endpoints on rg.
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	customers.POST("", h.CreateCustomer)
	customers.GET("", h.ListCustomers)
	customers.GET("/:id", h.GetCustomer)
	customers.PUT("/:id", h.UpdateCustomer)
	customers.DELETE("/:id", h.DeleteCustomer)
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var in CustomerDTO
	if err := api.BindJSON(c, &in); err != nil {
		_ = c.Error(err)
		return
	}

	out, err := h.useCase.Create(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
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

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	out, err := h.useCase.ListAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var in CustomerDTO
	if err := api.BindJSON(c, &in); err != nil {
		_ = c.Error(err)
		return
	}

	out, err := h.useCase.Update(c.Request.Context(), id, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
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
