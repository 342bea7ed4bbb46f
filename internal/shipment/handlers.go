package shipment

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matheusmosca/brewery-orders-service/internal/api"
	"github.com/matheusmosca/brewery-orders-service/internal/apperr"
)

// ShipmentUseCaseInterface is what the handlers need from ShipmentUseCase.
type ShipmentUseCaseInterface interface {
	Create(ctx context.Context, cmd CreateShipmentCommand) (ShipmentDTO, error)
	GetByID(ctx context.Context, id int) (ShipmentDTO, error)
	ListAll(ctx context.Context) ([]ShipmentDTO, error)
	ListByOrderID(ctx context.Context, orderID int) ([]ShipmentDTO, error)
	Update(ctx context.Context, id int, dto ShipmentDTO) (ShipmentDTO, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// ShipmentHandler serves /api/v1/shipments and the shipments of an order.
type ShipmentHandler struct {
	useCase ShipmentUseCaseInterface
}

func NewShipmentHandler(useCase ShipmentUseCaseInterface) *ShipmentHandler {
	return &ShipmentHandler{useCase: useCase}
}

// RegisterRoutes mounts the shipment endpoints on rg.
func (h *ShipmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	shipments := rg.Group("/shipments")
	shipments.POST("", h.CreateShipment)
	shipments.GET("", h.ListShipments)
	shipments.GET("/:id", h.GetShipment)
	shipments.PUT("/:id", h.UpdateShipment)
	shipments.DELETE("/:id", h.DeleteShipment)

	rg.GET("/orders/:id/shipments", h.ListOrderShipments)
}

func (h *ShipmentHandler) CreateShipment(c *gin.Context) {
	var cmd CreateShipmentCommand
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

func (h *ShipmentHandler) GetShipment(c *gin.Context) {
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

func (h *ShipmentHandler) ListShipments(c *gin.Context) {
	out, err := h.useCase.ListAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ShipmentHandler) ListOrderShipments(c *gin.Context) {
	orderID, err := api.PathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	out, err := h.useCase.ListByOrderID(c.Request.Context(), orderID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ShipmentHandler) UpdateShipment(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var dto ShipmentDTO
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

func (h *ShipmentHandler) DeleteShipment(c *gin.Context) {
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
