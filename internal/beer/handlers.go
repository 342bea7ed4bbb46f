package beer

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matheusmosca/brewery-orders-service/internal/api"
	"github.com/matheusmosca/brewery-orders-service/internal/apperr"
	"github.com/matheusmosca/brewery-orders-service/internal/paging"
)

// BeerUseCaseInterface is what the handlers need from BeerUseCase.
type BeerUseCaseInterface interface {
	Create(ctx context.Context, in BeerDTO) (BeerDTO, error)
	GetByID(ctx context.Context, id int) (BeerDTO, error)
	ListAll(ctx context.Context) ([]BeerDTO, error)
	List(ctx context.Context, q ListQuery) (paging.Page[BeerDTO], error)
	Update(ctx context.Context, id int, in BeerDTO) (BeerDTO, error)
	Patch(ctx context.Context, id int, p BeerPatchDTO) (BeerDTO, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// BeerHandler serves /api/v1/beers.
type BeerHandler struct {
	useCase BeerUseCaseInterface
}

// NewBeerHandler creates a BeerHandler.
func NewBeerHandler(useCase BeerUseCaseInterface) *BeerHandler {
	return &BeerHandler{useCase: useCase}
}

// RegisterRoutes mounts the beer endpoints on rg.
func (h *BeerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	beers := rg.Group("/beers")
	beers.POST("", h.CreateBeer)
	beers.GET("", h.ListBeers)
	beers.GET("/all", h.ListAllBeers)
	beers.GET("/:id", h.GetBeer)
	beers.PUT("/:id", h.UpdateBeer)
	beers.PATCH("/:id", h.PatchBeer)
	beers.DELETE("/:id", h.DeleteBeer)
}

func (h *BeerHandler) CreateBeer(c *gin.Context) {
	var in BeerDTO
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

func (h *BeerHandler) GetBeer(c *gin.Context) {
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

// ListBeers answers GET /beers with a filtered page.
func (h *BeerHandler) ListBeers(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(api.ValidationFromBinding(err))
		return
	}

	page, err := h.useCase.List(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListAllBeers answers the deprecated GET /beers/all.
func (h *BeerHandler) ListAllBeers(c *gin.Context) {
	beers, err := h.useCase.ListAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("Deprecation", "true")
	c.JSON(http.StatusOK, beers)
}

func (h *BeerHandler) UpdateBeer(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var in BeerDTO
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

func (h *BeerHandler) PatchBeer(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var p BeerPatchDTO
	if err := api.BindJSON(c, &p); err != nil {
		_ = c.Error(err)
		return
	}

	out, err := h.useCase.Patch(c.Request.Context(), id, p)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *BeerHandler) DeleteBeer(c *gin.Context) {
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
