package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/florenda/florenda-api/internal/domains/catalog/application"
	"github.com/florenda/florenda-api/internal/domains/catalog/domain"
	"github.com/florenda/florenda-api/internal/domains/catalog/ports"
	apierrors "github.com/florenda/florenda-api/internal/shared/errors"
)

// Handler exposes the catalog use cases over HTTP.
type Handler struct {
	service ports.Service
	respond *apierrors.ChainedResponder
}

func NewHandler(service ports.Service) *Handler {
	h := &Handler{service: service}
	h.respond = apierrors.NewChainedResponder("", mapCatalogError)
	return h
}

// RegisterRoutes mounts the product endpoints on the given router group.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	products := r.Group("/products")
	products.POST("", h.createProduct)
	products.GET("", h.listProducts)
	products.GET("/:id", h.getProduct)
	products.PUT("/:id", h.updateProduct)
	products.DELETE("/:id", h.deleteProduct)
}

type componentRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Unit     string  `json:"unit" binding:"omitempty,oneof=szt cm m"`
	Price    float64 `json:"price" binding:"omitempty,min=0"`
}

type productRequest struct {
	Name         *string             `json:"name"`
	Description  *string             `json:"description"`
	Price        *float64            `json:"price" binding:"omitempty,min=0"`
	Status       *string             `json:"status" binding:"omitempty,oneof=active inactive"`
	Stock        *int                `json:"stock" binding:"omitempty,min=0"`
	MinimumStock *int                `json:"minimumStock" binding:"omitempty,min=0"`
	ImageURL     *string             `json:"imageUrl"`
	Category     *string             `json:"category"`
	Components   *[]componentRequest `json:"components" binding:"omitempty,dive"`
}

type componentResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
	Price    float64 `json:"price"`
}

type productResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description,omitempty"`
	Price        float64             `json:"price"`
	Status       string              `json:"status"`
	Stock        int                 `json:"stock"`
	MinimumStock int                 `json:"minimumStock"`
	StockStatus  string              `json:"stockStatus"`
	ImageURL     string              `json:"imageUrl,omitempty"`
	Category     string              `json:"category,omitempty"`
	Components   []componentResponse `json:"components,omitempty"`
}

func (h *Handler) createProduct(c *gin.Context) {
	var payload productRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respond.BadRequest(c, err.Error())
		return
	}
	view, err := h.service.Create(c.Request.Context(), toMutation(payload))
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(view))
}

func (h *Handler) updateProduct(c *gin.Context) {
	var payload productRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respond.BadRequest(c, err.Error())
		return
	}
	view, err := h.service.Update(c.Request.Context(), c.Param("id"), toMutation(payload))
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(view))
}

func (h *Handler) getProduct(c *gin.Context) {
	view, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(view))
}

func (h *Handler) listProducts(c *gin.Context) {
	filter := ports.ListFilter{
		Category: c.Query("category"),
		Status:   domain.Status(c.Query("status")),
		Search:   c.Query("search"),
	}
	views, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	out := make([]productResponse, 0, len(views))
	for _, view := range views {
		out = append(out, toProductResponse(view))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toMutation(payload productRequest) ports.ProductMutation {
	mutation := ports.ProductMutation{
		Name:         payload.Name,
		Description:  payload.Description,
		Price:        payload.Price,
		Stock:        payload.Stock,
		MinimumStock: payload.MinimumStock,
		ImageURL:     payload.ImageURL,
		Category:     payload.Category,
	}
	if payload.Status != nil {
		status := domain.Status(*payload.Status)
		mutation.Status = &status
	}
	if payload.Components != nil {
		components := make([]ports.ComponentInput, 0, len(*payload.Components))
		for _, comp := range *payload.Components {
			components = append(components, ports.ComponentInput{
				Name:     comp.Name,
				Quantity: comp.Quantity,
				Unit:     domain.ComponentUnit(comp.Unit),
				Price:    comp.Price,
			})
		}
		mutation.Components = &components
	}
	return mutation
}

func toProductResponse(view *ports.ProductView) productResponse {
	product := view.Product
	components := make([]componentResponse, 0, len(product.Components))
	for _, comp := range product.Components {
		components = append(components, componentResponse{
			ID:       comp.ID,
			Name:     comp.Name,
			Quantity: comp.Quantity,
			Unit:     string(comp.Unit),
			Price:    comp.Price,
		})
	}
	return productResponse{
		ID:           product.ID,
		Name:         product.Name,
		Description:  product.Description,
		Price:        product.Price,
		Status:       string(product.Status),
		Stock:        product.Stock,
		MinimumStock: product.MinimumStock,
		StockStatus:  string(view.StockStatus),
		ImageURL:     product.ImageURL,
		Category:     product.Category,
		Components:   components,
	}
}

func mapCatalogError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}
