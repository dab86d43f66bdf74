package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/florenda/florenda-api/internal/domains/inventory/application"
	"github.com/florenda/florenda-api/internal/domains/inventory/domain"
	"github.com/florenda/florenda-api/internal/domains/inventory/ports"
	apierrors "github.com/florenda/florenda-api/internal/shared/errors"
)

// Handler exposes the inventory use cases over HTTP.
type Handler struct {
	service ports.Service
	respond *apierrors.ChainedResponder
}

func NewHandler(service ports.Service) *Handler {
	h := &Handler{service: service}
	h.respond = apierrors.NewChainedResponder("", mapInventoryError)
	return h
}

// RegisterRoutes mounts the inventory endpoints on the given router group.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	items := r.Group("/inventory")
	items.POST("", h.createItem)
	items.GET("", h.listItems)
	items.GET("/alerts", h.lowStock)
	items.GET("/:id", h.getItem)
	items.PUT("/:id", h.updateItem)
	items.DELETE("/:id", h.deleteItem)
	items.POST("/:id/movements", h.recordMovement)
	items.GET("/:id/movements", h.listMovements)
}

type itemRequest struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	SKU          *string  `json:"sku"`
	CurrentStock *int     `json:"currentStock" binding:"omitempty,min=0"`
	MinimumStock *int     `json:"minimumStock" binding:"omitempty,min=0"`
	Unit         *string  `json:"unit" binding:"omitempty,oneof=szt kg g m"`
	Location     *string  `json:"location"`
	Supplier     *string  `json:"supplier"`
	UnitPrice    *float64 `json:"unitPrice" binding:"omitempty,min=0"`
	Notes        *string  `json:"notes"`
}

// Quantity is a pointer so an adjustment can carry an explicit zero; range
// checks per movement type live in the domain.
type movementRequest struct {
	Type        string    `json:"type" binding:"required,oneof=restock usage loss adjustment"`
	Quantity    *int      `json:"quantity" binding:"required,min=0"`
	OccurredAt  time.Time `json:"occurredAt"`
	Notes       string    `json:"notes"`
	PerformedBy string    `json:"performedBy"`
}

type itemResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category,omitempty"`
	SKU           string    `json:"sku"`
	CurrentStock  int       `json:"currentStock"`
	MinimumStock  int       `json:"minimumStock"`
	Unit          string    `json:"unit"`
	Location      string    `json:"location,omitempty"`
	LastRestocked time.Time `json:"lastRestocked,omitzero"`
	Supplier      string    `json:"supplier,omitempty"`
	UnitPrice     float64   `json:"unitPrice"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
}

type movementResponse struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"itemId"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	OccurredAt  time.Time `json:"occurredAt"`
	Notes       string    `json:"notes,omitempty"`
	PerformedBy string    `json:"performedBy,omitempty"`
}

func (h *Handler) createItem(c *gin.Context) {
	var payload itemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respond.BadRequest(c, err.Error())
		return
	}
	view, err := h.service.CreateItem(c.Request.Context(), toMutation(payload))
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toItemResponse(view))
}

func (h *Handler) updateItem(c *gin.Context) {
	var payload itemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respond.BadRequest(c, err.Error())
		return
	}
	view, err := h.service.UpdateItem(c.Request.Context(), c.Param("id"), toMutation(payload))
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItemResponse(view))
}

func (h *Handler) getItem(c *gin.Context) {
	view, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItemResponse(view))
}

func (h *Handler) listItems(c *gin.Context) {
	filter := ports.ListFilter{
		Category: c.Query("category"),
		Status:   domain.StockStatus(c.Query("status")),
		Search:   c.Query("search"),
	}
	views, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItemResponses(views))
}

func (h *Handler) lowStock(c *gin.Context) {
	views, err := h.service.LowStock(c.Request.Context())
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItemResponses(views))
}

func (h *Handler) deleteItem(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) recordMovement(c *gin.Context) {
	var payload movementRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respond.BadRequest(c, err.Error())
		return
	}
	view, err := h.service.RecordMovement(c.Request.Context(), ports.MovementInput{
		ItemID:      c.Param("id"),
		Type:        domain.MovementType(payload.Type),
		Quantity:    *payload.Quantity,
		OccurredAt:  payload.OccurredAt,
		Notes:       payload.Notes,
		PerformedBy: payload.PerformedBy,
	})
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItemResponse(view))
}

func (h *Handler) listMovements(c *gin.Context) {
	movements, err := h.service.Movements(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	out := make([]movementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, movementResponse{
			ID:          m.ID,
			ItemID:      m.ItemID,
			Type:        string(m.Type),
			Quantity:    m.Quantity,
			OccurredAt:  m.OccurredAt,
			Notes:       m.Notes,
			PerformedBy: m.PerformedBy,
		})
	}
	c.JSON(http.StatusOK, out)
}

func toMutation(payload itemRequest) ports.ItemMutation {
	mutation := ports.ItemMutation{
		Name:         payload.Name,
		Category:     payload.Category,
		SKU:          payload.SKU,
		CurrentStock: payload.CurrentStock,
		MinimumStock: payload.MinimumStock,
		Location:     payload.Location,
		Supplier:     payload.Supplier,
		UnitPrice:    payload.UnitPrice,
		Notes:        payload.Notes,
	}
	if payload.Unit != nil {
		unit := domain.Unit(*payload.Unit)
		mutation.Unit = &unit
	}
	return mutation
}

func toItemResponse(view *ports.ItemView) itemResponse {
	item := view.Item
	return itemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Category:      item.Category,
		SKU:           item.SKU,
		CurrentStock:  item.CurrentStock,
		MinimumStock:  item.MinimumStock,
		Unit:          string(item.Unit),
		Location:      item.Location,
		LastRestocked: item.LastRestocked,
		Supplier:      item.Supplier,
		UnitPrice:     item.UnitPrice,
		Notes:         item.Notes,
		Status:        string(view.StockStatus),
	}
}

func toItemResponses(views []*ports.ItemView) []itemResponse {
	out := make([]itemResponse, 0, len(views))
	for _, view := range views {
		out = append(out, toItemResponse(view))
	}
	return out
}

func mapInventoryError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}
