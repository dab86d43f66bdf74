package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/florenda/florenda-api/internal/domains/orders/application"
	"github.com/florenda/florenda-api/internal/domains/orders/domain"
	"github.com/florenda/florenda-api/internal/domains/orders/ports"
	apierrors "github.com/florenda/florenda-api/internal/shared/errors"
	"github.com/florenda/florenda-api/internal/shared/validation"
)

// Handler exposes the order use cases over HTTP. Order submission goes
// through the workflow orchestrator; reads and status changes hit the
// service directly.
type Handler struct {
	service   ports.Service
	workflows ports.WorkflowOrchestrator
	respond   *apierrors.ChainedResponder
}

func NewHandler(service ports.Service, workflows ports.WorkflowOrchestrator) *Handler {
	validation.Register()
	h := &Handler{service: service, workflows: workflows}
	h.respond = apierrors.NewChainedResponder("", mapOrderError)
	return h
}

// RegisterRoutes mounts the order endpoints on the given router group.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	orders := r.Group("/orders")
	orders.POST("", h.placeOrder)
	orders.GET("", h.listOrders)
	orders.GET("/:id", h.getOrder)
	orders.PATCH("/:id/status", h.updateStatus)
	orders.DELETE("/:id", h.deleteOrder)
}

type orderLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type placeOrderRequest struct {
	CustomerID   string             `json:"customerId"`
	CustomerName string             `json:"customerName" binding:"required"`
	CustomerType string             `json:"customerType" binding:"omitempty,oneof=individual company"`
	CompanyName  string             `json:"companyName"`
	TaxID        string             `json:"taxId" binding:"omitempty,nip"`
	PickupAt     time.Time          `json:"pickupAt"`
	Notes        string             `json:"notes"`
	Tags         []string           `json:"tags"`
	Lines        []orderLineRequest `json:"items" binding:"required,min=1,dive"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing ready completed cancelled"`
}

type lineItemResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Subtotal  float64 `json:"subtotal"`
}

type orderResponse struct {
	ID           string             `json:"id"`
	CustomerID   string             `json:"customerId,omitempty"`
	CustomerName string             `json:"customerName"`
	CustomerType string             `json:"customerType"`
	CompanyName  string             `json:"companyName,omitempty"`
	TaxID        string             `json:"taxId,omitempty"`
	PickupAt     time.Time          `json:"pickupAt"`
	Notes        string             `json:"notes,omitempty"`
	Tags         []string           `json:"tags,omitempty"`
	Items        []lineItemResponse `json:"items"`
	Total        float64            `json:"total"`
	Status       string             `json:"status"`
}

func (h *Handler) placeOrder(c *gin.Context) {
	var payload placeOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respond.BadRequest(c, err.Error())
		return
	}
	customerType := domain.CustomerIndividual
	if payload.CustomerType != "" {
		customerType = domain.CustomerType(payload.CustomerType)
	}
	input := ports.PlaceOrderInput{
		CustomerID:   payload.CustomerID,
		CustomerName: payload.CustomerName,
		CustomerType: customerType,
		CompanyName:  payload.CompanyName,
		TaxID:        payload.TaxID,
		PickupAt:     payload.PickupAt,
		Notes:        payload.Notes,
		Tags:         payload.Tags,
	}
	for _, line := range payload.Lines {
		input.Lines = append(input.Lines, ports.OrderLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	order, err := h.submit(c, input)
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) submit(c *gin.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	if h.workflows != nil {
		return h.workflows.SubmitOrder(c.Request.Context(), input)
	}
	return h.service.PlaceOrder(c.Request.Context(), input)
}

func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *Handler) listOrders(c *gin.Context) {
	filter := ports.ListFilter{
		Status:       domain.Status(c.Query("status")),
		CustomerType: domain.CustomerType(c.Query("customerType")),
	}
	orders, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) updateStatus(c *gin.Context) {
	var payload updateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respond.BadRequest(c, err.Error())
		return
	}
	order, err := h.service.UpdateStatus(c.Request.Context(), ports.UpdateStatusInput{
		ID:     c.Param("id"),
		Status: domain.Status(payload.Status),
	})
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *Handler) deleteOrder(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toOrderResponse(order *domain.Order) orderResponse {
	items := make([]lineItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, lineItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal(),
		})
	}
	return orderResponse{
		ID:           order.ID,
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		CustomerType: string(order.CustomerType),
		CompanyName:  order.CompanyName,
		TaxID:        order.TaxID,
		PickupAt:     order.PickupAt,
		Notes:        order.Notes,
		Tags:         order.Tags,
		Items:        items,
		Total:        order.Total,
		Status:       string(order.Status),
	}
}

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrUnknownProduct):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}
