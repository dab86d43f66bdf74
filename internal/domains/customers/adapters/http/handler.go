package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/florenda/florenda-api/internal/domains/customers/application"
	"github.com/florenda/florenda-api/internal/domains/customers/domain"
	"github.com/florenda/florenda-api/internal/domains/customers/ports"
	apierrors "github.com/florenda/florenda-api/internal/shared/errors"
	"github.com/florenda/florenda-api/internal/shared/validation"
)

// Handler exposes the customer use cases over HTTP.
type Handler struct {
	service ports.Service
	respond *apierrors.ChainedResponder
}

func NewHandler(service ports.Service) *Handler {
	validation.Register()
	h := &Handler{service: service}
	h.respond = apierrors.NewChainedResponder("", mapCustomerError)
	return h
}

// RegisterRoutes mounts the customer endpoints on the given router group.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	customers := r.Group("/customers")
	customers.POST("", h.createCustomer)
	customers.GET("", h.listCustomers)
	customers.GET("/:id", h.getCustomer)
	customers.PUT("/:id", h.updateCustomer)
	customers.DELETE("/:id", h.deleteCustomer)
}

type customerRequest struct {
	Type        *string   `json:"type" binding:"omitempty,oneof=individual company"`
	Name        *string   `json:"name"`
	Email       *string   `json:"email" binding:"omitempty,email"`
	Phone       *string   `json:"phone"`
	Address     *string   `json:"address"`
	CompanyName *string   `json:"companyName"`
	TaxID       *string   `json:"nip" binding:"omitempty,nip"`
	Tags        *[]string `json:"tags"`
	Notes       *string   `json:"notes"`
	Status      *string   `json:"status" binding:"omitempty,oneof=active inactive"`
}

type customerResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	CompanyName string    `json:"companyName,omitempty"`
	TaxID       string    `json:"nip,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	TotalOrders int       `json:"totalOrders"`
	TotalSpent  float64   `json:"totalSpent"`
	Status      string    `json:"status"`
}

func (h *Handler) createCustomer(c *gin.Context) {
	var payload customerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respond.BadRequest(c, err.Error())
		return
	}
	customer, err := h.service.Create(c.Request.Context(), toMutation(payload))
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCustomerResponse(customer))
}

func (h *Handler) updateCustomer(c *gin.Context) {
	var payload customerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respond.BadRequest(c, err.Error())
		return
	}
	customer, err := h.service.Update(c.Request.Context(), c.Param("id"), toMutation(payload))
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(customer))
}

func (h *Handler) getCustomer(c *gin.Context) {
	customer, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(customer))
}

func (h *Handler) listCustomers(c *gin.Context) {
	filter := ports.ListFilter{
		Type:   domain.Type(c.Query("type")),
		Status: domain.Status(c.Query("status")),
		Search: c.Query("search"),
	}
	customers, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	out := make([]customerResponse, 0, len(customers))
	for _, customer := range customers {
		out = append(out, toCustomerResponse(customer))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) deleteCustomer(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toMutation(payload customerRequest) ports.CustomerMutation {
	mutation := ports.CustomerMutation{
		Name:        payload.Name,
		Email:       payload.Email,
		Phone:       payload.Phone,
		Address:     payload.Address,
		CompanyName: payload.CompanyName,
		TaxID:       payload.TaxID,
		Tags:        payload.Tags,
		Notes:       payload.Notes,
	}
	if payload.Type != nil {
		customerType := domain.Type(*payload.Type)
		mutation.Type = &customerType
	}
	if payload.Status != nil {
		status := domain.Status(*payload.Status)
		mutation.Status = &status
	}
	return mutation
}

func toCustomerResponse(customer *domain.Customer) customerResponse {
	return customerResponse{
		ID:          customer.ID,
		Type:        string(customer.Type),
		Name:        customer.Name,
		Email:       customer.Email,
		Phone:       customer.Phone,
		Address:     customer.Address,
		CompanyName: customer.CompanyName,
		TaxID:       customer.TaxID,
		Tags:        customer.Tags,
		Notes:       customer.Notes,
		CreatedAt:   customer.CreatedAt,
		TotalOrders: customer.TotalOrders,
		TotalSpent:  customer.TotalSpent,
		Status:      string(customer.Status),
	}
}

func mapCustomerError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}
