package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/florenda/florenda-api/internal/domains/users/application"
	"github.com/florenda/florenda-api/internal/domains/users/domain"
	"github.com/florenda/florenda-api/internal/domains/users/ports"
	apierrors "github.com/florenda/florenda-api/internal/shared/errors"
)

// Handler exposes staff account and session endpoints over HTTP.
type Handler struct {
	service ports.Service
	respond *apierrors.ChainedResponder
}

func NewHandler(service ports.Service) *Handler {
	h := &Handler{service: service}
	h.respond = apierrors.NewChainedResponder("", mapUserError)
	return h
}

// RegisterRoutes mounts the user endpoints. Login sits outside the
// authenticated group; the rest is expected to be mounted behind auth.
func (h *Handler) RegisterRoutes(public, protected gin.IRouter) {
	public.POST("/auth/login", h.login)
	protected.POST("/auth/logout", h.logout)
	protected.GET("/auth/me", h.currentUser)

	users := protected.Group("/users")
	users.POST("", h.createUser)
	users.GET("", h.listUsers)
	users.GET("/:username", h.getUser)
	users.PUT("/:username", h.updateUser)
	users.DELETE("/:username", h.deleteUser)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=4"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"omitempty,email"`
	Role      string `json:"role" binding:"omitempty,oneof=admin staff"`
	Active    *bool  `json:"active"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
}

func (h *Handler) login(c *gin.Context) {
	var payload loginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respond.BadRequest(c, err.Error())
		return
	}
	token, err := h.service.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	user, err := h.service.GetByUsername(c.Request.Context(), payload.Username)
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Token: token, User: toUserResponse(user)})
}

func (h *Handler) logout(c *gin.Context) {
	user := AuthenticatedUser(c)
	if user != nil {
		h.service.Logout(c.Request.Context(), user.Username)
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) currentUser(c *gin.Context) {
	user := AuthenticatedUser(c)
	if user == nil {
		h.respond.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *Handler) createUser(c *gin.Context) {
	var payload userRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respond.BadRequest(c, err.Error())
		return
	}
	user, err := domain.NewUser(0, payload.Username, payload.Password, domain.Role(payload.Role))
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	if err := user.UpdateProfile(payload.FirstName, payload.LastName, payload.Email); err != nil {
		h.respond.RespondError(c, err)
		return
	}
	if payload.Active != nil {
		user.Active = *payload.Active
	}
	saved, err := h.service.CreateUser(c.Request.Context(), user)
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(saved))
}

func (h *Handler) updateUser(c *gin.Context) {
	var payload userRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respond.BadRequest(c, err.Error())
		return
	}
	user, err := domain.NewUser(0, c.Param("username"), payload.Password, domain.Role(payload.Role))
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	if err := user.UpdateProfile(payload.FirstName, payload.LastName, payload.Email); err != nil {
		h.respond.RespondError(c, err)
		return
	}
	if payload.Active != nil {
		user.Active = *payload.Active
	}
	saved, err := h.service.Update(c.Request.Context(), c.Param("username"), user)
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(saved))
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.service.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) deleteUser(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("username")); err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      string(user.Role),
		Active:    user.Active,
	}
}

func mapUserError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrAuthentication):
		return apierrors.ErrUnauthorized.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidInput),
		errors.Is(err, domain.ErrEmptyUsername),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidRole):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}
