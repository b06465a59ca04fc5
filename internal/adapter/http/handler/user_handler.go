package handler

import (
	"muhasebe-api/internal/adapter/http/dto"
	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"
	"muhasebe-api/pkg/apperror"
	"muhasebe-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler serves /api/user.
type UserHandler struct {
	users ports.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /api/user.
func (h *UserHandler) List(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}

	items, total, err := h.users.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, "Users", items, total)
}

// Me handles GET /api/user/me.
func (h *UserHandler) Me(c *gin.Context) {
	p, ok := domain.PrincipalFrom(c.Request.Context())
	if !ok {
		response.Error(c, apperror.ErrUnauthenticated())
		return
	}

	user, err := h.users.Get(c.Request.Context(), p.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Current user", user)
}

// Update handles POST /api/user/update.
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	upd := ports.UserUpdate{
		ID:           req.ID,
		Username:     req.Username,
		Password:     req.Password,
		Restrictions: req.Restrictions,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		upd.Role = &role
	}
	if req.Status != nil {
		status := domain.UserStatus(*req.Status)
		upd.Status = &status
	}

	user, err := h.users.Update(c.Request.Context(), upd)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "User updated", user)
}

// Delete handles POST /api/user/delete.
func (h *UserHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.users.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "User deleted", nil)
}
