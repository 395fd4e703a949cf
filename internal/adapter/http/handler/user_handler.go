package handler

import (
	"webstore/internal/adapter/http/dto"
	"webstore/internal/adapter/http/middleware"
	"webstore/internal/core/ports"
	"webstore/pkg/apperror"
	"webstore/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler handles account profile endpoints.
type UserHandler struct {
	authSvc ports.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authSvc ports.AuthService) *UserHandler {
	return &UserHandler{authSvc: authSvc}
}

// GetProfile handles GET /api/v1/users/me.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	user, err := h.authSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user)
}

// UpdateProfile handles PUT /api/v1/users/me. The whole profile is rewritten,
// matching registration's shape.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)
	if err := dto.ValidatePassword(req.Password); err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.authSvc.UpdateProfile(c.Request.Context(), userID, ports.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Surname:  req.Surname,
		Age:      req.Age,
		Address:  req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user)
}
