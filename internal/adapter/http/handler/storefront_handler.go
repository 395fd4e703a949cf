package handler

import (
	"webstore/internal/adapter/http/dto"
	"webstore/internal/core/ports"
	"webstore/pkg/response"

	"github.com/gin-gonic/gin"
)

// StorefrontHandler handles storefront identity endpoints.
type StorefrontHandler struct {
	storefrontSvc ports.StorefrontService
}

// NewStorefrontHandler creates a new StorefrontHandler.
func NewStorefrontHandler(storefrontSvc ports.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{storefrontSvc: storefrontSvc}
}

// Current handles GET /api/v1/storefront.
func (h *StorefrontHandler) Current(c *gin.Context) {
	response.OK(c, dto.ToStoreResponse(h.storefrontSvc.Current()))
}

// Refresh handles POST /api/v1/storefront/refresh.
func (h *StorefrontHandler) Refresh(c *gin.Context) {
	store, err := h.storefrontSvc.Refresh(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToStoreResponse(store))
}
