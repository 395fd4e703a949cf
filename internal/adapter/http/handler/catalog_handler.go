package handler

import (
	"strconv"

	"webstore/internal/adapter/http/dto"
	"webstore/internal/core/domain"
	"webstore/internal/core/ports"
	"webstore/pkg/apperror"
	"webstore/pkg/response"

	"github.com/gin-gonic/gin"
)

// CatalogHandler handles catalog browsing endpoints.
type CatalogHandler struct {
	catalogSvc ports.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogSvc ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// Home handles GET /api/v1/catalog/home.
func (h *CatalogHandler) Home(c *gin.Context) {
	page, err := h.catalogSvc.HomePage(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToHomePageResponse(page))
}

// ItemDetail handles GET /api/v1/catalog/items/:id.
func (h *CatalogHandler) ItemDetail(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("item id must be an integer"))
		return
	}

	detail, err := h.catalogSvc.ItemDetail(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToItemDetailResponse(detail))
}

// Search handles GET /api/v1/catalog/search?name=...&category_id=...
func (h *CatalogHandler) Search(c *gin.Context) {
	name := c.Query("name")

	var categoryID *int
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, apperror.Validation("category_id must be an integer"))
			return
		}
		categoryID = &id
	}

	items, err := h.catalogSvc.Search(c.Request.Context(), name, categoryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if items == nil {
		items = []domain.Item{}
	}
	response.OK(c, items)
}

// Currencies handles GET /api/v1/catalog/currencies.
func (h *CatalogHandler) Currencies(c *gin.Context) {
	currencies, err := h.catalogSvc.Currencies(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, currencies)
}

// Categories handles GET /api/v1/catalog/categories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.catalogSvc.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, categories)
}
