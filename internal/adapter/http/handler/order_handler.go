package handler

import (
	"strconv"

	"webstore/internal/adapter/http/dto"
	"webstore/internal/adapter/http/middleware"
	"webstore/internal/core/ports"
	"webstore/pkg/apperror"
	"webstore/pkg/response"

	"github.com/gin-gonic/gin"
)

// OrderHandler handles order endpoints.
type OrderHandler struct {
	walletSvc ports.WalletService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(walletSvc ports.WalletService) *OrderHandler {
	return &OrderHandler{walletSvc: walletSvc}
}

// Place handles POST /api/v1/orders — places an order from the cart.
func (h *OrderHandler) Place(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	orderID, err := h.walletSvc.PlaceOrder(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.PlaceOrderResponse{OrderID: orderID})
}

// List handles GET /api/v1/orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	orders, err := h.walletSvc.Orders(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, orders)
}

// Get handles GET /api/v1/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("order id must be an integer"))
		return
	}

	order, err := h.walletSvc.Order(c.Request.Context(), userID, orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// Delete handles DELETE /api/v1/orders/:id — removes the order without refund.
func (h *OrderHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("order id must be an integer"))
		return
	}

	if err := h.walletSvc.DeleteOrder(c.Request.Context(), userID, orderID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Refund handles POST /api/v1/orders/:id/refund — credits the order's summary
// back and removes the order.
func (h *OrderHandler) Refund(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("order id must be an integer"))
		return
	}

	if err := h.walletSvc.RefundOrder(c.Request.Context(), userID, orderID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
