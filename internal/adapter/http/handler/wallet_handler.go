package handler

import (
	"strconv"

	"webstore/internal/adapter/http/dto"
	"webstore/internal/adapter/http/middleware"
	"webstore/internal/core/ports"
	"webstore/pkg/apperror"
	"webstore/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WalletHandler handles balance, bonus, cart and exchange endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// Balances handles GET /api/v1/wallet/balances.
func (h *WalletHandler) Balances(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	balances, err := h.walletSvc.Balances(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, balances)
}

// ClaimBonus handles POST /api/v1/wallet/bonus.
func (h *WalletHandler) ClaimBonus(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	amounts, err := h.walletSvc.ClaimBonus(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.BonusResponse{Amounts: amounts})
}

// Cart handles GET /api/v1/wallet/cart.
func (h *WalletHandler) Cart(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	cart, err := h.walletSvc.Cart(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cart)
}

// AddToCart handles POST /api/v1/wallet/cart.
func (h *WalletHandler) AddToCart(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	var discountPrice *decimal.Decimal
	if req.DiscountPrice != nil {
		dp, err := decimal.NewFromString(*req.DiscountPrice)
		if err != nil {
			response.Error(c, apperror.ErrInvalidAmount())
			return
		}
		discountPrice = &dp
	}

	err = h.walletSvc.AddToCart(c.Request.Context(), userID, ports.AddToCartRequest{
		ItemID:        req.ItemID,
		CurrencyID:    req.CurrencyID,
		Price:         price,
		Discount:      req.Discount,
		DiscountPrice: discountPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RemoveFromCart handles DELETE /api/v1/wallet/cart/:item_id.
func (h *WalletHandler) RemoveFromCart(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		response.Error(c, apperror.Validation("item id must be an integer"))
		return
	}

	if err := h.walletSvc.RemoveFromCart(c.Request.Context(), userID, itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ExchangeBoard handles GET /api/v1/wallet/exchange.
func (h *WalletHandler) ExchangeBoard(c *gin.Context) {
	quotes, err := h.walletSvc.ExchangeBoard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToExchangeQuoteResponses(quotes))
}

// Exchange handles POST /api/v1/wallet/exchange.
func (h *WalletHandler) Exchange(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	rate, err := decimal.NewFromString(req.RateAmount)
	if err != nil || rate.IsNegative() {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	err = h.walletSvc.Exchange(c.Request.Context(), userID, ports.ExchangeRequest{
		FromCurrencyID: req.FromCurrencyID,
		ToCurrencyID:   req.ToCurrencyID,
		RateAmount:     rate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
