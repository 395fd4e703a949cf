package dto

import (
	"webstore/internal/core/domain"
	"webstore/internal/core/ports"

	"github.com/shopspring/decimal"
)

// RegisterRequest is the request body for user registration and profile edits.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Surname  string `json:"surname" binding:"required,min=1,max=100"`
	Age      int    `json:"age" binding:"required,gte=1,lte=150"`
	Address  string `json:"address" binding:"max=300"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// AddToCartRequest is the request body for adding a priced line to the cart.
// Amounts travel as strings to keep decimal precision intact.
type AddToCartRequest struct {
	ItemID        int     `json:"item_id" binding:"required"`
	CurrencyID    int     `json:"currency_id" binding:"required"`
	Price         string  `json:"price" binding:"required"`
	Discount      *int64  `json:"discount,omitempty"`
	DiscountPrice *string `json:"discount_price,omitempty"`
}

// ExchangeRequest is the request body for a currency exchange.
type ExchangeRequest struct {
	FromCurrencyID int    `json:"from_currency_id" binding:"required"`
	ToCurrencyID   int    `json:"to_currency_id" binding:"required"`
	RateAmount     string `json:"rate_amount" binding:"required"`
}

// PlaceOrderResponse carries the assigned order number.
type PlaceOrderResponse struct {
	OrderID int `json:"order_id"`
}

// BonusResponse carries the granted welcome-bonus amounts per currency.
type BonusResponse struct {
	Amounts map[int]decimal.Decimal `json:"amounts"`
}

// StoreResponse is the storefront identity view.
type StoreResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slogan   string `json:"slogan"`
	Logotype string `json:"logotype"`
	Icon     string `json:"icon"`
}

// PriceQuoteResponse is a quoted price in a concrete currency.
type PriceQuoteResponse struct {
	CurrencyID    int              `json:"currency_id"`
	Price         decimal.Decimal  `json:"price"`
	Discount      *int64           `json:"discount,omitempty"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
}

// SpecialOfferResponse is the promoted home-page item.
type SpecialOfferResponse struct {
	Item     domain.Item `json:"item"`
	Headline string      `json:"headline"`
}

// HomePageResponse is the main-page selection.
type HomePageResponse struct {
	Items        []domain.Item         `json:"items"`
	SpecialOffer *SpecialOfferResponse `json:"special_offer,omitempty"`
}

// ItemDetailResponse is the item page view.
type ItemDetailResponse struct {
	Item       domain.Item        `json:"item"`
	Properties []string           `json:"properties"`
	Quote      PriceQuoteResponse `json:"quote"`
}

// ExchangeQuoteResponse is one row of the exchange board.
type ExchangeQuoteResponse struct {
	From   domain.Currency `json:"from"`
	To     domain.Currency `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// ToStoreResponse converts a store.
func ToStoreResponse(s domain.Store) StoreResponse {
	return StoreResponse{
		ID:       s.ID,
		Name:     s.Name,
		Slogan:   s.Slogan,
		Logotype: s.Logotype,
		Icon:     s.Icon,
	}
}

// ToPriceQuoteResponse converts a quote.
func ToPriceQuoteResponse(q ports.PriceQuote) PriceQuoteResponse {
	return PriceQuoteResponse{
		CurrencyID:    q.CurrencyID,
		Price:         q.Price,
		Discount:      q.Discount,
		DiscountPrice: q.DiscountPrice,
	}
}

// ToHomePageResponse converts the home-page view.
func ToHomePageResponse(p *ports.HomePage) HomePageResponse {
	resp := HomePageResponse{Items: p.Items}
	if resp.Items == nil {
		resp.Items = []domain.Item{}
	}
	if p.SpecialOffer != nil {
		resp.SpecialOffer = &SpecialOfferResponse{
			Item:     p.SpecialOffer.Item,
			Headline: p.SpecialOffer.Headline,
		}
	}
	return resp
}

// ToItemDetailResponse converts the item page view.
func ToItemDetailResponse(d *ports.ItemDetail) ItemDetailResponse {
	return ItemDetailResponse{
		Item:       d.Item,
		Properties: d.Properties,
		Quote:      ToPriceQuoteResponse(d.Quote),
	}
}

// ToExchangeQuoteResponses converts the exchange board.
func ToExchangeQuoteResponses(quotes []ports.ExchangeQuote) []ExchangeQuoteResponse {
	out := make([]ExchangeQuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, ExchangeQuoteResponse{From: q.From, To: q.To, Amount: q.Amount})
	}
	return out
}
