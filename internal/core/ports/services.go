package ports

import (
	"context"
	"time"

	"webstore/internal/core/domain"

	"github.com/shopspring/decimal"
)

// TokenService handles session token operations.
type TokenService interface {
	Generate(userID int64) (string, time.Time, error)
	Validate(tokenString string) (int64, error)
}

// HashService handles password hashing.
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// AmountGenerator produces the demo amounts the storefront quotes: item
// prices, occasional discounts, welcome-bonus amounts and exchange rates.
// It is injectable so tests supply deterministic values. Implementations
// round per the currency's integer flag.
type AmountGenerator interface {
	Price(c domain.Currency) decimal.Decimal
	// Discount returns a percentage and the discounted price, or (nil, nil)
	// when no discount applies to this quote.
	Discount(c domain.Currency, price decimal.Decimal) (*int64, *decimal.Decimal)
	BonusAmount(c domain.Currency) decimal.Decimal
	ExchangeRate(to domain.Currency) decimal.Decimal
}

// --- Service Ports (Business Logic) ---

// AuthService defines registration, login and profile management.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, time.Time, error)
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, req RegisterRequest) (*domain.User, error)
}

// RegisterRequest holds validated input for registration and profile edits.
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
	Surname  string
	Age      int
	Address  string
}

// WalletService exposes the wallet ledger operations, each applied as a
// whole read-modify-write on the user's document under a per-user lock.
type WalletService interface {
	Balances(ctx context.Context, userID int64) (map[int]decimal.Decimal, error)
	// ClaimBonus credits generated amounts for every currency and marks the
	// user's bonus flag. Returns the granted amounts.
	ClaimBonus(ctx context.Context, userID int64) (map[int]decimal.Decimal, error)
	Cart(ctx context.Context, userID int64) (*domain.Cart, error)
	AddToCart(ctx context.Context, userID int64, req AddToCartRequest) error
	RemoveFromCart(ctx context.Context, userID int64, itemID int) error
	PlaceOrder(ctx context.Context, userID int64) (int, error)
	Orders(ctx context.Context, userID int64) (map[int]domain.Order, error)
	Order(ctx context.Context, userID int64, orderID int) (*domain.Order, error)
	DeleteOrder(ctx context.Context, userID int64, orderID int) error
	RefundOrder(ctx context.Context, userID int64, orderID int) error
	// ExchangeBoard quotes one generated rate per source currency.
	ExchangeBoard(ctx context.Context) ([]ExchangeQuote, error)
	Exchange(ctx context.Context, userID int64, req ExchangeRequest) error
}

// AddToCartRequest holds a priced cart line from the boundary.
type AddToCartRequest struct {
	ItemID        int
	CurrencyID    int
	Price         decimal.Decimal
	Discount      *int64
	DiscountPrice *decimal.Decimal
}

// ExchangeRequest holds a quoted currency exchange.
type ExchangeRequest struct {
	FromCurrencyID int
	ToCurrencyID   int
	RateAmount     decimal.Decimal
}

// ExchangeQuote is one row of the exchange board.
type ExchangeQuote struct {
	From   domain.Currency
	To     domain.Currency
	Amount decimal.Decimal
}

// CatalogService assembles catalog view data.
type CatalogService interface {
	HomePage(ctx context.Context) (*HomePage, error)
	ItemDetail(ctx context.Context, itemID int) (*ItemDetail, error)
	Search(ctx context.Context, nameSubstring string, categoryID *int) ([]domain.Item, error)
	Currencies(ctx context.Context) ([]domain.Currency, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

// HomePage is the main-page selection: a random sample of the catalog with
// one item promoted as the special offer.
type HomePage struct {
	Items        []domain.Item
	SpecialOffer *SpecialOffer
}

// SpecialOffer is the promoted item with only the headline description segment.
type SpecialOffer struct {
	Item     domain.Item
	Headline string
}

// ItemDetail is the item page view: the item, its split description
// properties and a price quote.
type ItemDetail struct {
	Item       domain.Item
	Properties []string
	Quote      PriceQuote
}

// PriceQuote is a price in a concrete currency, optionally discounted. Quotes
// for items without a special price are generated per request.
type PriceQuote struct {
	CurrencyID    int
	Price         decimal.Decimal
	Discount      *int64
	DiscountPrice *decimal.Decimal
}

// StorefrontService tracks which store identity is current. The selection is
// explicit state owned by this service, not a process-wide global.
type StorefrontService interface {
	Current() domain.Store
	// Refresh picks a new store at random and returns it.
	Refresh(ctx context.Context) (domain.Store, error)
}
