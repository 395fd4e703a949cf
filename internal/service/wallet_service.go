package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"webstore/internal/core/domain"
	"webstore/internal/core/ports"
	"webstore/pkg/apperror"
	"webstore/pkg/keymutex"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WalletServiceImpl implements ports.WalletService. Every mutating operation
// is a whole read-modify-write of the user's wallet document, serialized by a
// per-user lock so concurrent requests cannot lose writes.
type WalletServiceImpl struct {
	walletRepo  ports.WalletRepository
	userRepo    ports.UserRepository
	catalogRepo ports.CatalogRepository
	amountGen   ports.AmountGenerator
	locks       *keymutex.KeyMutex
	log         zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	userRepo ports.UserRepository,
	catalogRepo ports.CatalogRepository,
	amountGen ports.AmountGenerator,
	rng *rand.Rand,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo:  walletRepo,
		userRepo:    userRepo,
		catalogRepo: catalogRepo,
		amountGen:   amountGen,
		locks:       keymutex.New(),
		rng:         rng,
		log:         log,
	}
}

// update runs one ledger operation as an atomic read-modify-write: the
// document is persisted only if the operation succeeded, so a failure never
// leaves a partially applied document behind.
func (s *WalletServiceImpl) update(ctx context.Context, userID int64, op func(*domain.Wallet) error) error {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	w, err := s.walletRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := op(w); err != nil {
		return err
	}
	return s.walletRepo.Save(ctx, userID, w)
}

// read loads the document without holding the per-user lock; reads observe
// whichever complete document was last persisted.
func (s *WalletServiceImpl) read(ctx context.Context, userID int64) (*domain.Wallet, error) {
	return s.walletRepo.Get(ctx, userID)
}

// Balances returns the per-currency balances.
func (s *WalletServiceImpl) Balances(ctx context.Context, userID int64) (map[int]decimal.Decimal, error) {
	w, err := s.read(ctx, userID)
	if err != nil {
		return nil, err
	}
	return w.Balances, nil
}

// ClaimBonus credits a generated amount of every currency and marks the
// user's bonus flag. The ledger does not stop repeat claims; the flag on the
// user record is the caller-visible evidence of the first claim.
func (s *WalletServiceImpl) ClaimBonus(ctx context.Context, userID int64) (map[int]decimal.Decimal, error) {
	currencies, err := s.catalogRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list currencies: %w", err))
	}

	amounts := make(map[int]decimal.Decimal, len(currencies))
	for _, c := range currencies {
		amounts[c.ID] = s.amountGen.BonusAmount(c)
	}

	if err := s.update(ctx, userID, func(w *domain.Wallet) error {
		return w.GrantBonus(amounts)
	}); err != nil {
		return nil, err
	}

	if err := s.userRepo.MarkBonusClaimed(ctx, userID); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("mark bonus claimed: %w", err))
	}

	s.log.Info().Int64("user_id", userID).Msg("bonus granted")
	return amounts, nil
}

// Cart returns the open shopping cart.
func (s *WalletServiceImpl) Cart(ctx context.Context, userID int64) (*domain.Cart, error) {
	w, err := s.read(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &w.Cart, nil
}

// AddToCart appends a quoted line to the cart. The referenced currency must
// exist in the catalog at the time of reference.
func (s *WalletServiceImpl) AddToCart(ctx context.Context, userID int64, req ports.AddToCartRequest) error {
	if err := s.requireCurrency(ctx, req.CurrencyID); err != nil {
		return err
	}

	line := domain.CartLine{
		ItemID:        req.ItemID,
		CurrencyID:    req.CurrencyID,
		Price:         req.Price,
		Discount:      req.Discount,
		DiscountPrice: req.DiscountPrice,
	}
	return s.update(ctx, userID, func(w *domain.Wallet) error {
		return w.AddToCart(line)
	})
}

// RemoveFromCart removes the earliest-inserted line for the item.
func (s *WalletServiceImpl) RemoveFromCart(ctx context.Context, userID int64, itemID int) error {
	return s.update(ctx, userID, func(w *domain.Wallet) error {
		return w.RemoveFromCart(itemID)
	})
}

// PlaceOrder turns the cart into an order if every currency balance covers
// its share of the summary.
func (s *WalletServiceImpl) PlaceOrder(ctx context.Context, userID int64) (int, error) {
	var orderID int
	err := s.update(ctx, userID, func(w *domain.Wallet) error {
		id, err := w.PlaceOrder(s.newOrderID)
		if err != nil {
			return err
		}
		orderID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info().Int64("user_id", userID).Int("order_id", orderID).Msg("order placed")
	return orderID, nil
}

// Orders returns all placed orders.
func (s *WalletServiceImpl) Orders(ctx context.Context, userID int64) (map[int]domain.Order, error) {
	w, err := s.read(ctx, userID)
	if err != nil {
		return nil, err
	}
	return w.Orders, nil
}

// Order returns one placed order.
func (s *WalletServiceImpl) Order(ctx context.Context, userID int64, orderID int) (*domain.Order, error) {
	w, err := s.read(ctx, userID)
	if err != nil {
		return nil, err
	}
	order, ok := w.Orders[orderID]
	if !ok {
		return nil, apperror.ErrNotFound("Order")
	}
	return &order, nil
}

// DeleteOrder cancels an order without touching balances.
func (s *WalletServiceImpl) DeleteOrder(ctx context.Context, userID int64, orderID int) error {
	return s.update(ctx, userID, func(w *domain.Wallet) error {
		return w.DeleteOrder(orderID)
	})
}

// RefundOrder credits the order's summary back and deletes the order.
func (s *WalletServiceImpl) RefundOrder(ctx context.Context, userID int64, orderID int) error {
	err := s.update(ctx, userID, func(w *domain.Wallet) error {
		return w.RefundOrder(orderID)
	})
	if err != nil {
		return err
	}

	s.log.Info().Int64("user_id", userID).Int("order_id", orderID).Msg("order refunded")
	return nil
}

// ExchangeBoard quotes one generated rate per source currency against a
// randomly picked target.
func (s *WalletServiceImpl) ExchangeBoard(ctx context.Context) ([]ports.ExchangeQuote, error) {
	currencies, err := s.catalogRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list currencies: %w", err))
	}

	quotes := make([]ports.ExchangeQuote, 0, len(currencies))
	for _, from := range currencies {
		s.rngMu.Lock()
		to := currencies[s.rng.Intn(len(currencies))]
		s.rngMu.Unlock()

		quotes = append(quotes, ports.ExchangeQuote{
			From:   from,
			To:     to,
			Amount: s.amountGen.ExchangeRate(to),
		})
	}
	return quotes, nil
}

// Exchange spends one unit of the source currency for the quoted amount of
// the target currency.
func (s *WalletServiceImpl) Exchange(ctx context.Context, userID int64, req ports.ExchangeRequest) error {
	if err := s.requireCurrency(ctx, req.FromCurrencyID); err != nil {
		return err
	}
	if err := s.requireCurrency(ctx, req.ToCurrencyID); err != nil {
		return err
	}

	return s.update(ctx, userID, func(w *domain.Wallet) error {
		return w.Exchange(req.FromCurrencyID, req.ToCurrencyID, req.RateAmount)
	})
}

func (s *WalletServiceImpl) requireCurrency(ctx context.Context, id int) error {
	c, err := s.catalogRepo.GetCurrency(ctx, id)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("get currency: %w", err))
	}
	if c == nil {
		return apperror.ErrUnknownCurrency(id)
	}
	return nil
}

func (s *WalletServiceImpl) newOrderID() int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return domain.OrderIDMin + s.rng.Intn(domain.OrderIDMax-domain.OrderIDMin+1)
}
