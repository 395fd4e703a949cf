package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"webstore/internal/core/domain"
	"webstore/internal/core/ports"
	"webstore/pkg/apperror"

	"github.com/rs/zerolog"
)

// CatalogServiceImpl implements ports.CatalogService. It assembles view data
// from the read-only catalog and quotes demo prices for items that have no
// special price.
type CatalogServiceImpl struct {
	catalogRepo ports.CatalogRepository
	amountGen   ports.AmountGenerator
	log         zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewCatalogService creates a new CatalogServiceImpl.
func NewCatalogService(catalogRepo ports.CatalogRepository, amountGen ports.AmountGenerator, rng *rand.Rand, log zerolog.Logger) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		catalogRepo: catalogRepo,
		amountGen:   amountGen,
		rng:         rng,
		log:         log,
	}
}

// HomePage samples a quarter of the catalog in random order and promotes one
// sampled item to the special offer slot.
func (s *CatalogServiceImpl) HomePage(ctx context.Context) (*ports.HomePage, error) {
	items, err := s.catalogRepo.ListItems(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list items: %w", err))
	}

	shuffled := append([]domain.Item{}, items...)
	s.rngMu.Lock()
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	s.rngMu.Unlock()

	sample := shuffled[:len(shuffled)/4]
	page := &ports.HomePage{Items: sample}
	if len(sample) > 0 {
		offer := sample[len(sample)-1]
		page.Items = sample[:len(sample)-1]
		page.SpecialOffer = &ports.SpecialOffer{
			Item:     offer,
			Headline: headline(offer.Description),
		}
	}
	return page, nil
}

// ItemDetail returns the item page view with a price quote. Items carrying a
// special price are quoted as stored; everything else gets a generated price
// in a randomly picked currency, with an occasional discount.
func (s *CatalogServiceImpl) ItemDetail(ctx context.Context, itemID int) (*ports.ItemDetail, error) {
	item, err := s.catalogRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get item: %w", err))
	}
	if item == nil {
		return nil, apperror.ErrNotFound("Item")
	}

	quote, err := s.quote(ctx, item)
	if err != nil {
		return nil, err
	}

	return &ports.ItemDetail{
		Item:       *item,
		Properties: strings.Split(item.Description, ";"),
		Quote:      quote,
	}, nil
}

func (s *CatalogServiceImpl) quote(ctx context.Context, item *domain.Item) (ports.PriceQuote, error) {
	var currency *domain.Currency
	var err error

	quote := ports.PriceQuote{}
	if item.SpecialPrice != nil && item.SpecialCurrencyID != nil {
		currency, err = s.catalogRepo.GetCurrency(ctx, *item.SpecialCurrencyID)
		if err != nil {
			return quote, apperror.ErrDatabaseError(fmt.Errorf("get currency: %w", err))
		}
		if currency == nil {
			return quote, apperror.ErrUnknownCurrency(*item.SpecialCurrencyID)
		}
		quote.Price = *item.SpecialPrice
	} else {
		currencies, err := s.catalogRepo.ListCurrencies(ctx)
		if err != nil {
			return quote, apperror.ErrDatabaseError(fmt.Errorf("list currencies: %w", err))
		}
		if len(currencies) == 0 {
			return quote, apperror.ErrNotFound("Currency")
		}
		s.rngMu.Lock()
		picked := currencies[s.rng.Intn(len(currencies))]
		s.rngMu.Unlock()
		currency = &picked
		quote.Price = s.amountGen.Price(picked)
	}

	quote.CurrencyID = currency.ID
	quote.Discount, quote.DiscountPrice = s.amountGen.Discount(*currency, quote.Price)
	return quote, nil
}

// Search matches item names by substring, optionally narrowed to a category.
func (s *CatalogServiceImpl) Search(ctx context.Context, nameSubstring string, categoryID *int) ([]domain.Item, error) {
	if categoryID != nil {
		category, err := s.catalogRepo.GetCategory(ctx, *categoryID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("get category: %w", err))
		}
		if category == nil {
			return nil, apperror.ErrNotFound("Category")
		}
	}

	items, err := s.catalogRepo.SearchItems(ctx, nameSubstring, categoryID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("search items: %w", err))
	}
	return items, nil
}

// Currencies lists all currencies.
func (s *CatalogServiceImpl) Currencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.catalogRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list currencies: %w", err))
	}
	return currencies, nil
}

// Categories lists all categories.
func (s *CatalogServiceImpl) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.catalogRepo.ListCategories(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list categories: %w", err))
	}
	return categories, nil
}

// headline returns the first description segment.
func headline(description string) string {
	if i := strings.Index(description, ";"); i >= 0 {
		return description[:i]
	}
	return description
}
