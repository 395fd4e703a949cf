package service

import (
	"math/rand"
	"strconv"
	"sync"

	"webstore/internal/core/domain"

	"github.com/shopspring/decimal"
)

const (
	maxDemoPrice  = 99999999
	maxDemoAmount = 9999

	// One in ten quotes gets a discount. Discounts stay below 100% so the
	// discounted price can never go negative.
	discountChance = 10
	maxDiscountPct = 99
)

// RandomAmountGenerator implements ports.AmountGenerator. Amounts follow the
// storefront's demo scheme: draw an integer and shift the decimal point left
// by a random number of places. The rand source is injected so tests can
// seed it.
type RandomAmountGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAmountGenerator creates a generator over the given source.
func NewRandomAmountGenerator(rng *rand.Rand) *RandomAmountGenerator {
	return &RandomAmountGenerator{rng: rng}
}

// Price quotes a demo price in the given currency.
func (g *RandomAmountGenerator) Price(c domain.Currency) decimal.Decimal {
	return c.Round(g.scaled(maxDemoPrice))
}

// Discount occasionally quotes a discount on the price.
func (g *RandomAmountGenerator) Discount(c domain.Currency, price decimal.Decimal) (*int64, *decimal.Decimal) {
	g.mu.Lock()
	hit := g.rng.Intn(discountChance) == discountChance-1
	pct := int64(1 + g.rng.Intn(maxDiscountPct))
	g.mu.Unlock()

	if !hit {
		return nil, nil
	}

	discounted := c.Round(price.Sub(price.Mul(decimal.NewFromInt(pct)).Div(decimal.NewFromInt(100))))
	return &pct, &discounted
}

// BonusAmount draws one welcome-bonus amount for a currency.
func (g *RandomAmountGenerator) BonusAmount(c domain.Currency) decimal.Decimal {
	return c.Round(g.scaled(maxDemoAmount))
}

// ExchangeRate quotes how much of the target currency one unit buys.
func (g *RandomAmountGenerator) ExchangeRate(to domain.Currency) decimal.Decimal {
	return to.Round(g.scaled(maxDemoAmount))
}

// scaled draws an integer in [0, max] and shifts its decimal point left by a
// random number of places, up to the full digit count.
func (g *RandomAmountGenerator) scaled(max int64) decimal.Decimal {
	g.mu.Lock()
	v := g.rng.Int63n(max + 1)
	shift := g.rng.Intn(len(strconv.FormatInt(v, 10)) + 1)
	g.mu.Unlock()

	return decimal.NewFromInt(v).Shift(int32(-shift))
}
