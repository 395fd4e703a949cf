package domain

import "github.com/shopspring/decimal"

// CartLine is one entry in the shopping cart: the item and the price it was
// quoted at. The same item added twice produces two lines.
type CartLine struct {
	ItemID        int              `json:"item_id"`
	CurrencyID    int              `json:"currency_id"`
	Price         decimal.Decimal  `json:"price"`
	Discount      *int64           `json:"discount,omitempty"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
}

// EffectivePrice returns the discounted price when present, else the quoted price.
func (l CartLine) EffectivePrice() decimal.Decimal {
	if l.DiscountPrice != nil {
		return *l.DiscountPrice
	}
	return l.Price
}

// Cart is the open shopping cart. Summary is denormalized per-currency totals
// of effective prices and is kept in lockstep by every mutating operation.
type Cart struct {
	Items   []CartLine              `json:"items"`
	Summary map[int]decimal.Decimal `json:"summary"`
}

// RecomputeSummary derives the per-currency totals from the line list. The
// stored Summary must always equal this.
func (c Cart) RecomputeSummary() map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal)
	for _, l := range c.Items {
		out[l.CurrencyID] = out[l.CurrencyID].Add(l.EffectivePrice())
	}
	return out
}

// Order is an immutable snapshot of the cart at placement time. It only ever
// changes by deletion (cancellation or refund-then-delete).
type Order struct {
	Items   []CartLine              `json:"items"`
	Summary map[int]decimal.Decimal `json:"summary"`
}

// Wallet is one user's ledger document: currency balances, the open cart and
// the placed orders. It is persisted whole; integer map keys marshal to the
// string keys of the wire format.
type Wallet struct {
	Cart     Cart                    `json:"shopping_cart"`
	Orders   map[int]Order           `json:"orders"`
	Balances map[int]decimal.Decimal `json:"currencies"`
}

// NewWallet creates an empty wallet with every known currency at zero balance.
func NewWallet(currencyIDs []int) *Wallet {
	w := &Wallet{
		Cart: Cart{
			Items:   []CartLine{},
			Summary: make(map[int]decimal.Decimal),
		},
		Orders:   make(map[int]Order),
		Balances: make(map[int]decimal.Decimal),
	}
	for _, id := range currencyIDs {
		w.Balances[id] = decimal.Zero
	}
	return w
}
