package domain

import "github.com/shopspring/decimal"

// Currency is a unit of payment. IsInteger currencies carry no fractional part;
// derived amounts in them are truncated.
type Currency struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Logotype  string `json:"logotype"`
	IsInteger bool   `json:"is_integer"`
}

// Round truncates amount to the currency's precision.
func (c Currency) Round(amount decimal.Decimal) decimal.Decimal {
	if c.IsInteger {
		return amount.Truncate(0)
	}
	return amount
}

// Category groups items for search filtering.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Item is a catalog product. Items without a special price are quoted with a
// generated demo price at display time.
type Item struct {
	ID                int              `json:"id"`
	Name              string           `json:"name"`
	CategoryID        int              `json:"category_id"`
	Description       string           `json:"description"`
	SpecialPrice      *decimal.Decimal `json:"special_price,omitempty"`
	SpecialCurrencyID *int             `json:"special_currency_id,omitempty"`
	PhotoName         string           `json:"photo_name"`
}

// Store is one storefront identity (name, slogan, artwork). One store is
// current at a time and is threaded through request handling explicitly.
type Store struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slogan   string `json:"slogan"`
	Logotype string `json:"logotype"`
	Icon     string `json:"icon"`
}
