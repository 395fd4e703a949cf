package domain

import (
	"webstore/pkg/apperror"

	"github.com/shopspring/decimal"
)

// Order IDs are drawn uniformly from a fixed six-digit space, disjoint from
// item and currency IDs.
const (
	OrderIDMin = 100000
	OrderIDMax = 999999
)

// The wallet ledger operations below are pure document transforms: each one
// validates fully before touching the wallet, so a returned error guarantees
// the document is unchanged. Persistence is the caller's concern.

// AddToCart appends a line and adds its effective price to the summary.
func (w *Wallet) AddToCart(line CartLine) error {
	if line.Price.IsNegative() {
		return apperror.ErrInvalidAmount()
	}
	if line.DiscountPrice != nil && line.DiscountPrice.IsNegative() {
		return apperror.ErrInvalidAmount()
	}

	w.Cart.Items = append(w.Cart.Items, line)
	w.Cart.Summary[line.CurrencyID] = w.Cart.Summary[line.CurrencyID].Add(line.EffectivePrice())
	return nil
}

// RemoveFromCart removes the first line matching itemID and subtracts its
// effective price from the summary. With duplicate item IDs in the cart only
// the earliest-inserted instance is removed per call.
func (w *Wallet) RemoveFromCart(itemID int) error {
	idx := -1
	for i, l := range w.Cart.Items {
		if l.ItemID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperror.ErrNotFound("Cart item")
	}

	line := w.Cart.Items[idx]
	w.Cart.Items = append(w.Cart.Items[:idx], w.Cart.Items[idx+1:]...)

	remaining := w.Cart.Summary[line.CurrencyID].Sub(line.EffectivePrice())
	if w.cartUsesCurrency(line.CurrencyID) {
		w.Cart.Summary[line.CurrencyID] = remaining
	} else {
		delete(w.Cart.Summary, line.CurrencyID)
	}
	return nil
}

func (w *Wallet) cartUsesCurrency(currencyID int) bool {
	for _, l := range w.Cart.Items {
		if l.CurrencyID == currencyID {
			return true
		}
	}
	return false
}

// PlaceOrder checks every currency in the cart summary against the balances,
// and only if all of them are covered debits the balances, snapshots the cart
// into a new order and clears the cart. newID supplies candidate order IDs;
// collisions with existing orders are retried.
func (w *Wallet) PlaceOrder(newID func() int) (int, error) {
	for currencyID, total := range w.Cart.Summary {
		if w.Balances[currencyID].LessThan(total) {
			return 0, apperror.ErrInsufficientFunds()
		}
	}

	orderID := newID()
	for {
		if _, taken := w.Orders[orderID]; !taken {
			break
		}
		orderID = newID()
	}

	order := Order{
		Items:   append([]CartLine{}, w.Cart.Items...),
		Summary: make(map[int]decimal.Decimal, len(w.Cart.Summary)),
	}
	for currencyID, total := range w.Cart.Summary {
		order.Summary[currencyID] = total
		w.Balances[currencyID] = w.Balances[currencyID].Sub(total)
	}
	w.Orders[orderID] = order

	w.Cart.Items = []CartLine{}
	w.Cart.Summary = make(map[int]decimal.Decimal)
	return orderID, nil
}

// DeleteOrder removes the order record. Balances are untouched; cancellation
// of an unplaced refund is not this operation's business.
func (w *Wallet) DeleteOrder(orderID int) error {
	if _, ok := w.Orders[orderID]; !ok {
		return apperror.ErrNotFound("Order")
	}
	delete(w.Orders, orderID)
	return nil
}

// RefundOrder credits every currency in the order's summary back to the
// balances and deletes the order. The existence check happens before any
// balance mutation.
func (w *Wallet) RefundOrder(orderID int) error {
	order, ok := w.Orders[orderID]
	if !ok {
		return apperror.ErrNotFound("Order")
	}
	for currencyID, total := range order.Summary {
		w.Balances[currencyID] = w.Balances[currencyID].Add(total)
	}
	delete(w.Orders, orderID)
	return nil
}

// GrantBonus credits the given amount per currency. Marking the user's
// bonus-claimed flag is the caller's responsibility; repeated grants are not
// prevented here.
func (w *Wallet) GrantBonus(amounts map[int]decimal.Decimal) error {
	for _, amount := range amounts {
		if amount.IsNegative() {
			return apperror.ErrInvalidAmount()
		}
	}
	for currencyID, amount := range amounts {
		w.Balances[currencyID] = w.Balances[currencyID].Add(amount)
	}
	return nil
}

// Exchange converts at a quoted rate: one whole unit of the source currency
// buys rateAmount of the target currency. The unit cost is fixed, not
// proportional to the amount received.
func (w *Wallet) Exchange(fromID, toID int, rateAmount decimal.Decimal) error {
	if rateAmount.IsNegative() {
		return apperror.ErrInvalidAmount()
	}
	if w.Balances[fromID].LessThan(decimal.NewFromInt(1)) {
		return apperror.ErrInsufficientFunds()
	}
	w.Balances[fromID] = w.Balances[fromID].Sub(decimal.NewFromInt(1))
	w.Balances[toID] = w.Balances[toID].Add(rateAmount)
	return nil
}
