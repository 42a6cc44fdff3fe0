// Package domain defines the value types shared across dollarbuy: symbols,
// price quotes, order requests, and account snapshots.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Enumerations
// ---------------------------------------------------------------------------

// OrderSide is the direction of an order.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

// OrderType is the execution style of an order.
type OrderType string

const (
	OrderTypeMarket OrderType = "market"
)

// TimeInForce controls the window in which an order may execute.
type TimeInForce string

const (
	// TimeInForceOPG executes only in the next market-open auction.
	TimeInForceOPG TimeInForce = "opg"
	// TimeInForceDay is valid through the current (or next) trading day.
	TimeInForceDay TimeInForce = "day"
)

// ErrInvalidTimeInForce is returned by ParseTimeInForce for anything other
// than opg or day.
var ErrInvalidTimeInForce = errors.New("unsupported time in force (want opg or day)")

// ParseTimeInForce accepts "opg" or "day" in any case.
func ParseTimeInForce(s string) (TimeInForce, error) {
	switch tif := TimeInForce(strings.ToLower(strings.TrimSpace(s))); tif {
	case TimeInForceOPG, TimeInForceDay:
		return tif, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrInvalidTimeInForce)
	}
}

// Describe returns a short phrase for console output.
func (t TimeInForce) Describe() string {
	switch t {
	case TimeInForceOPG:
		return "to execute at market open"
	case TimeInForceDay:
		return "valid for the trading day"
	}
	return string(t)
}

// ---------------------------------------------------------------------------
// Prices and orders
// ---------------------------------------------------------------------------

// PriceQuote pairs a symbol with its most recent daily close. A nil Price
// means the lookup failed.
type PriceQuote struct {
	Symbol Symbol
	Price  *decimal.Decimal
}

// NewPriceQuote returns a quote whose price is rounded to cents.
func NewPriceQuote(sym Symbol, price decimal.Decimal) PriceQuote {
	p := price.Round(2)
	return PriceQuote{Symbol: sym, Price: &p}
}

// MissingQuote returns a quote with no price.
func MissingQuote(sym Symbol) PriceQuote {
	return PriceQuote{Symbol: sym}
}

// HasPrice reports whether the lookup produced a price.
func (q PriceQuote) HasPrice() bool { return q.Price != nil }

// OrderRequest is a notional market order. It is submitted and forgotten.
type OrderRequest struct {
	Symbol      Symbol
	Notional    decimal.Decimal
	Side        OrderSide
	Type        OrderType
	TimeInForce TimeInForce
}

// OrderResult records what happened to one order during a run. It lives only
// for the duration of the process.
type OrderResult struct {
	Symbol  Symbol
	OrderID string
	Status  string
	// Skipped is set when the symbol failed the fractional check.
	Skipped bool
	Err     error
}

// Submitted reports whether the brokerage accepted the order.
func (r OrderResult) Submitted() bool { return !r.Skipped && r.Err == nil }

// ---------------------------------------------------------------------------
// Account state
// ---------------------------------------------------------------------------

// Account is the subset of brokerage account data the run needs.
type Account struct {
	ID   string
	Cash decimal.Decimal
}

// Asset is brokerage metadata for one tradable instrument.
type Asset struct {
	Symbol       string
	Tradable     bool
	Fractionable bool
}

// Clock is the brokerage market clock.
type Clock struct {
	Timestamp time.Time
	IsOpen    bool
	NextOpen  time.Time
	NextClose time.Time
}
