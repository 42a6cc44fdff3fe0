package engine

import (
	"github.com/shopspring/decimal"

	"dollarbuy/internal/domain"
)

// Plan is the outcome of the affordability check.
type Plan struct {
	// Valid lists priced symbols in input order; each gets one order.
	Valid []domain.Symbol
	// Skipped lists symbols without a price.
	Skipped []domain.Symbol

	Notional  decimal.Decimal
	Cash      decimal.Decimal
	TotalCost decimal.Decimal
	Available decimal.Decimal
}

// Affordable reports whether cash covers every planned order.
func (p *Plan) Affordable() bool {
	return !p.Available.IsNegative()
}

// RiskManager sizes the run: one fixed notional per priced symbol.
type RiskManager struct {
	notional decimal.Decimal
}

// NewRiskManager creates a RiskManager spending notional per symbol.
func NewRiskManager(notional decimal.Decimal) *RiskManager {
	return &RiskManager{notional: notional}
}

// Plan partitions symbols by whether quotes holds a price for them and
// compares the total cost against cash. A symbol absent from quotes counts
// as unpriced.
func (rm *RiskManager) Plan(symbols []domain.Symbol, quotes map[domain.Symbol]domain.PriceQuote, cash decimal.Decimal) *Plan {
	p := &Plan{Notional: rm.notional, Cash: cash}
	for _, sym := range symbols {
		if q, ok := quotes[sym]; ok && q.HasPrice() {
			p.Valid = append(p.Valid, sym)
		} else {
			p.Skipped = append(p.Skipped, sym)
		}
	}
	p.TotalCost = rm.notional.Mul(decimal.NewFromInt(int64(len(p.Valid))))
	p.Available = cash.Sub(p.TotalCost)
	return p
}
