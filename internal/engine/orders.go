package engine

import (
	"context"
	"fmt"

	"dollarbuy/internal/domain"
)

// submitAll places one order per symbol, in order, waiting on the order
// rate limiter before each. A failed symbol never stops the loop; only a
// cancelled context does.
func (e *Engine) submitAll(ctx context.Context, symbols []domain.Symbol) ([]domain.OrderResult, error) {
	results := make([]domain.OrderResult, 0, len(symbols))
	for i, sym := range symbols {
		if err := e.limiter.Wait(ctx); err != nil {
			e.log.Warn("order submission interrupted", "remaining", len(symbols)-i, "err", err)
			return results, fmt.Errorf("submitting orders: %w", err)
		}
		results = append(results, e.submitOne(ctx, sym))
	}
	return results, nil
}

func (e *Engine) submitOne(ctx context.Context, sym domain.Symbol) domain.OrderResult {
	// Checked per order: eligibility can change between pricing and now.
	if !e.isFractionable(ctx, sym) {
		e.out.NotFractionable(sym)
		return domain.OrderResult{Symbol: sym, Skipped: true}
	}

	req := domain.OrderRequest{
		Symbol:      sym,
		Notional:    e.opts.Notional,
		Side:        domain.OrderSideBuy,
		Type:        domain.OrderTypeMarket,
		TimeInForce: e.opts.TimeInForce,
	}

	if e.opts.DryRun {
		e.out.OrderDryRun(req)
		return domain.OrderResult{Symbol: sym, Status: "dry-run"}
	}

	res, err := e.broker.SubmitOrder(ctx, req)
	if err != nil {
		e.log.Error("order failed", "symbol", sym.String(), "err", err)
		e.out.OrderFailed(sym, err)
		return domain.OrderResult{Symbol: sym, Err: err}
	}
	e.log.Info("order submitted", "symbol", sym.String(), "id", res.OrderID, "status", res.Status)
	e.out.OrderSubmitted(req, res.OrderID)
	return *res
}

// isFractionable fails closed: any lookup error, or an asset that is not
// tradable, counts as ineligible.
func (e *Engine) isFractionable(ctx context.Context, sym domain.Symbol) bool {
	asset, err := e.broker.GetAsset(ctx, sym)
	if err != nil {
		e.log.Warn("fractional check failed", "symbol", sym.String(), "err", err)
		e.out.EligibilityError(sym, err)
		return false
	}
	if !asset.Tradable {
		e.log.Info("asset not tradable", "symbol", sym.String())
		return false
	}
	return asset.Fractionable
}
