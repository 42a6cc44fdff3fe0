// Package broker defines the Broker interface and provides implementations
// for reading account state and submitting notional orders.
package broker

import (
	"context"

	"dollarbuy/internal/domain"
)

// Broker abstracts the brokerage operations a run consumes. Implementations
// render canonical symbols in their own ticker format.
type Broker interface {
	// Name returns the broker identifier (e.g. "alpaca", "simulator").
	Name() string

	// GetAccount returns the account's cash balance.
	GetAccount(ctx context.Context) (*domain.Account, error)

	// GetAsset returns metadata, including the fractionable flag, for sym.
	GetAsset(ctx context.Context, sym domain.Symbol) (*domain.Asset, error)

	// GetClock returns the brokerage market clock.
	GetClock(ctx context.Context) (*domain.Clock, error)

	// SubmitOrder sends an order to the brokerage for execution.
	SubmitOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderResult, error)
}
