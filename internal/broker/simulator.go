package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"dollarbuy/internal/domain"
)

// Compile-time interface check.
var _ Broker = (*SimulatorBroker)(nil)

// SimulatedOrder is an order accepted by the SimulatorBroker, with the
// symbol as the brokerage would have received it.
type SimulatedOrder struct {
	ID      string
	Ticker  string
	Request domain.OrderRequest
}

// SimulatorBroker implements the Broker interface for dry runs and tests. It
// keeps account, asset, and order state in memory without making external
// API calls. Keys of Assets, AssetErrs and OrderErrs are rendered tickers.
type SimulatorBroker struct {
	Cash       decimal.Decimal
	AccountErr error
	Clock      domain.Clock
	ClockErr   error

	Assets    map[string]domain.Asset
	AssetErrs map[string]error
	OrderErrs map[string]error

	// Orders lists accepted orders in submission order.
	Orders []SimulatedOrder

	format domain.SymbolFormat
}

// NewSimulatorBroker creates a SimulatorBroker holding cash and rendering
// symbols in format. Unknown assets are reported as not found.
func NewSimulatorBroker(cash decimal.Decimal, format domain.SymbolFormat) *SimulatorBroker {
	return &SimulatorBroker{
		Cash:      cash,
		Assets:    make(map[string]domain.Asset),
		AssetErrs: make(map[string]error),
		OrderErrs: make(map[string]error),
		format:    format,
	}
}

// AddAsset registers sym with the given fractionable flag.
func (b *SimulatorBroker) AddAsset(sym domain.Symbol, fractionable bool) {
	ticker := b.format.Render(sym)
	b.Assets[ticker] = domain.Asset{Symbol: ticker, Tradable: true, Fractionable: fractionable}
}

// Name returns "simulator".
func (b *SimulatorBroker) Name() string {
	return "simulator"
}

// GetAccount returns the simulated cash balance.
func (b *SimulatorBroker) GetAccount(_ context.Context) (*domain.Account, error) {
	if b.AccountErr != nil {
		return nil, b.AccountErr
	}
	return &domain.Account{ID: "simulator", Cash: b.Cash}, nil
}

// GetAsset looks sym up in the in-memory asset table.
func (b *SimulatorBroker) GetAsset(_ context.Context, sym domain.Symbol) (*domain.Asset, error) {
	ticker := b.format.Render(sym)
	if err := b.AssetErrs[ticker]; err != nil {
		return nil, err
	}
	a, ok := b.Assets[ticker]
	if !ok {
		return nil, fmt.Errorf("asset not found: %s", ticker)
	}
	return &a, nil
}

// GetClock returns the configured clock, stamped with the current time when
// unset.
func (b *SimulatorBroker) GetClock(_ context.Context) (*domain.Clock, error) {
	if b.ClockErr != nil {
		return nil, b.ClockErr
	}
	c := b.Clock
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now()
	}
	return &c, nil
}

// SubmitOrder records the order and debits its notional from cash.
func (b *SimulatorBroker) SubmitOrder(_ context.Context, req domain.OrderRequest) (*domain.OrderResult, error) {
	ticker := b.format.Render(req.Symbol)
	if err := b.OrderErrs[ticker]; err != nil {
		return nil, err
	}
	id := fmt.Sprintf("sim-%d", len(b.Orders)+1)
	b.Orders = append(b.Orders, SimulatedOrder{ID: id, Ticker: ticker, Request: req})
	b.Cash = b.Cash.Sub(req.Notional)
	return &domain.OrderResult{Symbol: req.Symbol, OrderID: id, Status: "accepted"}, nil
}
