package broker

import (
	"context"
	"fmt"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"

	"dollarbuy/internal/domain"
)

// Compile-time interface check.
var _ Broker = (*AlpacaBroker)(nil)

// AlpacaBroker implements the Broker interface using the Alpaca trading API.
type AlpacaBroker struct {
	client *alpaca.Client
	format domain.SymbolFormat
}

// NewAlpacaBroker creates a new AlpacaBroker configured with the given
// credentials and API endpoint. Symbols are sent in format.
func NewAlpacaBroker(apiKey, apiSecret, baseURL string, format domain.SymbolFormat) *AlpacaBroker {
	return &AlpacaBroker{
		client: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   baseURL,
		}),
		format: format,
	}
}

// Name returns "alpaca".
func (b *AlpacaBroker) Name() string {
	return "alpaca"
}

// GetAccount fetches GET /v2/account.
func (b *AlpacaBroker) GetAccount(ctx context.Context) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	acct, err := b.client.GetAccount()
	if err != nil {
		return nil, fmt.Errorf("GetAccount: %w", err)
	}
	return &domain.Account{ID: acct.ID, Cash: acct.Cash}, nil
}

// GetAsset fetches GET /v2/assets/{symbol}.
func (b *AlpacaBroker) GetAsset(ctx context.Context, sym domain.Symbol) (*domain.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ticker := b.format.Render(sym)
	asset, err := b.client.GetAsset(ticker)
	if err != nil {
		return nil, fmt.Errorf("GetAsset %s: %w", ticker, err)
	}
	return &domain.Asset{
		Symbol:       asset.Symbol,
		Tradable:     asset.Tradable,
		Fractionable: asset.Fractionable,
	}, nil
}

// GetClock fetches GET /v2/clock.
func (b *AlpacaBroker) GetClock(ctx context.Context) (*domain.Clock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clock, err := b.client.GetClock()
	if err != nil {
		return nil, fmt.Errorf("GetClock: %w", err)
	}
	return &domain.Clock{
		Timestamp: clock.Timestamp,
		IsOpen:    clock.IsOpen,
		NextOpen:  clock.NextOpen,
		NextClose: clock.NextClose,
	}, nil
}

// SubmitOrder places a notional order via POST /v2/orders.
func (b *AlpacaBroker) SubmitOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ticker := b.format.Render(req.Symbol)
	notional := req.Notional
	order, err := b.client.PlaceOrder(alpaca.PlaceOrderRequest{
		Symbol:      ticker,
		Notional:    &notional,
		Side:        alpaca.Side(req.Side),
		Type:        alpaca.OrderType(req.Type),
		TimeInForce: alpaca.TimeInForce(req.TimeInForce),
	})
	if err != nil {
		return nil, fmt.Errorf("PlaceOrder %s: %w", ticker, err)
	}
	return &domain.OrderResult{
		Symbol:  req.Symbol,
		OrderID: order.ID,
		Status:  string(order.Status),
	}, nil
}
