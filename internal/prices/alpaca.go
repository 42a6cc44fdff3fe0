package prices

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
)

// Compile-time interface check.
var _ Source = (*AlpacaSource)(nil)

// AlpacaSource reads daily bars from the Alpaca market-data API.
type AlpacaSource struct {
	client *marketdata.Client
	feed   string
}

// NewAlpacaSource creates an AlpacaSource. An empty dataURL uses the SDK
// default endpoint; feed is "iex" or "sip".
func NewAlpacaSource(apiKey, apiSecret, dataURL, feed string) *AlpacaSource {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	return &AlpacaSource{
		client: marketdata.NewClient(opts),
		feed:   feed,
	}
}

// Name returns "alpaca".
func (s *AlpacaSource) Name() string { return "alpaca" }

// LatestClose returns the close of the last daily bar in the lookback window.
func (s *AlpacaSource) LatestClose(ctx context.Context, ticker string) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}

	end := time.Now()
	bars, err := s.client.GetBars(ticker, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     end.Add(-lookback),
		End:       end,
		Feed:      marketdata.Feed(s.feed),
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("GetBars %s: %w", ticker, err)
	}
	if len(bars) == 0 {
		return decimal.Zero, fmt.Errorf("%s: %w", ticker, ErrNoData)
	}
	return decimal.NewFromFloat(bars[len(bars)-1].Close), nil
}
