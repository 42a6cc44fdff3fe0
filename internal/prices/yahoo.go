package prices

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"
)

// Compile-time interface check.
var _ Source = (*YahooSource)(nil)

// YahooSource reads the daily chart from Yahoo Finance. It needs no
// credentials.
type YahooSource struct{}

// NewYahooSource creates a YahooSource.
func NewYahooSource() *YahooSource { return &YahooSource{} }

// Name returns "yahoo".
func (s *YahooSource) Name() string { return "yahoo" }

// LatestClose returns the close of the last daily bar in the lookback window.
func (s *YahooSource) LatestClose(ctx context.Context, ticker string) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}

	end := time.Now()
	start := end.Add(-lookback)
	iter := chart.Get(&chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	var (
		last  decimal.Decimal
		found bool
	)
	for iter.Next() {
		bar := iter.Bar()
		if bar.Close.IsPositive() {
			last, found = bar.Close, true
		}
	}
	if err := iter.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("chart %s: %w", ticker, err)
	}
	if !found {
		return decimal.Zero, fmt.Errorf("%s: %w", ticker, ErrNoData)
	}
	return last, nil
}
