// Package prices looks up the most recent daily close for each symbol in a
// run, one provider call at a time.
package prices

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoData is returned by a Source when the provider has no bars for the
// requested symbol.
var ErrNoData = errors.New("no price data")

// lookback is how far back sources search for the latest daily bar; it
// spans weekends and market holidays.
const lookback = 10 * 24 * time.Hour

// Source is a market-data provider. Symbols arrive already rendered in the
// provider's ticker format.
type Source interface {
	// Name returns the provider identifier (e.g. "yahoo", "alpaca").
	Name() string

	// LatestClose returns the most recent daily closing price for ticker.
	LatestClose(ctx context.Context, ticker string) (decimal.Decimal, error)
}

// SourceOptions carries the settings NewSource needs for any provider.
type SourceOptions struct {
	APIKey    string
	APISecret string
	DataURL   string
	Feed      string
}

// NewSource builds the named provider.
func NewSource(name string, opts SourceOptions) (Source, error) {
	switch strings.ToLower(name) {
	case "yahoo":
		return NewYahooSource(), nil
	case "alpaca":
		return NewAlpacaSource(opts.APIKey, opts.APISecret, opts.DataURL, opts.Feed), nil
	default:
		return nil, fmt.Errorf("unknown price source %q", name)
	}
}
