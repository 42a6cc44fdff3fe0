package prices

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dollarbuy/internal/domain"
	"dollarbuy/internal/util"
)

// Fetcher walks a symbol list through one Source, pacing calls with a rate
// limiter.
type Fetcher struct {
	source  Source
	format  domain.SymbolFormat
	limiter *util.RateLimiter
	log     *slog.Logger
}

// NewFetcher creates a Fetcher that renders symbols in format and waits at
// least interval between provider calls.
func NewFetcher(source Source, format domain.SymbolFormat, interval time.Duration) *Fetcher {
	return &Fetcher{
		source:  source,
		format:  format,
		limiter: util.NewRateLimiter(interval),
		log:     slog.Default().With("component", "prices", "source", source.Name()),
	}
}

// FetchAll returns exactly one quote per input symbol. A failed lookup
// yields a quote without a price; it never stops the batch. If ctx is
// cancelled the remaining symbols are recorded as missing.
func (f *Fetcher) FetchAll(ctx context.Context, symbols []domain.Symbol) map[domain.Symbol]domain.PriceQuote {
	quotes := make(map[domain.Symbol]domain.PriceQuote, len(symbols))

	for i, sym := range symbols {
		if err := f.limiter.Wait(ctx); err != nil {
			f.log.Warn("price fetch interrupted", "remaining", len(symbols)-i, "err", err)
			for _, rest := range symbols[i:] {
				if _, ok := quotes[rest]; !ok {
					quotes[rest] = domain.MissingQuote(rest)
				}
			}
			return quotes
		}
		quotes[sym] = f.fetchOne(ctx, sym)
	}
	return quotes
}

func (f *Fetcher) fetchOne(ctx context.Context, sym domain.Symbol) domain.PriceQuote {
	ticker := f.format.Render(sym)
	price, err := f.source.LatestClose(ctx, ticker)
	if err == nil && !price.IsPositive() {
		err = fmt.Errorf("%s: non-positive close %s", ticker, price)
	}
	if err != nil {
		f.log.Warn("price lookup failed", "symbol", ticker, "err", err)
		return domain.MissingQuote(sym)
	}
	q := domain.NewPriceQuote(sym, price)
	f.log.Debug("priced", "symbol", ticker, "close", q.Price.StringFixed(2))
	return q
}
