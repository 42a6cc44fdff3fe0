package prices

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"dollarbuy/internal/domain"
)

// fakeSource returns canned closes keyed by provider ticker.
type fakeSource struct {
	closes map[string]string
	errs   map[string]error
	calls  []string
	onCall func()
}

func (s *fakeSource) Name() string { return "fake" }

func (s *fakeSource) LatestClose(_ context.Context, ticker string) (decimal.Decimal, error) {
	s.calls = append(s.calls, ticker)
	if s.onCall != nil {
		s.onCall()
	}
	if err := s.errs[ticker]; err != nil {
		return decimal.Zero, err
	}
	v, ok := s.closes[ticker]
	if !ok {
		return decimal.Zero, ErrNoData
	}
	return decimal.RequireFromString(v), nil
}

func symbols(t *testing.T, raw ...string) []domain.Symbol {
	t.Helper()
	syms, err := domain.ParseSymbols(raw)
	if err != nil {
		t.Fatal(err)
	}
	return syms
}

func TestFetchAllOneEntryPerSymbol(t *testing.T) {
	src := &fakeSource{
		closes: map[string]string{"AAPL": "189.456", "BRK.B": "412.1", "ZERO": "0"},
		errs:   map[string]error{"MSFT": errors.New("connection reset")},
	}
	syms := symbols(t, "AAPL", "MSFT", "BRK-B", "NOPE", "ZERO")

	f := NewFetcher(src, domain.SymbolFormat{ClassSeparator: "."}, 0)
	quotes := f.FetchAll(context.Background(), syms)

	if len(quotes) != len(syms) {
		t.Fatalf("FetchAll returned %d quotes, want %d", len(quotes), len(syms))
	}
	for _, s := range syms {
		if _, ok := quotes[s]; !ok {
			t.Errorf("missing entry for %s", s)
		}
	}

	aapl := quotes[syms[0]]
	if !aapl.HasPrice() || aapl.Price.String() != "189.46" {
		t.Errorf("AAPL quote = %v, want 189.46", aapl.Price)
	}
	if quotes[syms[1]].HasPrice() {
		t.Error("MSFT should be missing after a provider error")
	}
	if !quotes[syms[2]].HasPrice() {
		t.Error("BRK.B should be priced")
	}
	if quotes[syms[3]].HasPrice() {
		t.Error("NOPE should be missing when the provider has no data")
	}
	if quotes[syms[4]].HasPrice() {
		t.Error("ZERO should be missing for a non-positive close")
	}

	// Provider receives its own ticker format.
	if src.calls[2] != "BRK.B" {
		t.Errorf("provider called with %q, want %q", src.calls[2], "BRK.B")
	}
}

func TestFetchAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &fakeSource{
		closes: map[string]string{"AAPL": "1", "MSFT": "2", "NVDA": "3"},
	}
	src.onCall = func() {
		if len(src.calls) == 1 {
			cancel()
		}
	}
	syms := symbols(t, "AAPL", "MSFT", "NVDA")

	quotes := NewFetcher(src, domain.SymbolFormat{}, 0).FetchAll(ctx, syms)

	if len(quotes) != 3 {
		t.Fatalf("FetchAll returned %d quotes, want 3", len(quotes))
	}
	if !quotes[syms[0]].HasPrice() {
		t.Error("AAPL was fetched before cancellation and should be priced")
	}
	if quotes[syms[1]].HasPrice() || quotes[syms[2]].HasPrice() {
		t.Error("symbols after cancellation should be missing")
	}
	if len(src.calls) != 1 {
		t.Errorf("provider called %d times, want 1", len(src.calls))
	}
}

func TestNewSource(t *testing.T) {
	for _, name := range []string{"yahoo", "ALPACA"} {
		src, err := NewSource(name, SourceOptions{APIKey: "k", APISecret: "s", Feed: "iex"})
		if err != nil {
			t.Fatalf("NewSource(%q) returned error: %v", name, err)
		}
		if src == nil {
			t.Fatalf("NewSource(%q) returned nil", name)
		}
	}
	if _, err := NewSource("bloomberg", SourceOptions{}); err == nil {
		t.Error("NewSource(bloomberg) should fail")
	}
}
