package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseSymbol(t *testing.T) {
	for _, in := range []string{"BRK.B", "BRK-B", "brk/b", " brk.b "} {
		got, err := ParseSymbol(in)
		if err != nil {
			t.Fatalf("ParseSymbol(%q) returned error: %v", in, err)
		}
		if got.Base != "BRK" || got.Class != "B" {
			t.Errorf("ParseSymbol(%q) = %+v, want BRK/B", in, got)
		}
	}

	sym, err := ParseSymbol("msft")
	if err != nil {
		t.Fatalf("ParseSymbol(msft) returned error: %v", err)
	}
	if sym.String() != "MSFT" {
		t.Errorf("String() = %q, want %q", sym.String(), "MSFT")
	}

	if _, err := ParseSymbol("  "); !errors.Is(err, ErrEmptySymbol) {
		t.Errorf("ParseSymbol(blank) error = %v, want ErrEmptySymbol", err)
	}
	for _, bad := range []string{".B", "BRK.", "A.B.C"} {
		if _, err := ParseSymbol(bad); err == nil {
			t.Errorf("ParseSymbol(%q) should fail", bad)
		}
	}
}

func TestSymbolFormat(t *testing.T) {
	sym := MustParseSymbol("BRK.B")

	data := SymbolFormat{ClassSeparator: "."}
	brokerage := SymbolFormat{ClassSeparator: "-"}

	if got := data.Render(sym); got != "BRK.B" {
		t.Errorf("data Render = %q, want %q", got, "BRK.B")
	}
	if got := brokerage.Render(sym); got != "BRK-B" {
		t.Errorf("brokerage Render = %q, want %q", got, "BRK-B")
	}
	if got := (SymbolFormat{}).Render(sym); got != "BRK.B" {
		t.Errorf("zero-value Render = %q, want %q", got, "BRK.B")
	}
	if got := brokerage.Render(MustParseSymbol("AAPL")); got != "AAPL" {
		t.Errorf("Render(AAPL) = %q, want %q", got, "AAPL")
	}
}

func TestParseSymbolsDeduplicates(t *testing.T) {
	got, err := ParseSymbols([]string{"AAPL", "BRK-B", "aapl", "BRK.B", "MSFT"})
	if err != nil {
		t.Fatalf("ParseSymbols returned error: %v", err)
	}
	want := []string{"AAPL", "BRK.B", "MSFT"}
	if len(got) != len(want) {
		t.Fatalf("ParseSymbols returned %d symbols, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].String() != w {
			t.Errorf("symbol[%d] = %q, want %q", i, got[i], w)
		}
	}
}

func TestPriceQuoteRounding(t *testing.T) {
	q := NewPriceQuote(MustParseSymbol("AAPL"), decimal.RequireFromString("189.4567"))
	if !q.HasPrice() {
		t.Fatal("expected quote to have a price")
	}
	if got := q.Price.String(); got != "189.46" {
		t.Errorf("Price = %s, want 189.46", got)
	}

	if MissingQuote(MustParseSymbol("AAPL")).HasPrice() {
		t.Error("MissingQuote should have no price")
	}
}

func TestParseTimeInForce(t *testing.T) {
	if tif, err := ParseTimeInForce("OPG"); err != nil || tif != TimeInForceOPG {
		t.Errorf("ParseTimeInForce(OPG) = %q, %v", tif, err)
	}
	if tif, err := ParseTimeInForce("day"); err != nil || tif != TimeInForceDay {
		t.Errorf("ParseTimeInForce(day) = %q, %v", tif, err)
	}
	if _, err := ParseTimeInForce("gtc"); !errors.Is(err, ErrInvalidTimeInForce) {
		t.Errorf("ParseTimeInForce(gtc) error = %v, want ErrInvalidTimeInForce", err)
	}
}

func TestOrderResultSubmitted(t *testing.T) {
	if !(OrderResult{OrderID: "1"}).Submitted() {
		t.Error("accepted order should report Submitted")
	}
	if (OrderResult{Skipped: true}).Submitted() {
		t.Error("skipped order should not report Submitted")
	}
	if (OrderResult{Err: errors.New("rejected")}).Submitted() {
		t.Error("failed order should not report Submitted")
	}
	if OrderSideBuy != "buy" || OrderTypeMarket != "market" {
		t.Error("order enum constants have unexpected values")
	}
}
