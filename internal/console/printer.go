// Package console renders the human-readable run report and asks the
// operator for confirmation.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"dollarbuy/internal/domain"
)

// Printer writes the run report. Styling degrades to plain text when w is
// not a terminal.
type Printer struct {
	w       io.Writer
	plain   lipgloss.Style
	heading lipgloss.Style
	good    lipgloss.Style
	warn    lipgloss.Style
	bad     lipgloss.Style
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		plain:   r.NewStyle(),
		heading: r.NewStyle().Bold(true),
		good:    r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
		bad:     r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func dollars(d decimal.Decimal) string { return "$" + d.StringFixed(2) }

func (p *Printer) line(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(p.w, style.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) blank() { fmt.Fprintln(p.w) }

// Balance prints the account cash balance.
func (p *Printer) Balance(cash decimal.Decimal) {
	p.line(p.heading, "Current Alpaca account cash balance: %s", dollars(cash))
}

// FetchingPrices announces the price lookup.
func (p *Printer) FetchingPrices(source string, n int) {
	p.blank()
	p.line(p.heading, "Fetching latest prices for %d symbols from %s...", n, source)
}

// SkippedSymbol notes a symbol dropped for lack of a price.
func (p *Printer) SkippedSymbol(sym domain.Symbol) {
	p.line(p.warn, "Skipping %s due to missing price data", sym)
}

// Totals prints the order cost and the balance left after it.
func (p *Printer) Totals(count int, total, available decimal.Decimal) {
	p.blank()
	p.line(p.heading, "Total order cost for %d symbols: %s", count, dollars(total))
	p.line(p.heading, "Available cash balance after orders: %s", dollars(available))
}

// MarketClock reports whether the market is open and when orders will run.
func (p *Printer) MarketClock(clock *domain.Clock, tif domain.TimeInForce) {
	state := "closed"
	if clock.IsOpen {
		state = "open"
	}
	p.blank()
	if tif == domain.TimeInForceOPG {
		p.line(p.heading, "Market is currently %s. Orders will be submitted for the next market open.", state)
	} else {
		p.line(p.heading, "Market is currently %s. Orders are valid for the trading day.", state)
	}
	if !clock.NextOpen.IsZero() {
		p.line(p.plain, "Next open: %s", clock.NextOpen.Format("Mon Jan 2 15:04 MST"))
	}
}

// Shortfall reports that cash does not cover the planned orders.
func (p *Printer) Shortfall(cash, needed decimal.Decimal) {
	p.line(p.bad, "Insufficient buying power: %s available, %s needed", dollars(cash), dollars(needed))
}

// NothingToOrder reports that no symbol had a price.
func (p *Printer) NothingToOrder() {
	p.line(p.warn, "No symbols with price data; nothing to order.")
}

// Declined reports an operator refusal at the confirmation prompt.
func (p *Printer) Declined() {
	p.line(p.warn, "Order placement cancelled.")
}

// PlacingOrders announces the submission loop.
func (p *Printer) PlacingOrders(n int, tif domain.TimeInForce, dryRun bool) {
	p.blank()
	if dryRun {
		p.line(p.heading, "Dry run: checking %d orders without submitting...", n)
		return
	}
	p.line(p.heading, "Placing %d orders (%s)...", n, tif.Describe())
}

// OrderSubmitted confirms one accepted order.
func (p *Printer) OrderSubmitted(req domain.OrderRequest, orderID string) {
	p.line(p.good, "Submitted %s %s order for %s %s (order %s)",
		dollars(req.Notional), req.Type, req.Symbol, req.TimeInForce.Describe(), orderID)
}

// OrderDryRun shows the order that would have been sent.
func (p *Printer) OrderDryRun(req domain.OrderRequest) {
	p.line(p.good, "Would submit %s %s order for %s %s",
		dollars(req.Notional), req.Type, req.Symbol, req.TimeInForce.Describe())
}

// EligibilityError reports a failed asset lookup.
func (p *Printer) EligibilityError(sym domain.Symbol, err error) {
	p.line(p.warn, "Error checking fractional trading for %s: %v", sym, err)
}

// NotFractionable reports a symbol that cannot be bought by notional.
func (p *Printer) NotFractionable(sym domain.Symbol) {
	p.line(p.warn, "%s does not support fractional trading", sym)
}

// OrderFailed reports a rejected or failed submission.
func (p *Printer) OrderFailed(sym domain.Symbol, err error) {
	p.line(p.bad, "Error placing order for %s: %v", sym, err)
}

// Summary prints the final status line.
func (p *Printer) Summary(submitted, ineligible, failed int, dryRun bool) {
	verb := "submitted"
	if dryRun {
		verb = "would submit"
	}
	p.blank()
	p.line(p.heading, "Done: %d %s, %d not fractionable, %d failed.", submitted, verb, ineligible, failed)
}
