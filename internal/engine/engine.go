// Package engine sequences a run: read the balance, price the universe,
// check affordability, optionally confirm, and submit notional orders.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"dollarbuy/internal/broker"
	"dollarbuy/internal/console"
	"dollarbuy/internal/domain"
	"dollarbuy/internal/util"
)

// ErrNoConfirmer is returned when confirmation is required but no
// Confirmer was supplied.
var ErrNoConfirmer = errors.New("confirmation required but no confirmer configured")

// State is a step of the run.
type State int

const (
	StateStart State = iota
	StateBalanceFetched
	StatePricesFetched
	StateAborted
	StateConfirmed
	StateOrdersSubmitted
	StateDone
	StateError
)

var stateNames = [...]string{
	"start", "balance-fetched", "prices-fetched", "aborted",
	"confirmed", "orders-submitted", "done", "error",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// PriceFetcher returns one quote per requested symbol.
type PriceFetcher interface {
	FetchAll(ctx context.Context, symbols []domain.Symbol) map[domain.Symbol]domain.PriceQuote
}

// Options controls order sizing and the optional steps of a run.
type Options struct {
	Notional      decimal.Decimal
	TimeInForce   domain.TimeInForce
	OrderInterval time.Duration
	// PriceSource names the provider in console output.
	PriceSource string
	CheckClock  bool
	Confirm     bool
	DryRun      bool
}

// Result summarises a run. Nothing in it is persisted.
type Result struct {
	State  State
	Cash   decimal.Decimal
	Plan   *Plan
	Orders []domain.OrderResult
}

// Counts tallies order outcomes.
func (r *Result) Counts() (submitted, ineligible, failed int) {
	for _, o := range r.Orders {
		switch {
		case o.Skipped:
			ineligible++
		case o.Err != nil:
			failed++
		default:
			submitted++
		}
	}
	return submitted, ineligible, failed
}

// Engine drives a single run against a broker and a price fetcher.
type Engine struct {
	broker    broker.Broker
	prices    PriceFetcher
	risk      *RiskManager
	confirmer console.Confirmer
	out       *console.Printer
	limiter   *util.RateLimiter
	opts      Options
	log       *slog.Logger
}

// NewEngine creates a new Engine wired with the given dependencies.
// confirmer may be nil when opts.Confirm is false.
func NewEngine(
	b broker.Broker,
	prices PriceFetcher,
	confirmer console.Confirmer,
	out *console.Printer,
	opts Options,
) *Engine {
	return &Engine{
		broker:    b,
		prices:    prices,
		risk:      NewRiskManager(opts.Notional),
		confirmer: confirmer,
		out:       out,
		limiter:   util.NewRateLimiter(opts.OrderInterval),
		opts:      opts,
		log:       slog.Default().With("component", "engine", "broker", b.Name()),
	}
}

// Run executes one pass over symbols. It returns an error only when the run
// ends in StateError; a shortfall or a declined confirmation ends in
// StateAborted with a nil error.
func (e *Engine) Run(ctx context.Context, symbols []domain.Symbol) (*Result, error) {
	res := &Result{State: StateStart}
	if e.opts.Confirm && e.confirmer == nil {
		return e.fail(res, ErrNoConfirmer)
	}

	acct, err := e.broker.GetAccount(ctx)
	if err != nil {
		return e.fail(res, fmt.Errorf("fetching account: %w", err))
	}
	res.Cash = acct.Cash
	res.State = StateBalanceFetched
	e.out.Balance(acct.Cash)

	e.out.FetchingPrices(e.opts.PriceSource, len(symbols))
	quotes := e.prices.FetchAll(ctx, symbols)
	if err := ctx.Err(); err != nil {
		return e.fail(res, fmt.Errorf("fetching prices: %w", err))
	}
	res.State = StatePricesFetched

	plan := e.risk.Plan(symbols, quotes, acct.Cash)
	res.Plan = plan
	for _, sym := range plan.Skipped {
		e.out.SkippedSymbol(sym)
	}
	e.out.Totals(len(plan.Valid), plan.TotalCost, plan.Available)
	e.log.Info("planned", "priced", len(plan.Valid), "skipped", len(plan.Skipped),
		"cost", plan.TotalCost.StringFixed(2), "available", plan.Available.StringFixed(2))

	if e.opts.CheckClock {
		e.reportClock(ctx)
	}

	if !plan.Affordable() {
		e.out.Shortfall(acct.Cash, plan.TotalCost)
		res.State = StateAborted
		return res, nil
	}
	if len(plan.Valid) == 0 {
		e.out.NothingToOrder()
		res.State = StateDone
		return res, nil
	}

	if e.opts.Confirm {
		prompt := fmt.Sprintf("Place %d orders of $%s each (%s)? Type y for yes:",
			len(plan.Valid), e.opts.Notional.StringFixed(2), e.opts.TimeInForce)
		ok, err := e.confirmer.Confirm(prompt)
		if err != nil {
			e.log.Warn("confirmation prompt failed", "err", err)
		}
		if !ok {
			e.out.Declined()
			res.State = StateAborted
			return res, nil
		}
	}
	res.State = StateConfirmed

	e.out.PlacingOrders(len(plan.Valid), e.opts.TimeInForce, e.opts.DryRun)
	orders, err := e.submitAll(ctx, plan.Valid)
	res.Orders = orders
	if err != nil {
		return e.fail(res, err)
	}
	res.State = StateOrdersSubmitted

	submitted, ineligible, failed := res.Counts()
	e.out.Summary(submitted, ineligible, failed, e.opts.DryRun)
	res.State = StateDone
	return res, nil
}

func (e *Engine) fail(res *Result, err error) (*Result, error) {
	res.State = StateError
	e.log.Error("run failed", "err", err)
	return res, err
}

// reportClock prints the market clock. It is informational only.
func (e *Engine) reportClock(ctx context.Context) {
	clock, err := e.broker.GetClock(ctx)
	if err != nil {
		e.log.Warn("market clock unavailable", "err", err)
		return
	}
	e.out.MarketClock(clock, e.opts.TimeInForce)
}
