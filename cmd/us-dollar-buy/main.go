// Buys a fixed notional (default $1.00) of every symbol in the universe
// through Alpaca, once per invocation.
//
// Usage:
//
//	go run ./cmd/us-dollar-buy [--confirm] [--tif day] [--dry-run]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dollarbuy/internal/broker"
	"dollarbuy/internal/config"
	"dollarbuy/internal/console"
	"dollarbuy/internal/engine"
	"dollarbuy/internal/prices"
	"dollarbuy/internal/universe"
	"dollarbuy/internal/util"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfgPath := "config/dollarbuy.yaml"
	if p := os.Getenv("DOLLARBUY_CONFIG"); p != "" {
		cfgPath = p
	}

	cmd := &cobra.Command{
		Use:          "us-dollar-buy",
		Short:        "Place a $1 notional market buy for each symbol in the universe",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfgPath, "config", cfgPath, "path to the YAML config file")
	f.Bool("confirm", false, "ask for confirmation before placing orders")
	f.String("tif", "", "order time in force: opg or day")
	f.Bool("dry-run", false, "check eligibility and print orders without submitting them")
	f.Bool("check-clock", false, "report whether the market is open before ordering")
	f.String("symbols-file", "", "CSV file with a symbol column, replacing the built-in list")
	f.String("source", "", "price source: yahoo or alpaca")

	return cmd
}

// applyFlags overrides cfg with the flags given on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	var err error
	if f.Changed("confirm") {
		if cfg.Orders.Confirm, err = f.GetBool("confirm"); err != nil {
			return err
		}
	}
	if f.Changed("dry-run") {
		if cfg.Orders.DryRun, err = f.GetBool("dry-run"); err != nil {
			return err
		}
	}
	if f.Changed("check-clock") {
		if cfg.Orders.CheckClock, err = f.GetBool("check-clock"); err != nil {
			return err
		}
	}
	if f.Changed("tif") {
		if cfg.Orders.TimeInForce, err = f.GetString("tif"); err != nil {
			return err
		}
	}
	if f.Changed("symbols-file") {
		if cfg.Symbols.File, err = f.GetString("symbols-file"); err != nil {
			return err
		}
	}
	if f.Changed("source") {
		if cfg.Prices.Source, err = f.GetString("source"); err != nil {
			return err
		}
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	util.SetDefault(logger)

	symbols, err := universe.Load(cfg.Symbols.File)
	if err != nil {
		return fmt.Errorf("loading symbols: %w", err)
	}

	source, err := prices.NewSource(cfg.Prices.Source, prices.SourceOptions{
		APIKey:    cfg.Alpaca.APIKey,
		APISecret: cfg.Alpaca.APISecret,
		DataURL:   cfg.Alpaca.DataURL,
		Feed:      cfg.Prices.Feed,
	})
	if err != nil {
		return err
	}
	fetcher := prices.NewFetcher(source, cfg.PriceFormat(), cfg.Prices.Interval)

	b := broker.NewAlpacaBroker(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.BaseURL, cfg.BrokerFormat())

	notional, err := cfg.NotionalAmount()
	if err != nil {
		return err
	}
	tif, err := cfg.TimeInForce()
	if err != nil {
		return err
	}

	var confirmer console.Confirmer
	if cfg.Orders.Confirm {
		confirmer = console.NewConfirmer(os.Stdin, os.Stdout)
	}

	eng := engine.NewEngine(b, fetcher, confirmer, console.NewPrinter(os.Stdout), engine.Options{
		Notional:      notional,
		TimeInForce:   tif,
		OrderInterval: cfg.Orders.Interval,
		PriceSource:   source.Name(),
		CheckClock:    cfg.Orders.CheckClock,
		Confirm:       cfg.Orders.Confirm,
		DryRun:        cfg.Orders.DryRun,
	})

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("starting us-dollar-buy",
		"symbols", len(symbols),
		"source", source.Name(),
		"tif", tif,
		"notional", notional.StringFixed(2),
		"confirm", cfg.Orders.Confirm,
		"dryRun", cfg.Orders.DryRun,
	)

	res, err := eng.Run(ctx, symbols)
	if err != nil {
		return err
	}
	slog.Info("run finished", "state", res.State.String())
	return nil
}
