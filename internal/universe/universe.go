// Package universe supplies the fixed list of symbols a run buys.
package universe

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"dollarbuy/internal/domain"
)

// largeCaps is the built-in list: large S&P 500 constituents.
var largeCaps = []string{
	"MSFT", "NVDA", "AAPL", "AMZN", "GOOGL", "META", "AVGO", "BRK.B", "TSLA", "JPM",
	"UNH", "V", "MA", "PG", "JNJ", "HD", "MRK", "ABBV", "WMT", "BAC",
	"KO", "PFE", "CSCO", "DIS", "INTC", "CMCSA", "VZ", "ADBE", "CRM", "QCOM",
	"AMD", "TXN", "AMGN", "ISRG", "GILD", "BMY", "SCHW", "C", "GS", "NFLX",
	"PEP", "COST", "MCD", "T", "TMO", "LLY",
}

// Default returns the built-in symbol list in canonical form.
func Default() []domain.Symbol {
	syms, err := domain.ParseSymbols(largeCaps)
	if err != nil {
		panic(err)
	}
	return syms
}

// Load returns the symbols in path, or the built-in list when path is empty.
func Load(path string) ([]domain.Symbol, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := LoadCSVSymbols(path)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no symbols in %s", path)
	}
	syms, err := domain.ParseSymbols(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return syms, nil
}

// LoadCSVSymbols reads the "symbol" column (or the first column when no
// header is named symbol) from a CSV file with a header row.
func LoadCSVSymbols(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV %s: %w", path, err)
	}

	if len(records) < 2 {
		return nil, nil
	}

	col := 0
	for i, name := range records[0] {
		if strings.EqualFold(strings.TrimSpace(name), "symbol") {
			col = i
			break
		}
	}

	symbols := make([]string, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) > col {
			sym := strings.TrimSpace(row[col])
			if sym != "" {
				symbols = append(symbols, strings.ToUpper(sym))
			}
		}
	}
	return symbols, nil
}
