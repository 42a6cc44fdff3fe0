package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptySymbol is returned when parsing a blank ticker.
var ErrEmptySymbol = errors.New("empty symbol")

// Symbol is the canonical identity of a listed security. Share classes are
// kept apart from the root so each provider can render its own separator.
type Symbol struct {
	Base  string
	Class string
}

// ParseSymbol parses a ticker written with ".", "-" or "/" as the share-class
// separator, e.g. "BRK.B", "BRK-B", "brk/b".
func ParseSymbol(s string) (Symbol, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Symbol{}, ErrEmptySymbol
	}
	i := strings.IndexAny(s, ".-/")
	if i < 0 {
		return Symbol{Base: s}, nil
	}
	base, class := s[:i], s[i+1:]
	if base == "" || class == "" || strings.ContainsAny(class, ".-/") {
		return Symbol{}, fmt.Errorf("malformed symbol %q", s)
	}
	return Symbol{Base: base, Class: class}, nil
}

// MustParseSymbol is ParseSymbol for literals known to be valid.
func MustParseSymbol(s string) Symbol {
	sym, err := ParseSymbol(s)
	if err != nil {
		panic(err)
	}
	return sym
}

// ParseSymbols parses a list, dropping duplicates while keeping first-seen
// order.
func ParseSymbols(raw []string) ([]Symbol, error) {
	seen := make(map[Symbol]struct{}, len(raw))
	out := make([]Symbol, 0, len(raw))
	for _, r := range raw {
		sym, err := ParseSymbol(r)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[sym]; dup {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	return out, nil
}

// String renders the canonical dot form.
func (s Symbol) String() string { return s.Format(".") }

// Format renders the symbol with the given class separator.
func (s Symbol) Format(sep string) string {
	if s.Class == "" {
		return s.Base
	}
	return s.Base + sep + s.Class
}

// SymbolFormat renders canonical symbols for one external provider.
type SymbolFormat struct {
	ClassSeparator string
}

// Render formats sym for the provider. An empty separator means ".".
func (f SymbolFormat) Render(sym Symbol) string {
	if f.ClassSeparator == "" {
		return sym.String()
	}
	return sym.Format(f.ClassSeparator)
}
