// Package money parses and formats amounts the way the Brazilian frontend sends
// and displays them ("1.500.000,50", "R$ 1.500.000").
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrInvalidNumber = errors.New("invalid number")

var printer = message.NewPrinter(language.BrazilianPortuguese)

// ParseBRL parses a pt-BR formatted number: dots group thousands, comma is the
// decimal separator. Currency symbol and spaces are ignored. Empty means 0.
func ParseBRL(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return f, nil
}

// Number reads a JSON value that may be a number or a pt-BR string.
func Number(v interface{}) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		return ParseBRL(n)
	}
	return 0, fmt.Errorf("%w: %v", ErrInvalidNumber, v)
}

// Fraction reads a profit margin. Numbers are already fractions (0.25); strings
// come from the percentage input ("25" or "25,5") and are divided by 100.
func Fraction(v interface{}) (float64, error) {
	if s, ok := v.(string); ok {
		s = strings.TrimSuffix(strings.TrimSpace(s), "%")
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
		}
		return f / 100, nil
	}
	return Number(v)
}

// FormatBRL renders "R$ 1.200.000" (no cents when the value is whole).
func FormatBRL(v float64) string {
	if v == math.Trunc(v) {
		return printer.Sprintf("R$ %d", int64(v))
	}
	return printer.Sprintf("R$ %.2f", v)
}

// FormatPercent renders a percentage without trailing zeros ("60", "12.5").
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
