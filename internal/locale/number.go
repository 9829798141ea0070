package locale

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrAbsent is returned for nil or blank input. Callers decide whether absence is an error.
	ErrAbsent        = errors.New("value is absent")
	ErrInvalidNumber = errors.New("invalid number")
)

var (
	numberNoise  = regexp.MustCompile(`[^\d,.\-]`)
	leadingFloat = regexp.MustCompile(`^[-]?(\d+\.?\d*|\.\d+)`)
)

// ParseNumber parses a Brazilian-formatted number ("1.234,56" -> 1234.56).
// Native numbers pass through unchanged.
func ParseNumber(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, ErrAbsent
	case float64:
		if math.IsNaN(n) {
			return 0, ErrInvalidNumber
		}

		return n, nil
	case float32:
		return ParseNumber(float64(n))
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		return parseNumberString(n)
	}

	return 0, ErrInvalidNumber
}

// ParseDecimal applies the ParseNumber rules and returns a decimal for money arithmetic.
func ParseDecimal(v any) (decimal.Decimal, error) {
	if s, ok := v.(string); ok {
		clean, err := cleanNumber(s)
		if err != nil {
			return decimal.Zero, err
		}

		return decimal.NewFromString(clean)
	}

	f, err := ParseNumber(v)
	if err != nil {
		return decimal.Zero, err
	}

	return decimal.NewFromFloat(f), nil
}

func parseNumberString(s string) (float64, error) {
	clean, err := cleanNumber(s)
	if err != nil {
		return 0, err
	}

	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, ErrInvalidNumber
	}

	return f, nil
}

// cleanNumber reduces s to a plain decimal literal: noise stripped, "." dropped as
// thousands separator, "," turned into the decimal point, trailing garbage cut.
func cleanNumber(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", ErrAbsent
	}

	stripped := numberNoise.ReplaceAllString(s, "")
	if stripped == "" {
		return "", ErrInvalidNumber
	}

	stripped = strings.ReplaceAll(stripped, ".", "")
	stripped = strings.ReplaceAll(stripped, ",", ".")

	lit := leadingFloat.FindString(stripped)
	if lit == "" {
		return "", ErrInvalidNumber
	}

	lit = strings.TrimSuffix(lit, ".")

	switch {
	case strings.HasPrefix(lit, "-."):
		lit = "-0" + lit[1:]
	case strings.HasPrefix(lit, "."):
		lit = "0" + lit
	}

	return lit, nil
}
