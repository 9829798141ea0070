package sale

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var ErrInvalidSale = errors.New("invalid sale")

var (
	minAmount = decimal.RequireFromString("0.01")
	tolerance = decimal.RequireFromString("0.01")

	taxIDRe = regexp.MustCompile(`^(\d{11}|\d{14})$`)
)

// Validate applies the import rules to a sale that arrived already
// normalized, so the API never stores a row the sheet import would reject.
func (s Sale) Validate() error {
	switch s.Type {
	case TypeProduct, TypeService:
	default:
		return fmt.Errorf("%w: type %q is not PRODUCT or SERVICE", ErrInvalidSale, s.Type)
	}

	switch s.Status {
	case StatusCompleted, StatusCancelled:
	default:
		return fmt.Errorf("%w: status %q is not COMPLETED or CANCELLED", ErrInvalidSale, s.Status)
	}

	if !taxIDRe.MatchString(s.TaxID) {
		return fmt.Errorf("%w: taxId must have 11 or 14 digits", ErrInvalidSale)
	}

	if s.Quantity < 0 {
		return fmt.Errorf("%w: quantity is negative", ErrInvalidSale)
	}

	if s.UnitValue.LessThan(minAmount) {
		return fmt.Errorf("%w: unitValue must be at least %s", ErrInvalidSale, minAmount)
	}

	if s.TotalValue.LessThan(minAmount) {
		return fmt.Errorf("%w: totalValue must be at least %s", ErrInvalidSale, minAmount)
	}

	computed := decimal.NewFromInt(s.Quantity).Mul(s.UnitValue)
	if computed.Sub(s.TotalValue).Abs().GreaterThanOrEqual(tolerance) {
		return fmt.Errorf("%w: totalValue %s does not match quantity × unitValue %s",
			ErrInvalidSale, s.TotalValue.StringFixed(2), computed.StringFixed(2))
	}

	return nil
}
