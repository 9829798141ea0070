package importer

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/MrJamesThe3rd/vendas/internal/locale"
	"github.com/MrJamesThe3rd/vendas/internal/sheet"
)

const (
	typeProduct     = "produto"
	typeService     = "serviço"
	statusCompleted = "concluída"
	statusCancelled = "cancelada"
)

var (
	minAmount = decimal.RequireFromString("0.01")
	tolerance = decimal.RequireFromString("0.01")

	// maxQuantity is the largest whole number a float64 holds exactly.
	maxQuantity = float64(1 << 53)

	taxIDRe = regexp.MustCompile(`^(\d{11}|\d{14})$`)
)

// ValidatedRow is a row whose every field passed its rule and whose totals
// are consistent. Type and Status hold the lower-cased pt-BR value.
type ValidatedRow struct {
	Date        time.Time
	Code        string
	Branch      string
	Description string
	Quantity    int64
	UnitValue   decimal.Decimal
	TotalValue  decimal.Decimal
	Customer    string
	TaxID       string
	Type        string
	Status      string
}

// fieldRule checks one column and stores the typed value on success.
type fieldRule struct {
	column string
	apply  func(cell any, out *ValidatedRow) error
}

var rules = []fieldRule{
	{sheet.ColDate, func(c any, out *ValidatedRow) error {
		s := cellString(c)
		if s == "" {
			return errDateRequired
		}

		d, err := locale.ParseDate(s)
		if err != nil {
			return errDateInvalid
		}

		out.Date = d

		return nil
	}},
	{sheet.ColCode, requiredText(errCodeRequired, func(out *ValidatedRow) *string { return &out.Code })},
	{sheet.ColBranch, requiredText(errBranchRequired, func(out *ValidatedRow) *string { return &out.Branch })},
	{sheet.ColDescription, requiredText(errDescRequired, func(out *ValidatedRow) *string { return &out.Description })},
	{sheet.ColQuantity, func(c any, out *ValidatedRow) error {
		q, err := coerceQuantity(c)
		if err != nil {
			return err
		}

		out.Quantity = q

		return nil
	}},
	{sheet.ColUnitValue, amount(errUnitRequired, errUnitInvalid, errUnitNotPositive, func(out *ValidatedRow) *decimal.Decimal {
		return &out.UnitValue
	})},
	{sheet.ColTotalValue, amount(errTotalRequired, errTotalInvalid, errTotalNotPositive, func(out *ValidatedRow) *decimal.Decimal {
		return &out.TotalValue
	})},
	{sheet.ColCustomer, requiredText(errCustomerRequired, func(out *ValidatedRow) *string { return &out.Customer })},
	{sheet.ColTaxID, func(c any, out *ValidatedRow) error {
		s := cellString(c)
		if s == "" {
			return errTaxIDRequired
		}

		if !taxIDRe.MatchString(s) {
			return errTaxIDDigits
		}

		out.TaxID = s

		return nil
	}},
	{sheet.ColType, oneOf(errTypeInvalid, []string{typeProduct, typeService}, func(out *ValidatedRow) *string {
		return &out.Type
	})},
	{sheet.ColStatus, oneOf(errStatusInvalid, []string{statusCompleted, statusCancelled}, func(out *ValidatedRow) *string {
		return &out.Status
	})},
}

// ValidateRow checks every column of row and then, if all passed, that
// quantity × unit value matches the total. It reports every failing column.
func ValidateRow(row sheet.Row) (ValidatedRow, []FieldError) {
	var (
		out  ValidatedRow
		errs []FieldError
	)

	for _, r := range rules {
		if err := r.apply(row[r.column], &out); err != nil {
			errs = append(errs, FieldError{Field: r.column, Message: err.Error()})
		}
	}

	if len(errs) > 0 {
		return ValidatedRow{}, errs
	}

	computed := decimal.NewFromInt(out.Quantity).Mul(out.UnitValue)
	if computed.Sub(out.TotalValue).Abs().GreaterThanOrEqual(tolerance) {
		return ValidatedRow{}, []FieldError{totalMismatch(out.TotalValue.StringFixed(2), computed.StringFixed(2))}
	}

	return out, nil
}

func requiredText(errEmpty error, field func(*ValidatedRow) *string) func(any, *ValidatedRow) error {
	return func(c any, out *ValidatedRow) error {
		s := cellString(c)
		if s == "" {
			return errEmpty
		}

		*field(out) = s

		return nil
	}
}

func amount(errAbsent, errInvalid, errTooSmall error, field func(*ValidatedRow) *decimal.Decimal) func(any, *ValidatedRow) error {
	return func(c any, out *ValidatedRow) error {
		d, err := locale.ParseDecimal(c)

		switch {
		case errors.Is(err, locale.ErrAbsent):
			return errAbsent
		case err != nil:
			return errInvalid
		case d.LessThan(minAmount):
			return errTooSmall
		}

		*field(out) = d

		return nil
	}
}

func oneOf(errInvalid error, allowed []string, field func(*ValidatedRow) *string) func(any, *ValidatedRow) error {
	return func(c any, out *ValidatedRow) error {
		s := foldEnum(cellString(c))

		for _, a := range allowed {
			if s == a {
				*field(out) = s
				return nil
			}
		}

		return errInvalid
	}
}

// coerceQuantity turns a cell into a non-negative whole number. Strings are
// read as plain numbers, not in the Brazilian money format.
func coerceQuantity(c any) (int64, error) {
	var f float64

	switch v := c.(type) {
	case nil:
		return 0, errQtyRequired
	case float64:
		f = v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, errQtyRequired
		}

		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errQtyNotNumber
		}

		f = parsed
	default:
		return 0, errQtyNotNumber
	}

	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return 0, errQtyNotNumber
	case f != math.Trunc(f):
		return 0, errQtyNotInteger
	case f < 0:
		return 0, errQtyNegative
	case f > maxQuantity:
		return 0, errQtyTooLarge
	}

	return int64(f), nil
}

// cellString renders a cell as trimmed text. Whole numbers print without a
// decimal point so numeric CPF cells keep all their digits.
func cellString(c any) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	return ""
}

// foldEnum makes enumeration values comparable regardless of case and of
// whether accents arrive composed or decomposed.
func foldEnum(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}
