package importer

import (
	"fmt"
	"math"

	"github.com/MrJamesThe3rd/vendas/internal/locale"
	"github.com/MrJamesThe3rd/vendas/internal/sale"
	"github.com/MrJamesThe3rd/vendas/internal/sheet"
)

// Outcome is the result of one import run. Exactly one of Records and Errors
// is populated; an empty file yields neither.
type Outcome struct {
	Records []sale.Sale
	Errors  []ValidationError
}

// OK reports whether the batch can be submitted.
func (o *Outcome) OK() bool {
	return len(o.Errors) == 0
}

// Messages renders every error as "Linha {n}: {campo} - {mensagem}".
func (o *Outcome) Messages() []string {
	msgs := make([]string, len(o.Errors))
	for i, e := range o.Errors {
		msgs[i] = e.String()
	}

	return msgs
}

// Process validates rows that directly follow the header row. See
// ProcessTable.
func Process(rows []sheet.Row, src Source) *Outcome {
	return ProcessTable(&sheet.Table{Rows: rows}, src)
}

// ProcessTable validates every row and normalizes the valid ones. Any error
// rejects the whole batch: the outcome then carries errors and no records.
// Errors are reported against the sheet line each row was read from.
func ProcessTable(t *sheet.Table, src Source) *Outcome {
	var (
		errs    []ValidationError
		records []sale.Sale
	)

	for i, raw := range t.Rows {
		line := t.Line(i)
		view := validationView(raw)

		validated, fieldErrs := ValidateRow(view)
		if len(fieldErrs) > 0 {
			for _, fe := range fieldErrs {
				errs = append(errs, ValidationError{Line: line, Field: fe.Field, Message: fe.Message})
			}

			continue
		}

		if fe, ok := recheckTotal(view); !ok {
			errs = append(errs, ValidationError{Line: line, Field: fe.Field, Message: fe.Message})
			continue
		}

		records = append(records, Normalize(validated, src))
	}

	if len(errs) > 0 {
		return &Outcome{Errors: errs}
	}

	return &Outcome{Records: records}
}

// validationView copies raw with text trimmed, Tipo and Status folded and
// CPF/CNPJ stringified. Numeric cells stay numeric.
func validationView(raw sheet.Row) sheet.Row {
	view := make(sheet.Row, len(raw))

	for k, v := range raw {
		if s, ok := v.(string); ok {
			view[k] = cellString(s)
			continue
		}

		view[k] = v
	}

	for _, col := range []string{sheet.ColType, sheet.ColStatus} {
		if raw[col] != nil {
			view[col] = foldEnum(cellString(raw[col]))
		}
	}

	if raw[sheet.ColTaxID] != nil {
		view[sheet.ColTaxID] = cellString(raw[sheet.ColTaxID])
	}

	return view
}

// recheckTotal repeats the quantity × unit value check in float64 straight
// from the view, independent of the decimal values ValidateRow produced.
func recheckTotal(view sheet.Row) (FieldError, bool) {
	qty, err := coerceQuantity(view[sheet.ColQuantity])
	if err != nil {
		return FieldError{Field: sheet.ColQuantity, Message: err.Error()}, false
	}

	unit, errU := locale.ParseNumber(view[sheet.ColUnitValue])
	total, errT := locale.ParseNumber(view[sheet.ColTotalValue])

	if errU != nil || errT != nil {
		return FieldError{Field: sheet.ColTotalValue, Message: errTotalInvalid.Error()}, false
	}

	computed := float64(qty) * unit
	if math.Abs(computed-total) >= 0.01 {
		return totalMismatch(fmt.Sprintf("%.2f", total), fmt.Sprintf("%.2f", computed)), false
	}

	return FieldError{}, true
}
