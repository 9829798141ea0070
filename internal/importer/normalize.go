package importer

import (
	"strings"

	"github.com/MrJamesThe3rd/vendas/internal/sale"
)

// Source is the session context an import runs under. Neither field comes
// from the spreadsheet.
type Source struct {
	CompanyID string
	FileName  string
}

var productAliases = map[string]bool{
	"produto":  true,
	"produtos": true,
	"product":  true,
}

// Normalize maps a validated row to the sale submitted to the backend.
func Normalize(v ValidatedRow, src Source) sale.Sale {
	typ := sale.TypeService
	if productAliases[strings.ToLower(v.Type)] {
		typ = sale.TypeProduct
	}

	status := sale.StatusCompleted
	if strings.ToLower(v.Status) == statusCancelled {
		status = sale.StatusCancelled
	}

	return sale.Sale{
		Date:        v.Date,
		Code:        v.Code,
		Branch:      v.Branch,
		Description: v.Description,
		Quantity:    v.Quantity,
		UnitValue:   v.UnitValue,
		TotalValue:  v.TotalValue,
		Customer:    v.Customer,
		TaxID:       v.TaxID,
		Type:        typ,
		Status:      status,
		CompanyID:   src.CompanyID,
		FileName:    src.FileName,
	}
}
