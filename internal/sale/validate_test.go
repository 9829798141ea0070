package sale_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/vendas/internal/sale"
)

func TestSale_Validate(t *testing.T) {
	type testCase struct {
		name    string
		mutate  func(s *sale.Sale)
		wantErr bool
	}

	tests := []testCase{
		{name: "Valid", mutate: func(*sale.Sale) {}},
		{name: "Service", mutate: func(s *sale.Sale) { s.Type = sale.TypeService }},
		{name: "Cancelled", mutate: func(s *sale.Sale) { s.Status = sale.StatusCancelled }},
		{name: "CNPJ", mutate: func(s *sale.Sale) { s.TaxID = "12345678000199" }},
		{name: "OneCent", mutate: func(s *sale.Sale) {
			s.UnitValue = decimal.RequireFromString("0.01")
			s.TotalValue = decimal.RequireFromString("0.01")
		}},
		{name: "WithinTolerance", mutate: func(s *sale.Sale) {
			s.Quantity = 3
			s.UnitValue = decimal.RequireFromString("33.333")
			s.TotalValue = decimal.RequireFromString("100")
		}},
		{name: "UnknownType", mutate: func(s *sale.Sale) { s.Type = "GIFT" }, wantErr: true},
		{name: "LowerCaseType", mutate: func(s *sale.Sale) { s.Type = "product" }, wantErr: true},
		{name: "UnknownStatus", mutate: func(s *sale.Sale) { s.Status = "PENDING" }, wantErr: true},
		{name: "TaxIDTenDigits", mutate: func(s *sale.Sale) { s.TaxID = "1234567890" }, wantErr: true},
		{name: "TaxIDPunctuated", mutate: func(s *sale.Sale) { s.TaxID = "123.456.789-01" }, wantErr: true},
		{name: "NegativeQuantity", mutate: func(s *sale.Sale) { s.Quantity = -1 }, wantErr: true},
		{name: "ZeroQuantityWithTotal", mutate: func(s *sale.Sale) { s.Quantity = 0 }, wantErr: true},
		{name: "ZeroUnitValue", mutate: func(s *sale.Sale) { s.UnitValue = decimal.Zero }, wantErr: true},
		{name: "UnitBelowCent", mutate: func(s *sale.Sale) {
			s.UnitValue = decimal.RequireFromString("0.009")
			s.TotalValue = decimal.RequireFromString("0.009")
		}, wantErr: true},
		{name: "NegativeTotal", mutate: func(s *sale.Sale) { s.TotalValue = decimal.RequireFromString("-100.5") }, wantErr: true},
		{name: "TotalMismatch", mutate: func(s *sale.Sale) { s.TotalValue = decimal.RequireFromString("100.51") }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSale("acme")
			tt.mutate(&s)

			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, sale.ErrInvalidSale)
				return
			}

			assert.NoError(t, err)
		})
	}
}
