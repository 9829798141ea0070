package sale

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vendas/internal/locale"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrEmptyBatch      = errors.New("batch has no sales")
	ErrCompanyMismatch = errors.New("sale belongs to another company")
)

// Type is the kind of item sold.
type Type string

const (
	TypeProduct Type = "PRODUCT"
	TypeService Type = "SERVICE"
)

// Status is the settlement state of a sale.
type Status string

const (
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Sale is one normalized sale as submitted to the backend.
type Sale struct {
	ID          uuid.UUID       `json:"-"`
	ImportID    uuid.UUID       `json:"-"`
	Date        time.Time       `json:"saleDate"`
	Code        string          `json:"productCode"`
	Branch      string          `json:"branch"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitValue   decimal.Decimal `json:"unitValue"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	Customer    string          `json:"customerName"`
	TaxID       string          `json:"taxId"`
	Type        Type            `json:"type"`
	Status      Status          `json:"status"`
	CompanyID   string          `json:"companyId"`
	FileName    string          `json:"fileName"`
	CreatedAt   time.Time       `json:"-"`
}

// MarshalJSON writes money as JSON numbers and the date as a UTC instant.
func (s Sale) MarshalJSON() ([]byte, error) {
	type alias Sale

	return json.Marshal(struct {
		alias
		Date       string      `json:"saleDate"`
		UnitValue  json.Number `json:"unitValue"`
		TotalValue json.Number `json:"totalValue"`
	}{
		alias:      alias(s),
		Date:       locale.FormatISO(s.Date),
		UnitValue:  json.Number(s.UnitValue.String()),
		TotalValue: json.Number(s.TotalValue.String()),
	})
}

// Import is one committed batch of sales, i.e. one uploaded file.
type Import struct {
	ID             uuid.UUID
	CompanyID      string
	FileName       string
	IdempotencyKey string
	RecordCount    int
	CreatedAt      time.Time
}
