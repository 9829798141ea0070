package sale_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/vendas/internal/sale"
)

func newSale(companyID string) sale.Sale {
	return sale.Sale{
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Code:        "PROD001",
		Branch:      "Matriz",
		Description: "Produto de Teste",
		Quantity:    1,
		UnitValue:   decimal.RequireFromString("100.5"),
		TotalValue:  decimal.RequireFromString("100.5"),
		Customer:    "Cliente Exemplo",
		TaxID:       "12345678901",
		Type:        sale.TypeProduct,
		Status:      sale.StatusCompleted,
		CompanyID:   companyID,
		FileName:    "vendas.xlsx",
	}
}

func TestService_CreateBatch(t *testing.T) {
	type args struct {
		params sale.CreateBatchParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(repo *sale.MockRepository, itx *sale.MockImportTx)
		verify    func(t *testing.T, got *sale.BatchResult)
		wantErr   error
	}

	importID := uuid.New()
	existing := &sale.Import{ID: importID, CompanyID: "acme", FileName: "old.xlsx", RecordCount: 3}

	tests := []testCase{
		{
			name: "Success",
			args: args{params: sale.CreateBatchParams{
				CompanyID:      "acme",
				IdempotencyKey: "key-1",
				Sales:          []sale.Sale{newSale(""), newSale("acme")},
			}},
			setupMock: func(repo *sale.MockRepository, itx *sale.MockImportTx) {
				repo.EXPECT().BeginImport(gomock.Any(), "acme", "key-1").Return(itx, nil)
				itx.EXPECT().FindImportByKey(gomock.Any(), "acme", "key-1").Return(nil, sale.ErrNotFound)
				itx.EXPECT().
					CreateImport(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, imp *sale.Import) error {
						assert.Equal(t, "vendas.xlsx", imp.FileName)
						assert.Equal(t, 2, imp.RecordCount)
						imp.ID = importID
						return nil
					})
				itx.EXPECT().
					CreateSales(gomock.Any(), importID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, sales []*sale.Sale) error {
						require.Len(t, sales, 2)
						for _, s := range sales {
							assert.Equal(t, "acme", s.CompanyID)
						}
						return nil
					})
				itx.EXPECT().Commit().Return(nil)
				itx.EXPECT().Rollback().Return(nil).AnyTimes()
			},
			verify: func(t *testing.T, got *sale.BatchResult) {
				assert.False(t, got.Replayed)
				assert.Equal(t, importID, got.Import.ID)
			},
		},
		{
			name: "ReplayedKey",
			args: args{params: sale.CreateBatchParams{
				CompanyID:      "acme",
				IdempotencyKey: "key-1",
				Sales:          []sale.Sale{newSale("acme")},
			}},
			setupMock: func(repo *sale.MockRepository, itx *sale.MockImportTx) {
				repo.EXPECT().BeginImport(gomock.Any(), "acme", "key-1").Return(itx, nil)
				itx.EXPECT().FindImportByKey(gomock.Any(), "acme", "key-1").Return(existing, nil)
				itx.EXPECT().Rollback().Return(nil)
			},
			verify: func(t *testing.T, got *sale.BatchResult) {
				assert.True(t, got.Replayed)
				assert.Equal(t, existing, got.Import)
			},
		},
		{
			name: "NoKeySkipsLookup",
			args: args{params: sale.CreateBatchParams{
				CompanyID: "acme",
				FileName:  "upload.xlsx",
				Sales:     []sale.Sale{newSale("acme")},
			}},
			setupMock: func(repo *sale.MockRepository, itx *sale.MockImportTx) {
				repo.EXPECT().BeginImport(gomock.Any(), "acme", "").Return(itx, nil)
				itx.EXPECT().
					CreateImport(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, imp *sale.Import) error {
						assert.Equal(t, "upload.xlsx", imp.FileName)
						imp.ID = importID
						return nil
					})
				itx.EXPECT().CreateSales(gomock.Any(), importID, gomock.Any()).Return(nil)
				itx.EXPECT().Commit().Return(nil)
				itx.EXPECT().Rollback().Return(nil).AnyTimes()
			},
		},
		{
			name:    "EmptyBatch",
			args:    args{params: sale.CreateBatchParams{CompanyID: "acme"}},
			wantErr: sale.ErrEmptyBatch,
		},
		{
			name: "CompanyMismatch",
			args: args{params: sale.CreateBatchParams{
				CompanyID: "acme",
				Sales:     []sale.Sale{newSale("acme"), newSale("globex")},
			}},
			wantErr: sale.ErrCompanyMismatch,
		},
		{
			name: "InvalidSaleStoresNothing",
			args: args{params: sale.CreateBatchParams{
				CompanyID: "acme",
				Sales: []sale.Sale{newSale("acme"), func() sale.Sale {
					s := newSale("acme")
					s.TotalValue = decimal.RequireFromString("999")
					return s
				}()},
			}},
			wantErr: sale.ErrInvalidSale,
		},
		{
			name: "CreateSalesFailsRollsBack",
			args: args{params: sale.CreateBatchParams{
				CompanyID: "acme",
				Sales:     []sale.Sale{newSale("acme")},
			}},
			setupMock: func(repo *sale.MockRepository, itx *sale.MockImportTx) {
				repo.EXPECT().BeginImport(gomock.Any(), "acme", "").Return(itx, nil)
				itx.EXPECT().CreateImport(gomock.Any(), gomock.Any()).Return(nil)
				itx.EXPECT().CreateSales(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db error"))
				itx.EXPECT().Rollback().Return(nil)
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := sale.NewMockRepository(ctrl)
			itx := sale.NewMockImportTx(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, itx)
			}

			svc := sale.NewService(repo)
			got, err := svc.CreateBatch(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)

				if !errors.Is(err, tt.wantErr) {
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)

			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}

func TestService_RevertImport(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := sale.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().DeleteImport(gomock.Any(), "acme", id).Return(sale.ErrNotFound)

	svc := sale.NewService(repo)
	err := svc.RevertImport(context.Background(), "acme", id)
	assert.ErrorIs(t, err, sale.ErrNotFound)
}

func TestService_ListImports(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := sale.NewMockRepository(ctrl)
	repo.EXPECT().
		ListImports(gomock.Any(), "acme").
		Return([]*sale.Import{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	svc := sale.NewService(repo)
	got, err := svc.ListImports(context.Background(), "acme")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSale_MarshalJSON(t *testing.T) {
	s := newSale("acme")
	s.ID = uuid.New()

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))

	assert.Equal(t, "2024-01-01T00:00:00.000Z", got["saleDate"])
	assert.Equal(t, 100.5, got["unitValue"])
	assert.Equal(t, 100.5, got["totalValue"])
	assert.Equal(t, float64(1), got["quantity"])
	assert.Equal(t, "PRODUCT", got["type"])
	assert.Equal(t, "COMPLETED", got["status"])
	assert.Equal(t, "acme", got["companyId"])
	assert.Equal(t, "12345678901", got["taxId"])
	assert.NotContains(t, got, "id")

	var back sale.Sale
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.UnitValue.Equal(s.UnitValue))
	assert.True(t, back.Date.Equal(s.Date))
}
