package sale

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=sale
type Repository interface {
	BeginImport(ctx context.Context, companyID, idempotencyKey string) (ImportTx, error)
	ListImports(ctx context.Context, companyID string) ([]*Import, error)
	DeleteImport(ctx context.Context, companyID string, id uuid.UUID) error
}

type ImportTx interface {
	FindImportByKey(ctx context.Context, companyID, idempotencyKey string) (*Import, error)
	CreateImport(ctx context.Context, imp *Import) error
	CreateSales(ctx context.Context, importID uuid.UUID, sales []*Sale) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateBatchParams struct {
	CompanyID      string
	FileName       string
	IdempotencyKey string
	Sales          []Sale
}

type BatchResult struct {
	Import *Import
	// Replayed is set when the idempotency key matched an earlier batch and nothing was written.
	Replayed bool
}

// CreateBatch stores every sale of params as one import, or none of them.
func (s *Service) CreateBatch(ctx context.Context, params CreateBatchParams) (*BatchResult, error) {
	if len(params.Sales) == 0 {
		return nil, ErrEmptyBatch
	}

	sales, err := scopeToCompany(params.CompanyID, params.Sales)
	if err != nil {
		return nil, err
	}

	fileName := params.FileName
	if fileName == "" {
		fileName = sales[0].FileName
	}

	itx, err := s.repo.BeginImport(ctx, params.CompanyID, params.IdempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	if params.IdempotencyKey != "" {
		existing, err := itx.FindImportByKey(ctx, params.CompanyID, params.IdempotencyKey)

		switch {
		case err == nil:
			return &BatchResult{Import: existing, Replayed: true}, nil
		case !errors.Is(err, ErrNotFound):
			return nil, fmt.Errorf("find import by key: %w", err)
		}
	}

	imp := &Import{
		CompanyID:      params.CompanyID,
		FileName:       fileName,
		IdempotencyKey: params.IdempotencyKey,
		RecordCount:    len(sales),
	}
	if err := itx.CreateImport(ctx, imp); err != nil {
		return nil, fmt.Errorf("create import: %w", err)
	}

	if err := itx.CreateSales(ctx, imp.ID, sales); err != nil {
		return nil, fmt.Errorf("create sales: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &BatchResult{Import: imp}, nil
}

func (s *Service) ListImports(ctx context.Context, companyID string) ([]*Import, error) {
	return s.repo.ListImports(ctx, companyID)
}

// RevertImport removes an import and all of its sales.
func (s *Service) RevertImport(ctx context.Context, companyID string, id uuid.UUID) error {
	return s.repo.DeleteImport(ctx, companyID, id)
}

// scopeToCompany validates and copies sales, stamping companyID on the ones
// that carry none.
func scopeToCompany(companyID string, in []Sale) ([]*Sale, error) {
	out := make([]*Sale, len(in))

	for i := range in {
		sl := in[i]

		if err := sl.Validate(); err != nil {
			return nil, fmt.Errorf("sale %d: %w", i+1, err)
		}

		switch sl.CompanyID {
		case "":
			sl.CompanyID = companyID
		case companyID:
		default:
			return nil, fmt.Errorf("sale %d: %w", i+1, ErrCompanyMismatch)
		}

		out[i] = &sl
	}

	return out, nil
}
