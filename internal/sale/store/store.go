package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/vendas/internal/sale"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanImport reads an import row.
// Expected column order: id, company_id, file_name, idempotency_key, record_count, created_at
func scanImport(s scanner) (*sale.Import, error) {
	var imp sale.Import

	var key sql.NullString

	if err := s.Scan(&imp.ID, &imp.CompanyID, &imp.FileName, &key, &imp.RecordCount, &imp.CreatedAt); err != nil {
		return nil, err
	}

	imp.IdempotencyKey = key.String

	return &imp, nil
}

const selectImportColumns = `id, company_id, file_name, idempotency_key, record_count, created_at`

func (s *Store) ListImports(ctx context.Context, companyID string) ([]*sale.Import, error) {
	query := `SELECT ` + selectImportColumns + `
		FROM imports
		WHERE company_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("listing imports: %w", err)
	}
	defer rows.Close()

	var imports []*sale.Import

	for rows.Next() {
		imp, err := scanImport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning import: %w", err)
		}

		imports = append(imports, imp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating import rows: %w", err)
	}

	return imports, nil
}

// DeleteImport reverts an import. Its sales go with it through ON DELETE CASCADE.
func (s *Store) DeleteImport(ctx context.Context, companyID string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM imports WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("deleting import: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting import: %w", err)
	}

	if n == 0 {
		return sale.ErrNotFound
	}

	return nil
}

func importLockKey(companyID, idempotencyKey string) int64 {
	h := fnv.New64a()
	h.Write([]byte(companyID))
	h.Write([]byte{0})
	h.Write([]byte(idempotencyKey))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

// BeginImport opens a transaction holding an advisory lock on (company, key), so two
// submissions of the same batch cannot both pass the duplicate check.
func (s *Store) BeginImport(ctx context.Context, companyID, idempotencyKey string) (sale.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	lockKey := importLockKey(companyID, idempotencyKey)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindImportByKey(ctx context.Context, companyID, idempotencyKey string) (*sale.Import, error) {
	query := `SELECT ` + selectImportColumns + `
		FROM imports
		WHERE company_id = $1 AND idempotency_key = $2`

	imp, err := scanImport(itx.tx.QueryRowContext(ctx, query, companyID, idempotencyKey))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sale.ErrNotFound
		}

		return nil, fmt.Errorf("finding import: %w", err)
	}

	return imp, nil
}

func (itx *importTx) CreateImport(ctx context.Context, imp *sale.Import) error {
	query := `
		INSERT INTO imports (company_id, file_name, idempotency_key, record_count, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, NOW())
		RETURNING id, created_at
	`

	err := itx.tx.QueryRowContext(ctx, query,
		imp.CompanyID,
		imp.FileName,
		imp.IdempotencyKey,
		imp.RecordCount,
	).Scan(&imp.ID, &imp.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating import: %w", err)
	}

	return nil
}

func (itx *importTx) CreateSales(ctx context.Context, importID uuid.UUID, sales []*sale.Sale) error {
	query := `
		INSERT INTO sales (
			import_id, sale_date, product_code, branch, description, quantity, unit_value, total_value,
			customer_name, tax_id, type, status, company_id, file_name, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		RETURNING id, created_at
	`

	for _, sl := range sales {
		sl.ImportID = importID

		err := itx.tx.QueryRowContext(ctx, query,
			importID,
			sl.Date,
			sl.Code,
			sl.Branch,
			sl.Description,
			sl.Quantity,
			sl.UnitValue.String(),
			sl.TotalValue.String(),
			sl.Customer,
			sl.TaxID,
			sl.Type,
			sl.Status,
			sl.CompanyID,
			sl.FileName,
		).Scan(&sl.ID, &sl.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating sale: %w", err)
		}
	}

	return nil
}
