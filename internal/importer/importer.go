package importer

import (
	"errors"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/vendas/internal/sheet"
)

var ErrNoRows = errors.New("workbook has no data rows")

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Import decodes the uploaded workbook and runs every row through the
// pipeline. A returned error means the file itself could not be read;
// row problems are reported in the Outcome.
func (s *Service) Import(src Source, r io.Reader) (*Outcome, error) {
	tbl, err := sheet.Decode(src.FileName, r)
	if err != nil {
		return nil, fmt.Errorf("decode workbook: %w", err)
	}

	if len(tbl.Rows) == 0 {
		return nil, ErrNoRows
	}

	return ProcessTable(tbl, src), nil
}
