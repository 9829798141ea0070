// Package sheet decodes uploaded sales workbooks into header-keyed rows and
// produces the blank import template.
package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Column headers, in template order.
const (
	ColDate        = "Data"
	ColCode        = "Código"
	ColBranch      = "Filial"
	ColDescription = "Descrição"
	ColQuantity    = "Quantidade"
	ColUnitValue   = "Valor Unit."
	ColTotalValue  = "Valor Total"
	ColCustomer    = "Cliente"
	ColTaxID       = "CPF/CNPJ"
	ColType        = "Tipo"
	ColStatus      = "Status"
)

// Headers is the exact header row of an import workbook.
var Headers = []string{
	ColDate, ColCode, ColBranch, ColDescription, ColQuantity, ColUnitValue,
	ColTotalValue, ColCustomer, ColTaxID, ColType, ColStatus,
}

var (
	ErrDecode         = errors.New("unreadable workbook")
	ErrHeaderMismatch = errors.New("header row does not match the import template")
)

// Row maps a header to its cell. Cells are string, float64 or nil (empty).
type Row map[string]any

// Table holds the data rows of a workbook. Lines[i] is the 1-based sheet line
// Rows[i] was read from; skipped blank rows still count towards it.
type Table struct {
	Rows  []Row
	Lines []int
}

// Line returns the sheet line of Rows[i]. Without recorded lines the rows are
// taken to follow the header with no gaps.
func (t *Table) Line(i int) int {
	if i < len(t.Lines) {
		return t.Lines[i]
	}

	return i + 2
}

// Format is a supported upload format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// DetectFormat picks the decoder from the file name, falling back to the
// zip signature every xlsx file starts with.
func DetectFormat(fileName string, head []byte) Format {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv", ".txt":
		return FormatCSV
	case ".xlsx", ".xlsm":
		return FormatXLSX
	}

	if bytes.HasPrefix(head, []byte("PK\x03\x04")) {
		return FormatXLSX
	}

	return FormatCSV
}

// Decode reads every data row of the first sheet of r.
func Decode(fileName string, r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrDecode)
	}

	var (
		grid  [][]any
		lines []int
	)

	switch DetectFormat(fileName, data) {
	case FormatXLSX:
		grid, err = readXLSX(bytes.NewReader(data))
	default:
		grid, lines, err = readCSV(bytes.NewReader(data))
	}

	if err != nil {
		return nil, err
	}

	return toTable(grid, lines)
}

// toTable keys data rows by the header row. Fully blank rows are dropped.
// lines[i] is the source line of grid[i]; nil means grid[i] is line i+1.
func toTable(grid [][]any, lines []int) (*Table, error) {
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrDecode)
	}

	header := make([]string, len(grid[0]))
	for i, cell := range grid[0] {
		if s, ok := cell.(string); ok {
			header[i] = strings.TrimSpace(s)
		}
	}

	if err := checkHeader(header); err != nil {
		return nil, err
	}

	t := &Table{
		Rows:  make([]Row, 0, len(grid)-1),
		Lines: make([]int, 0, len(grid)-1),
	}

	for i := 1; i < len(grid); i++ {
		cells := grid[i]
		if isBlank(cells) {
			continue
		}

		row := make(Row, len(Headers))
		for _, h := range Headers {
			row[h] = nil
		}

		for j, cell := range cells {
			if j < len(header) && header[j] != "" {
				row[header[j]] = cell
			}
		}

		line := i + 1
		if lines != nil {
			line = lines[i]
		}

		t.Rows = append(t.Rows, row)
		t.Lines = append(t.Lines, line)
	}

	return t, nil
}

func checkHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string

	for _, h := range Headers {
		if !present[h] {
			missing = append(missing, h)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing columns %s", ErrHeaderMismatch, strings.Join(missing, ", "))
	}

	return nil
}

func isBlank(cells []any) bool {
	for _, c := range cells {
		switch v := c.(type) {
		case nil:
		case string:
			if strings.TrimSpace(v) != "" {
				return false
			}
		default:
			return false
		}
	}

	return true
}
