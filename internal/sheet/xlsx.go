package sheet

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// formattedDate matches what excelize renders for date-formatted numeric cells.
var formattedDate = regexp.MustCompile(`^\d{2}[/-]\d{2}[/-]\d{4}$`)

// readXLSX returns the first sheet as a grid of typed cells.
func readXLSX(r io.Reader) ([][]any, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrDecode)
	}

	formatted, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: read rows: %w", ErrDecode, err)
	}

	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read raw rows: %w", ErrDecode, err)
	}

	grid := make([][]any, len(formatted))

	for i, row := range formatted {
		grid[i] = make([]any, len(row))

		for j, text := range row {
			cellName, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrDecode, err)
			}

			typ, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, fmt.Errorf("%w: cell %s: %w", ErrDecode, cellName, err)
			}

			grid[i][j] = typedCell(typ, text, rawAt(raw, i, j))
		}
	}

	return grid, nil
}

// typedCell keeps numeric cells numeric, except dates which stay in their
// displayed DD/MM/YYYY form. Everything else is text.
func typedCell(typ excelize.CellType, text, raw string) any {
	if strings.TrimSpace(text) == "" && strings.TrimSpace(raw) == "" {
		return nil
	}

	switch typ {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if formattedDate.MatchString(strings.TrimSpace(text)) {
			return text
		}

		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}

	return text
}

func rawAt(raw [][]string, i, j int) string {
	if i >= len(raw) || j >= len(raw[i]) {
		return ""
	}

	return raw[i][j]
}
