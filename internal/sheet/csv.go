package sheet

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	enc "github.com/MrJamesThe3rd/vendas/internal/encoding"
)

// readCSV reads a CSV export as a grid of text cells along with the file
// line each record starts on. The delimiter is whichever of ';' and ','
// splits the header line into more fields.
func readCSV(r io.Reader) ([][]any, []int, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: detect encoding: %w", ErrDecode, err)
	}

	br := bufio.NewReader(utf8r)

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		grid  [][]any
		lines []int
	)

	// encoding/csv skips empty lines, so the line comes from FieldPos.
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, nil, fmt.Errorf("%w: read csv: %w", ErrDecode, err)
		}

		line, _ := reader.FieldPos(0)

		cells := make([]any, len(rec))
		for j, cell := range rec {
			if strings.TrimSpace(cell) != "" {
				cells[j] = cell
			}
		}

		grid = append(grid, cells)
		lines = append(lines, line)
	}

	return grid, lines, nil
}

func sniffDelimiter(br *bufio.Reader) rune {
	line, _ := br.Peek(br.Size())
	if i := strings.IndexByte(string(line), '\n'); i >= 0 {
		line = line[:i]
	}

	if strings.Count(string(line), ",") > strings.Count(string(line), ";") {
		return ','
	}

	return ';'
}
