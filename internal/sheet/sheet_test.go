package sheet_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/vendas/internal/sheet"
)

func workbook(t *testing.T, rows ...[]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)

		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	return buf.Bytes()
}

func headerRow() []any {
	row := make([]any, len(sheet.Headers))
	for i, h := range sheet.Headers {
		row[i] = h
	}

	return row
}

func TestDecode_XLSXTypedCells(t *testing.T) {
	data := workbook(t,
		headerRow(),
		[]any{"15/03/2024", "P1", "Matriz", "Caneta", 3, 2.5, "7,50", "Ana", "01234567890", "Produto", "Concluída"},
	)

	tbl, err := sheet.Decode("vendas.xlsx", bytes.NewReader(data))
	require.NoError(t, err)

	rows := tbl.Rows
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "15/03/2024", row[sheet.ColDate])
	assert.Equal(t, float64(3), row[sheet.ColQuantity])
	assert.Equal(t, 2.5, row[sheet.ColUnitValue])
	assert.Equal(t, "7,50", row[sheet.ColTotalValue])
	assert.Equal(t, "01234567890", row[sheet.ColTaxID], "text cells keep leading zeros")
	assert.Equal(t, "Produto", row[sheet.ColType])
}

func TestDecode_EmptyCellsAreNil(t *testing.T) {
	data := workbook(t,
		headerRow(),
		[]any{"15/03/2024", "", "Matriz"},
	)

	tbl, err := sheet.Decode("vendas.xlsx", bytes.NewReader(data))
	require.NoError(t, err)

	rows := tbl.Rows
	require.Len(t, rows, 1)

	assert.Nil(t, rows[0][sheet.ColCode])
	assert.Nil(t, rows[0][sheet.ColStatus])
	assert.Len(t, rows[0], len(sheet.Headers))
}

func TestDecode_SkipsBlankRows(t *testing.T) {
	data := workbook(t,
		headerRow(),
		[]any{"01/01/2024", "A"},
		[]any{"", " "},
		[]any{"02/01/2024", "B"},
	)

	tbl, err := sheet.Decode("vendas.xlsx", bytes.NewReader(data))
	require.NoError(t, err)

	rows := tbl.Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[1][sheet.ColCode])
	assert.Equal(t, []int{2, 4}, tbl.Lines)
	assert.Equal(t, 4, tbl.Line(1))
}

func TestDecode_CSVLinesCountSkippedRows(t *testing.T) {
	csv := strings.Join(sheet.Headers, ";") + "\n" +
		"01/02/2024;A\n" +
		";;;;;;;;;;\n" +
		"\n" +
		"02/02/2024;B\n"

	tbl, err := sheet.Decode("vendas.csv", strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "B", tbl.Rows[1][sheet.ColCode])
	assert.Equal(t, []int{2, 5}, tbl.Lines)
}

func TestTable_LineWithoutRecordedLines(t *testing.T) {
	tbl := &sheet.Table{Rows: make([]sheet.Row, 3)}

	assert.Equal(t, 2, tbl.Line(0))
	assert.Equal(t, 4, tbl.Line(2))
}

func TestDecode_HeaderMismatch(t *testing.T) {
	data := workbook(t, []any{"Data", "Codigo", "Filial"})

	_, err := sheet.Decode("vendas.xlsx", bytes.NewReader(data))
	require.ErrorIs(t, err, sheet.ErrHeaderMismatch)
	assert.Contains(t, err.Error(), "Código")
	assert.Contains(t, err.Error(), "Status")
}

func TestDecode_Unreadable(t *testing.T) {
	_, err := sheet.Decode("vendas.xlsx", strings.NewReader("definitely not a zip"))
	assert.ErrorIs(t, err, sheet.ErrDecode)

	_, err = sheet.Decode("vendas.xlsx", strings.NewReader(""))
	assert.ErrorIs(t, err, sheet.ErrDecode)
}

func TestDecode_CSVSemicolonWindows1252(t *testing.T) {
	csv := strings.Join(sheet.Headers, ";") + "\n" +
		"01/02/2024;S1;Filial Sul;Instalação;2;50,00;100,00;João;12345678000199;serviço;cancelada\n"

	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte(csv))
	require.NoError(t, err)

	tbl, err := sheet.Decode("vendas.csv", bytes.NewReader(latin1))
	require.NoError(t, err)

	rows := tbl.Rows
	require.Len(t, rows, 1)

	assert.Equal(t, "Instalação", rows[0][sheet.ColDescription])
	assert.Equal(t, "50,00", rows[0][sheet.ColUnitValue])
	assert.Equal(t, "serviço", rows[0][sheet.ColType])
}

func TestDecode_CSVComma(t *testing.T) {
	csv := strings.Join(sheet.Headers, ",") + "\n" +
		`01/02/2024,S1,Sul,X,2,"50,00","100,00",Ana,12345678901,produto,concluída` + "\n"

	tbl, err := sheet.Decode("vendas.csv", strings.NewReader(csv))
	require.NoError(t, err)

	rows := tbl.Rows
	require.Len(t, rows, 1)
	assert.Equal(t, "100,00", rows[0][sheet.ColTotalValue])
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, sheet.FormatCSV, sheet.DetectFormat("a.CSV", nil))
	assert.Equal(t, sheet.FormatXLSX, sheet.DetectFormat("a.xlsx", nil))
	assert.Equal(t, sheet.FormatXLSX, sheet.DetectFormat("upload", []byte("PK\x03\x04rest")))
	assert.Equal(t, sheet.FormatCSV, sheet.DetectFormat("upload", []byte("Data;")))
}

func TestWriteTemplate_Decodes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sheet.WriteTemplate(&buf))

	tbl, err := sheet.Decode(sheet.TemplateFileName, &buf)
	require.NoError(t, err)

	rows := tbl.Rows
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "01/01/2024", row[sheet.ColDate])
	assert.Equal(t, "PROD001", row[sheet.ColCode])
	assert.Equal(t, float64(1), row[sheet.ColQuantity])
	assert.Equal(t, 100.5, row[sheet.ColUnitValue])
	assert.Equal(t, 100.5, row[sheet.ColTotalValue])
	assert.Equal(t, "12345678901", row[sheet.ColTaxID])
	assert.Equal(t, "concluída", row[sheet.ColStatus])
}
