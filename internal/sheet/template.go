package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	TemplateFileName = "modelo_importacao_vendas.xlsx"
	templateSheet    = "Sheet1"
)

// templateExample is the single filled-in row of the template. Numbers are
// stored as numbers so a re-import exercises the native-number path.
var templateExample = []any{
	"01/01/2024", "PROD001", "Matriz", "Produto de Teste", 1, 100.5, 100.5,
	"Cliente Exemplo", "12345678901", "produto", "concluída",
}

// WriteTemplate writes the import template workbook to w.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}

	if err := f.SetSheetRow(templateSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	example := append([]any(nil), templateExample...)
	if err := f.SetSheetRow(templateSheet, "A2", &example); err != nil {
		return fmt.Errorf("write example row: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetCellStyle(templateSheet, "A1", "K1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	if err := f.SetColWidth(templateSheet, "A", "K", 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write template: %w", err)
	}

	return nil
}
