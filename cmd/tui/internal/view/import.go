package view

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vendas/internal/importer"
	"github.com/MrJamesThe3rd/vendas/internal/sale"
	"github.com/MrJamesThe3rd/vendas/internal/sheet"
)

// maxShownErrors caps the error list; the rest is summarized in one line.
const maxShownErrors = 15

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ImportModel mirrors the dashboard's upload tab: pick a workbook, see its
// errors or a preview, then submit the batch.
type ImportModel struct {
	CommonModel
	importService *importer.Service
	api           SalesAPI
	companyID     string

	run        *importer.Run
	picking    bool
	filePicker filepicker.Model
	spinner    spinner.Model
	preview    table.Model
	status     string
}

func NewImportModel(impSvc *importer.Service, api SalesAPI, companyID string) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".xlsx", ".csv"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ImportModel{
		importService: impSvc,
		api:           api,
		companyID:     companyID,
		run:           importer.NewRun(),
		picking:       true,
		filePicker:    fp,
		spinner:       s,
		preview:       newPreviewTable(),
	}
}

func newPreviewTable() table.Model {
	columns := []table.Column{
		{Title: "Data", Width: 12},
		{Title: "Código", Width: 10},
		{Title: "Cliente", Width: 24},
		{Title: "Qtd", Width: 5},
		{Title: "Valor Total", Width: 16},
		{Title: "Tipo", Width: 8},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m ImportModel) Title() string { return "Importar vendas" }

func (m ImportModel) ShortHelp() string {
	if m.picking {
		return "Enter: selecionar | t: baixar modelo | Esc: voltar"
	}

	switch m.run.State() {
	case importer.StateReadyToSubmit:
		return "s: enviar | Esc: outro arquivo"
	case importer.StateParsing, importer.StateSubmitting:
		return "Aguarde..."
	}

	return "t: baixar modelo | Esc: outro arquivo"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case parseResultMsg:
		if err := m.run.FinishParse(msg.attempt, msg.outcome, msg.err); err != nil {
			return m, nil
		}

		if m.run.State() == importer.StateReadyToSubmit {
			m.refreshPreview()
		}

		return m, nil

	case submitResultMsg:
		if err := m.run.FinishSubmit(msg.attempt, msg.imported, msg.err); err != nil {
			return m, nil
		}

		if msg.err == nil {
			m.picking = true
			m.status = successStyle.Render(fmt.Sprintf("%d vendas importadas de %s.", msg.imported.RecordCount, msg.imported.FileName))
		}

		return m, nil

	case templateResultMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Erro ao gravar o modelo: %v", msg.err))
			return m, nil
		}

		m.status = successStyle.Render("Modelo gravado em " + msg.path)

		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		if model, cmd, handled := m.handleKey(msg); handled {
			return model, cmd
		}
	}

	if !m.picking {
		if m.run.State() == importer.StateReadyToSubmit {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)

			return m, cmd
		}

		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		return m.startParse(path)
	}

	if didSelect, path := m.filePicker.DidSelectDisabledFile(msg); didSelect {
		m.status = errorStyle.Render(filepath.Base(path) + " não é uma planilha .xlsx ou .csv")
	}

	return m, cmd
}

func (m ImportModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if m.run.State() == importer.StateSubmitting {
		return m, nil, msg.Type != tea.KeyCtrlC
	}

	switch msg.String() {
	case "esc":
		if m.picking {
			return m, Back, true
		}

		m.picking = true
		m.status = ""

		return m, nil, true
	case "t":
		return m, m.writeTemplateCmd(), true
	case "s":
		if m.picking {
			return m, nil, false
		}

		sub, err := m.run.BeginSubmit()
		if err != nil {
			return m, nil, true
		}

		return m, tea.Batch(m.spinner.Tick, m.submitCmd(sub)), true
	}

	return m, nil, false
}

func (m ImportModel) startParse(path string) (tea.Model, tea.Cmd) {
	attempt := m.run.SelectFile(filepath.Base(path))
	if err := m.run.BeginParse(attempt); err != nil {
		m.status = errorStyle.Render(err.Error())
		return m, nil
	}

	m.picking = false
	m.status = ""

	return m, tea.Batch(m.spinner.Tick, m.parseCmd(attempt, path))
}

func (m ImportModel) busy() bool {
	s := m.run.State()
	return s == importer.StateParsing || s == importer.StateSubmitting
}

func (m *ImportModel) refreshPreview() {
	records := m.run.Outcome().Records

	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, table.Row{
			FormatDate(r.Date),
			r.Code,
			r.Customer,
			strconv.FormatInt(r.Quantity, 10),
			FormatMoney(r.TotalValue),
			string(r.Type),
			string(r.Status),
		})
	}

	m.preview.SetRows(rows)
	m.preview.GotoTop()
}

func (m ImportModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	if m.picking {
		header := fmt.Sprintf("Selecione a planilha de vendas (empresa %s):", m.companyID)
		if m.status != "" {
			header = m.status + "\n\n" + header
		}

		return style.Render(header + "\n\n" + m.filePicker.View())
	}

	switch m.run.State() {
	case importer.StateParsing:
		return style.Render(fmt.Sprintf("%s Validando %s...", m.spinner.View(), m.run.FileName()))
	case importer.StateSubmitting:
		return style.Render(fmt.Sprintf("%s Enviando %d vendas...", m.spinner.View(), len(m.run.Outcome().Records)))
	case importer.StateHasErrors:
		return style.Render(m.viewErrors())
	case importer.StateReadyToSubmit:
		return style.Render(m.viewPreview())
	}

	return style.Render(m.status)
}

func (m ImportModel) viewErrors() string {
	if err := m.run.Err(); err != nil {
		return errorStyle.Render(fmt.Sprintf("Não foi possível ler %s: %v", m.run.FileName(), err))
	}

	o := m.run.Outcome()
	if o == nil || o.OK() {
		return errorStyle.Render(m.run.FileName() + " não contém vendas.")
	}

	msgs := o.Messages()

	var b strings.Builder

	b.WriteString(errorStyle.Render(fmt.Sprintf("%d erros em %s. Nenhuma venda foi importada.", len(msgs), m.run.FileName())))
	b.WriteString("\n\n")

	for i, line := range msgs {
		if i == maxShownErrors {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("... e mais %d", len(msgs)-maxShownErrors)))
			break
		}

		b.WriteString(line + "\n")
	}

	return b.String()
}

func (m ImportModel) viewPreview() string {
	records := m.run.Outcome().Records

	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.TotalValue)
	}

	header := successStyle.Render(fmt.Sprintf("%d vendas válidas em %s (total %s).", len(records), m.run.FileName(), FormatMoney(total)))

	if err := m.run.Err(); err != nil {
		header += "\n" + errorStyle.Render(fmt.Sprintf("Falha no envio: %v. Pressione s para tentar de novo.", err))
	}

	return header + "\n\n" + m.preview.View()
}

// Messages

type parseResultMsg struct {
	attempt importer.Attempt
	outcome *importer.Outcome
	err     error
}

type submitResultMsg struct {
	attempt  importer.Attempt
	imported *sale.Import
	err      error
}

type templateResultMsg struct {
	path string
	err  error
}

func (m ImportModel) parseCmd(attempt importer.Attempt, path string) tea.Cmd {
	src := importer.Source{CompanyID: m.companyID, FileName: filepath.Base(path)}

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parseResultMsg{attempt: attempt, err: err}
		}
		defer f.Close()

		outcome, err := m.importService.Import(src, f)

		return parseResultMsg{attempt: attempt, outcome: outcome, err: err}
	}
}

func (m ImportModel) submitCmd(sub importer.Submission) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		imp, err := m.api.CreateSales(ctx, sub.IdempotencyKey, sub.Records)

		return submitResultMsg{attempt: sub.Attempt, imported: imp, err: err}
	}
}

func (m ImportModel) writeTemplateCmd() tea.Cmd {
	path := filepath.Join(m.filePicker.CurrentDirectory, sheet.TemplateFileName)

	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return templateResultMsg{err: err}
		}

		if err := sheet.WriteTemplate(f); err != nil {
			f.Close()
			return templateResultMsg{err: err}
		}

		return templateResultMsg{path: path, err: f.Close()}
	}
}
