package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/vendas/internal/sale"
)

type importsState int

const (
	importsStateBrowse importsState = iota
	importsStateConfirm
)

// ImportsModel lists the files imported for the company and reverts one.
type ImportsModel struct {
	CommonModel
	api SalesAPI

	state   importsState
	table   table.Model
	imports []*sale.Import
	form    *huh.Form
	confirm *bool

	loading bool
	err     error
	status  string
}

func NewImportsModel(api SalesAPI) ImportsModel {
	columns := []table.Column{
		{Title: "Importado em", Width: 18},
		{Title: "Arquivo", Width: 40},
		{Title: "Vendas", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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

	return ImportsModel{
		api:     api,
		table:   t,
		loading: true,
	}
}

func (m ImportsModel) Title() string { return "Arquivos importados" }

func (m ImportsModel) ShortHelp() string {
	if m.state == importsStateConfirm {
		return "Enter: confirmar | Esc: cancelar"
	}

	return "d: reverter | r: atualizar | Esc: voltar"
}

func (m ImportsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ImportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadImportsMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.imports = msg.imports
			m.refreshTable()
		}

		return m, nil

	case revertResultMsg:
		m.state = importsStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Erro ao reverter %s: %v", msg.fileName, msg.err))
			return m, nil
		}

		m.status = successStyle.Render(msg.fileName + " revertido.")
		m.loading = true

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == importsStateConfirm {
		return m.updateConfirm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.status = ""

			return m, m.loadCmd()
		case "d":
			return m.enterConfirm()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ImportsModel) selected() *sale.Import {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.imports) {
		return nil
	}

	return m.imports[idx]
}

func (m ImportsModel) enterConfirm() (tea.Model, tea.Cmd) {
	imp := m.selected()
	if imp == nil {
		return m, nil
	}

	m.confirm = new(bool)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Reverter %s?", imp.FileName)).
				Description(fmt.Sprintf("As %d vendas deste arquivo serão apagadas.", imp.RecordCount)).
				Affirmative("Reverter").
				Negative("Cancelar").
				Value(m.confirm),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = importsStateConfirm
	m.table.Blur()

	return m, m.form.Init()
}

func (m ImportsModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.leaveConfirm()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !*m.confirm {
		return m.leaveConfirm()
	}

	return m, m.revertCmd(m.selected())
}

func (m ImportsModel) leaveConfirm() (tea.Model, tea.Cmd) {
	m.state = importsStateBrowse
	m.form = nil
	m.table.Focus()

	return m, nil
}

func (m *ImportsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.imports))
	for _, imp := range m.imports {
		rows = append(rows, table.Row{
			imp.CreatedAt.Local().Format("02/01/2006 15:04"),
			imp.FileName,
			strconv.Itoa(imp.RecordCount),
		})
	}

	m.table.SetRows(rows)
}

func (m ImportsModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch {
	case m.state == importsStateConfirm:
		return style.Render(m.form.View())
	case m.err != nil:
		return style.Render(errorStyle.Render(fmt.Sprintf("Erro ao carregar importações: %v", m.err)))
	case m.loading:
		return style.Render("Carregando...")
	case len(m.imports) == 0:
		return style.Render(mutedStyle.Render("Nenhum arquivo importado."))
	}

	body := m.table.View()
	if m.status != "" {
		body = m.status + "\n\n" + body
	}

	return style.Render(body)
}

// Messages

type loadImportsMsg struct {
	imports []*sale.Import
	err     error
}

type revertResultMsg struct {
	fileName string
	err      error
}

func (m ImportsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		imports, err := m.api.ListImports(ctx)

		return loadImportsMsg{imports: imports, err: err}
	}
}

func (m ImportsModel) revertCmd(imp *sale.Import) tea.Cmd {
	if imp == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return revertResultMsg{fileName: imp.FileName, err: m.api.RevertImport(ctx, imp.ID)}
	}
}
