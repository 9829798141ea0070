package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/vendas/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/vendas/internal/client"
	"github.com/MrJamesThe3rd/vendas/internal/config"
	"github.com/MrJamesThe3rd/vendas/internal/importer"
)

type model struct {
	cfg           *config.Config
	importService *importer.Service
	api           view.SalesAPI
	companyID     string

	currentView View

	sessionView view.SessionModel
	importView  view.ImportModel
	importsView view.ImportsModel
}

type View int

const (
	ViewSession View = 0
	ViewMenu    View = 1
	ViewImport  View = 2
	ViewImports View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	return model{
		cfg:           cfg,
		importService: importer.NewService(),
		currentView:   ViewSession,
		sessionView:   view.NewSessionModel(cfg.Client.CompanyID, cfg.Client.Token),
	}
}

func (m model) Init() tea.Cmd {
	return m.sessionView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService, m.api, m.companyID)

				return m, m.importView.Init()
			case "2":
				m.currentView = ViewImports
				m.importsView = view.NewImportsModel(m.api)

				return m, m.importsView.Init()
			}
		}
	case view.SessionMsg:
		m.companyID = msg.CompanyID
		m.api = client.New(m.cfg.Client.APIURL, msg.Token, m.cfg.Client.Timeout)
		m.currentView = ViewMenu

		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewSession:
		var newModel tea.Model
		newModel, cmd = m.sessionView.Update(msg)
		m.sessionView = newModel.(view.SessionModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewImports:
		var newModel tea.Model
		newModel, cmd = m.importsView.Update(msg)
		m.importsView = newModel.(view.ImportsModel)
	}

	return m, cmd
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.cfg.App.Name + " TUI (empresa " + m.companyID + ")\n\n" +
				"1. Importar vendas\n" +
				"2. Arquivos importados\n\n" +
				"q. Sair",
		)
	case ViewSession:
		current = m.sessionView
	case ViewImport:
		current = m.importView
	case ViewImports:
		current = m.importsView
	default:
		return "Unknown View"
	}

	title := lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render(current.Title())
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).PaddingLeft(1).Render(current.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, title, current.View(), help)
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
