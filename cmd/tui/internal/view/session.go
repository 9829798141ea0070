package view

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// SessionMsg is sent once the user has said which company they import for.
type SessionMsg struct {
	CompanyID string
	Token     string
}

type sessionFields struct {
	companyID string
	token     string
}

type SessionModel struct {
	CommonModel
	fields *sessionFields
	form   *huh.Form
}

func NewSessionModel(companyID, token string) SessionModel {
	fields := &sessionFields{companyID: companyID, token: token}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("company").
				Title("Empresa").
				Description("Identificador da empresa das vendas importadas").
				Value(&fields.companyID).
				Validate(required("informe a empresa")),

			huh.NewInput().
				Key("token").
				Title("Token de acesso").
				EchoMode(huh.EchoModePassword).
				Value(&fields.token).
				Validate(required("informe o token de acesso")),
		),
	).WithWidth(50).WithShowHelp(false)

	return SessionModel{fields: fields, form: form}
}

func required(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}

		return nil
	}
}

func (m SessionModel) Title() string     { return "Sessão" }
func (m SessionModel) ShortHelp() string { return "Enter: confirmar | Ctrl+C: sair" }

func (m SessionModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	session := SessionMsg{
		CompanyID: strings.TrimSpace(m.fields.companyID),
		Token:     strings.TrimSpace(m.fields.token),
	}

	return m, func() tea.Msg { return session }
}

func (m SessionModel) View() string {
	return lipgloss.NewStyle().Padding(1).Render(m.form.View())
}
