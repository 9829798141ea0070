package view

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/vendas/internal/sale"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct{}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// SalesAPI is the part of the sales API the screens call.
type SalesAPI interface {
	CreateSales(ctx context.Context, idempotencyKey string, sales []sale.Sale) (*sale.Import, error)
	ListImports(ctx context.Context) ([]*sale.Import, error)
	RevertImport(ctx context.Context, id uuid.UUID) error
}
