package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"arduscan/internal/board"
	"arduscan/internal/catalog"
	"arduscan/internal/model"
	"arduscan/internal/report"
)

// LoadFunc produces the inventory shown by the TUI.
type LoadFunc func(ctx context.Context) (*model.Inventory, error)

// Row is one header record in the left panel.
type Row struct {
	Kind    model.Kind
	Record  model.HeaderRecord
	Matched bool
	Index   int // 1-based position within its kind
}

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Inventory *model.Inventory
	Rows      []Row
	Loading   bool
	Err       error

	cat   *catalog.Catalog
	ident *board.Identifier
	load  LoadFunc

	// UI State
	SelectedIdx      int
	WindowSize       tea.WindowSizeMsg
	NormalRightFocus bool // Tab moves focus to the details panel

	// Popups
	ShowPorts bool
	ShowFlags bool
	ShowHelp  bool

	// Search State
	InputMode       bool
	InputBuffer     textinput.Model
	FilteredIndices []int // Indices of Rows to show
	SearchActive    bool

	// Components
	DetailsViewport viewport.Model
	PreviewLines    int
}

// InitialModel returns the initial state. load runs once from Init.
func InitialModel(cat *catalog.Catalog, ident *board.Identifier, load LoadFunc) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Header name or path..."
	ti.CharLimit = 80
	ti.Width = 30

	return AppModel{
		Loading:         true,
		InputBuffer:     ti,
		cat:             cat,
		ident:           ident,
		load:            load,
		DetailsViewport: viewport.New(40, 10),
		PreviewLines:    12,
	}
}

// buildRows flattens the inventory into rows, each kind in emitted order.
func buildRows(inv *model.Inventory) []Row {
	var rows []Row
	for _, kr := range inv.Kinds {
		matched := kr.Match.Matched != nil
		for i, rec := range report.Ordered(kr) {
			rows = append(rows, Row{
				Kind:    kr.Kind,
				Record:  rec,
				Matched: matched && i == 0,
				Index:   i + 1,
			})
		}
	}
	return rows
}

// current returns the selected row, if any.
func (m AppModel) current() (Row, bool) {
	if m.SelectedIdx < 0 || m.SelectedIdx >= len(m.FilteredIndices) {
		return Row{}, false
	}
	return m.Rows[m.FilteredIndices[m.SelectedIdx]], true
}
