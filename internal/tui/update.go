package tui

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"arduscan/internal/model"
)

// MsgInventoryReady indicates that the scan has completed.
type MsgInventoryReady struct {
	Inventory *model.Inventory
}

// MsgError indicates an error occurred.
type MsgError error

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.resizeDetails()
		return m, nil

	case MsgInventoryReady:
		m.Loading = false
		m.Inventory = msg.Inventory
		m.Rows = buildRows(msg.Inventory)
		m.resetFilter()
		m.SelectedIdx = 0
		m.refreshDetails()
		return m, nil

	case MsgError:
		m.Err = msg
		m.Loading = false
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.performSearch()
				return m, nil
			case tea.KeyEsc:
				m.clearSearch()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		if m.ShowHelp || m.ShowPorts || m.ShowFlags {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "esc", "?", "d", "f":
				m.ShowHelp, m.ShowPorts, m.ShowFlags = false, false, false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.SearchActive {
				m.clearSearch()
				return m, nil
			}
			m.NormalRightFocus = false
		case "tab":
			m.NormalRightFocus = !m.NormalRightFocus
		case "up", "k":
			if m.NormalRightFocus {
				m.DetailsViewport.LineUp(1)
			} else if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.refreshDetails()
			}
		case "down", "j":
			if m.NormalRightFocus {
				m.DetailsViewport.LineDown(1)
			} else if m.SelectedIdx < len(m.FilteredIndices)-1 {
				m.SelectedIdx++
				m.refreshDetails()
			}
		case "pgup":
			m.DetailsViewport.HalfViewUp()
		case "pgdown":
			m.DetailsViewport.HalfViewDown()
		case "d":
			m.ShowPorts = true
		case "f":
			m.ShowFlags = true
		case "?":
			m.ShowHelp = true
		case "w":
			m.InputMode = true
			m.InputBuffer.Focus()
			m.InputBuffer.SetValue("")
			return m, textinput.Blink
		}
	}

	return m, cmd
}

func (m *AppModel) resizeDetails() {
	width, height := panelSizes(m.WindowSize)
	m.DetailsViewport.Width = width
	m.DetailsViewport.Height = height
}

func (m *AppModel) refreshDetails() {
	m.DetailsViewport.SetContent(m.detailsContent())
	m.DetailsViewport.GotoTop()
}

func (m *AppModel) resetFilter() {
	m.FilteredIndices = make([]int, len(m.Rows))
	for i := range m.Rows {
		m.FilteredIndices[i] = i
	}
}

func (m *AppModel) clearSearch() {
	m.InputMode = false
	m.InputBuffer.Blur()
	m.SearchActive = false
	m.InputBuffer.SetValue("")
	m.performSearch()
}

// performSearch keeps rows whose path contains the term, or whose include
// directory holds a file starting with it.
func (m *AppModel) performSearch() {
	term := strings.ToLower(strings.TrimSpace(m.InputBuffer.Value()))
	if term == "" {
		m.SearchActive = false
		m.resetFilter()
	} else {
		m.SearchActive = true
		var result []int
		for i, row := range m.Rows {
			if strings.Contains(strings.ToLower(row.Record.HeaderPath), term) || dirHasPrefix(row.Record.IncludeDir, term) {
				result = append(result, i)
			}
		}
		m.FilteredIndices = result
	}

	// Bounds check
	if m.SelectedIdx >= len(m.FilteredIndices) {
		m.SelectedIdx = max(len(m.FilteredIndices)-1, 0)
	}
	m.refreshDetails()
}

func dirHasPrefix(dir, prefix string) bool {
	files, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, f := range files {
		if !f.IsDir() && strings.HasPrefix(strings.ToLower(f.Name()), prefix) {
			return true
		}
	}
	return false
}

// LoadCmd runs the loader in the background.
func LoadCmd(load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		inv, err := load(context.Background())
		if err != nil {
			return MsgError(err)
		}
		return MsgInventoryReady{Inventory: inv}
	}
}
