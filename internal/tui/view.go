package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"arduscan/internal/flags"
	"arduscan/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	matchedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true) // Sky Blue/Cyan
	adviceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))           // Orange

	borderColor = lipgloss.Color("63")
	activeColor = lipgloss.Color("205")
)

// panelSizes returns the interior width and height of each side panel.
func panelSizes(ws tea.WindowSizeMsg) (int, int) {
	netWidth := max(ws.Width-6, 20)
	rightWidth := netWidth - netWidth/2
	interiorHeight := max(ws.Height-8, 2)
	return rightWidth, interiorHeight
}

func (m AppModel) View() string {
	if m.Loading {
		return "\n  Scanning headers and serial ports... please wait.\n"
	}
	if m.Err != nil {
		return fmt.Sprintf("\n  Error: %v\n", m.Err)
	}
	if m.ShowHelp {
		return m.renderPopup("Keys", helpText, borderColor)
	}
	if m.ShowPorts {
		return m.renderPopup("Serial / COM ports", m.portsContent(), lipgloss.Color("208"))
	}
	if m.ShowFlags {
		return m.renderPopup("Suggested -I include flags", m.flagsContent(), lipgloss.Color("208"))
	}

	netWidth := max(m.WindowSize.Width-6, 20)
	leftWidth := netWidth / 2
	rightWidth, interiorHeight := panelSizes(m.WindowSize)

	// LEFT PANEL: header records
	var leftView strings.Builder
	leftView.WriteString(headingStyle.Render(m.Inventory.Banner))
	leftView.WriteString("\n\n")

	visibleItems := max(interiorHeight-2, 1)
	startIdx := 0
	endIdx := len(m.FilteredIndices)
	if len(m.FilteredIndices) > visibleItems {
		startIdx = max(m.SelectedIdx-visibleItems/2, 0)
		if startIdx+visibleItems > len(m.FilteredIndices) {
			startIdx = len(m.FilteredIndices) - visibleItems
		}
		endIdx = startIdx + visibleItems
	}

	if len(m.FilteredIndices) == 0 {
		leftView.WriteString(dimStyle.Render("No headers found."))
	}

	for i := startIdx; i < endIdx; i++ {
		row := m.Rows[m.FilteredIndices[i]]
		icon := model.IconOK
		if row.Matched {
			icon = model.IconMatched
		} else if m.hasMissingFriends(row) {
			icon = model.IconMissing
		}

		line := fmt.Sprintf("%s %-14s #%d %s", icon, row.Kind, row.Index, row.Record.IncludeDir)
		if len(line) > leftWidth-2 && leftWidth > 5 {
			line = line[:leftWidth-5] + "..."
		}

		style := normalStyle
		switch {
		case i == m.SelectedIdx:
			style = selectedStyle
		case row.Matched:
			style = matchedStyle
		}
		leftView.WriteString(style.Render(line))
		leftView.WriteString("\n")
	}

	lBorder, rBorder := activeColor, borderColor
	if m.NormalRightFocus {
		lBorder, rBorder = borderColor, activeColor
	}

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lBorder).
		Render(strings.TrimSuffix(leftView.String(), "\n"))

	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(rBorder).
		Render(m.DetailsViewport.View())

	help := "↑/↓: Navigate • Tab: Switch Panel • d: Ports • f: Flags • w: Search • ?: Help • q: Quit"
	if m.NormalRightFocus {
		help = "Details: ↑/↓: Scroll • PgUp/PgDn: Page • Tab: Return to list • q: Quit"
	}
	footer := "\n\n" + dimStyle.Render(help)
	if m.InputMode {
		footer = fmt.Sprintf("\n\nSearch: %s", m.InputBuffer.View())
	} else if m.SearchActive {
		footer = fmt.Sprintf("\n\nFilter: %q (%d of %d) • Esc: clear", m.InputBuffer.Value(), len(m.FilteredIndices), len(m.Rows))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right) + footer
}

func (m AppModel) hasMissingFriends(row Row) bool {
	kr := m.Inventory.Kind(row.Kind)
	if kr == nil {
		return false
	}
	for _, st := range kr.Friends[row.Record.HeaderPath] {
		if st.State() == model.FriendMissing {
			return true
		}
	}
	return false
}

// detailsContent describes the selected row: paths, compiler, friends and
// the first lines of the header.
func (m AppModel) detailsContent() string {
	row, ok := m.current()
	if !ok {
		return "\nNo entries found."
	}

	var b strings.Builder
	title := string(row.Kind)
	if spec, ok := m.cat.Spec(row.Kind); ok {
		title = spec.Title
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	if row.Matched {
		b.WriteString(matchedStyle.Render(model.IconMatched + " Matched to detected board " + m.Inventory.Board.ShortName))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Header:\n  %s\n", row.Record.HeaderPath)
	fmt.Fprintf(&b, "Include directory (-I):\n  %s\n", row.Record.IncludeDir)
	if row.Record.CompilerPath != "" {
		fmt.Fprintf(&b, "Compiler:\n  %s\n", row.Record.CompilerPath)
	}

	if kr := m.Inventory.Kind(row.Kind); kr != nil {
		if statuses, ok := kr.Friends[row.Record.HeaderPath]; ok {
			b.WriteString("\nFriends:\n")
			for _, st := range statuses {
				switch st.State() {
				case model.FriendPresent:
					fmt.Fprintf(&b, "  %s %s\n", model.IconPresent, st.Name)
				case model.FriendAlternate:
					fmt.Fprintf(&b, "  %s %s -> %s\n", model.IconAlternate, st.Name, st.FoundPaths[0])
				default:
					b.WriteString(adviceStyle.Render(fmt.Sprintf("  %s %s (missing)", model.IconMissing, st.Name)))
					b.WriteString("\n")
				}
			}
		}
	}

	preview := model.GetHeaderPreview(row.Record.HeaderPath, m.PreviewLines)
	b.WriteString("\n--- Preview ---\n")
	if preview.ErrorMsg != "" {
		b.WriteString(adviceStyle.Render(preview.ErrorMsg))
		b.WriteString("\n")
	} else {
		for _, line := range preview.Lines {
			b.WriteString(dimStyle.Render(line))
			b.WriteString("\n")
		}
		if preview.Truncated {
			b.WriteString(dimStyle.Render("..."))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m AppModel) portsContent() string {
	inv := m.Inventory
	if !inv.PortsAvailable {
		return "Serial port enumeration is unavailable."
	}
	if len(inv.Ports) == 0 {
		return "No COM ports found."
	}
	var b strings.Builder
	for i, p := range inv.Ports {
		marker := ""
		if inv.Detected != nil && inv.Detected.Device == p.Device {
			marker = " " + model.IconMatched
		}
		fmt.Fprintf(&b, "[Port #%d] %s%s\n", i+1, p.Device, marker)
		fmt.Fprintf(&b, "  Description : %s\n", p.Description)
		fmt.Fprintf(&b, "  VID/PID     : %s\n", p.IDString())
		fmt.Fprintf(&b, "  Board guess : %s\n\n", m.ident.Describe(p.VID, p.PID))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m AppModel) flagsContent() string {
	var b strings.Builder
	for _, line := range flags.All(m.Inventory) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	for _, kr := range m.Inventory.Kinds {
		if kr.Flags.Compiler != "" {
			fmt.Fprintf(&b, "\nCompiler: %q\n", kr.Flags.Compiler)
			break
		}
	}
	if b.Len() == 0 {
		return "(none found)"
	}
	return b.String()
}

const helpText = `↑/↓ or j/k   move through headers (or scroll details)
Tab          switch between list and details
PgUp/PgDn    scroll details
w            search by header name or path
d            serial ports and board guess
f            suggested -I flags
Esc          clear search / close popup
q            quit`

func (m AppModel) renderPopup(title, content string, color lipgloss.Color) string {
	w, h := m.WindowSize.Width, m.WindowSize.Height
	if w < 20 || h < 10 {
		return "Window too small"
	}

	popupWidth := min(max(w*85/100, 40), w-4)
	popupHeight := max(h-6, 5)

	lines := strings.Split(content, "\n")
	if limit := popupHeight - 4; len(lines) > limit {
		lines = append(lines[:limit-1], "...")
	}

	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("\nEsc to close")
	dialog := lipgloss.NewStyle().
		Width(popupWidth).
		Height(popupHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Render(titleStyle.Render(title) + "\n\n" + strings.Join(lines, "\n") + footer)

	return lipgloss.Place(w, h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, LoadCmd(m.load))
}
