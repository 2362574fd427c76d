package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram"
)

// Viewer styles
var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 2)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 2)
	codeBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ViewerModel - Tabbed diagram source viewer
// =============================================================================

// ViewerTab is one diagram shown by the viewer.
type ViewerTab struct {
	Kind        diagram.Kind
	Code        string
	Diagnostics []diagram.Diagnostic
}

// ViewerModel is the bubbletea model for browsing generated Mermaid source.
type ViewerModel struct {
	Title  string
	Tabs   []ViewerTab
	Active int
	Offset int // first visible code line
	Height int // visible code lines
}

// NewViewerModel creates a viewer over tabs, starting on the first one.
func NewViewerModel(title string, tabs []ViewerTab) ViewerModel {
	return ViewerModel{Title: title, Tabs: tabs, Height: 20}
}

func (m ViewerModel) Init() tea.Cmd {
	return nil
}

func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			if len(m.Tabs) > 0 {
				m.Active = (m.Active + 1) % len(m.Tabs)
				m.Offset = 0
			}
		case "shift+tab", "left", "h":
			if len(m.Tabs) > 0 {
				m.Active = (m.Active + len(m.Tabs) - 1) % len(m.Tabs)
				m.Offset = 0
			}
		case "up", "k":
			if m.Offset > 0 {
				m.Offset--
			}
		case "down", "j":
			if m.Offset < m.maxOffset() {
				m.Offset++
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
		if m.Offset > m.maxOffset() {
			m.Offset = m.maxOffset()
		}
	}
	return m, nil
}

func (m ViewerModel) lines() []string {
	if len(m.Tabs) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(m.Tabs[m.Active].Code, "\n"), "\n")
}

func (m ViewerModel) maxOffset() int {
	if n := len(m.lines()) - m.Height; n > 0 {
		return n
	}
	return 0
}

func (m ViewerModel) View() string {
	var b strings.Builder

	title := "Diagrams"
	if m.Title != "" {
		title = m.Title
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ or tab switch  ↑/↓ scroll  q quit"))
	b.WriteString("\n\n")

	if len(m.Tabs) == 0 {
		b.WriteString(listDimStyle.Render("No diagrams."))
		b.WriteString("\n")
		return b.String()
	}

	tabs := make([]string, len(m.Tabs))
	for i, t := range m.Tabs {
		label := string(t.Kind)
		if n := len(t.Diagnostics); n > 0 {
			label += fmt.Sprintf(" (%d)", n)
		}
		if i == m.Active {
			tabs[i] = tabActiveStyle.Render(label)
		} else {
			tabs[i] = tabInactiveStyle.Render(label)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	lines := m.lines()
	end := m.Offset + m.Height
	if end > len(lines) {
		end = len(lines)
	}
	b.WriteString(codeBoxStyle.Render(strings.Join(lines[m.Offset:end], "\n")))
	b.WriteString("\n")
	if len(lines) > m.Height {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  lines %d-%d of %d", m.Offset+1, end, len(lines))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(diagnosticsTable(m.Tabs[m.Active].Diagnostics))
	b.WriteString("\n")
	return b.String()
}

// diagnosticsTable renders diags as a table, or a dim note when empty.
func diagnosticsTable(diags []diagram.Diagnostic) string {
	if len(diags) == 0 {
		return listDimStyle.Render("No diagnostics.")
	}

	rows := make([][]string, len(diags))
	for i, d := range diags {
		rows[i] = []string{string(d.Code), d.Message, dash(d.Source), dash(d.Target)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Code", "Message", "Source", "Target").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return StyleWarning
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func dash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
