package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stratum/pkg/planar"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// NodeListModel - Interactive slice origin selection
// =============================================================================

// NodeChoice is one selectable row of the origin picker.
type NodeChoice struct {
	ID       int
	Distance int
	Cycles   []int
	Paths    []int
	Root     bool
}

// InElement reports whether the node belongs to a level cycle or path.
func (c NodeChoice) InElement() bool {
	return len(c.Cycles) > 0 || len(c.Paths) > 0
}

// NodeListModel is the bubbletea model for picking a slice origin.
// Nodes are listed level by level, innermost level first.
type NodeListModel struct {
	Nodes    []NodeChoice
	Cursor   int
	Offset   int
	Height   int
	Selected *NodeChoice
}

// NewNodeListModel lists every node of a leveled graph.
func NewNodeListModel(g *planar.Graph) NodeListModel {
	var nodes []NodeChoice
	levels := g.Levels()
	for i := len(levels) - 1; i >= 0; i-- {
		for _, id := range levels[i].NodeIDs {
			n, _ := g.Node(id)
			nodes = append(nodes, NodeChoice{
				ID:       n.ID,
				Distance: n.Distance,
				Cycles:   n.LevelCycles,
				Paths:    n.LevelPaths,
				Root:     n.IsRootElement,
			})
		}
	}
	return NodeListModel{Nodes: nodes, Height: 15}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "enter":
			if len(m.Nodes) == 0 {
				return m, nil
			}
			choice := m.Nodes[m.Cursor]
			m.Selected = &choice
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the list, and scrolls the
// window so the cursor stays visible.
func (m *NodeListModel) move(delta int) {
	if len(m.Nodes) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Nodes)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Slice Origin"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Nodes))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		root := ""
		if n.Root {
			root = "✓"
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(n.ID),
			strconv.Itoa(n.Distance),
			joinIDs(n.Cycles),
			joinIDs(n.Paths),
			root,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Level", "Cycle", "Path", "Root").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Nodes) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if m.Nodes[idx].InElement() {
				base = base.Foreground(colorGreen)
			} else {
				base = base.Foreground(colorGray)
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Nodes))))

	return b.String()
}

func joinIDs(ids []int) string {
	if len(ids) == 0 {
		return "—"
	}
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = strconv.Itoa(id)
	}
	return strings.Join(s, ",")
}
