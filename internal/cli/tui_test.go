package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/stratum/internal/planartest"
)

func fanPicker(t *testing.T) NodeListModel {
	t.Helper()
	vertices, edges := planartest.Fan()
	return NewNodeListModel(planartest.Decompose(t, vertices, edges))
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m NodeListModel, msg tea.Msg) (NodeListModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(NodeListModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return nm, cmd
}

func TestNewNodeListModel(t *testing.T) {
	m := fanPicker(t)

	if len(m.Nodes) != 4 {
		t.Fatalf("got %d choices, want 4", len(m.Nodes))
	}
	// Innermost level first.
	if first := m.Nodes[0]; first.ID != 3 || first.Distance != 1 || first.InElement() {
		t.Errorf("first choice = %+v, want interior node 3 outside any element", first)
	}
	for _, n := range m.Nodes[1:] {
		if n.Distance != 0 || !n.Root || len(n.Cycles) != 1 {
			t.Errorf("boundary choice = %+v, want a root in one cycle", n)
		}
	}
}

func TestNodeListModel_Navigate(t *testing.T) {
	m := fanPicker(t)

	m, _ = update(t, m, key("up"))
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after up at top, want 0", m.Cursor)
	}
	for range 10 {
		m, _ = update(t, m, key("j"))
	}
	if m.Cursor != 3 {
		t.Errorf("Cursor = %d after moving past the end, want 3", m.Cursor)
	}
	m, _ = update(t, m, key("k"))
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", m.Cursor)
	}

	m, cmd := update(t, m, key("enter"))
	if cmd == nil {
		t.Error("enter should quit")
	}
	if m.Selected == nil || m.Selected.ID != m.Nodes[2].ID {
		t.Errorf("Selected = %+v, want node %d", m.Selected, m.Nodes[2].ID)
	}
}

func TestNodeListModel_Quit(t *testing.T) {
	m, cmd := update(t, fanPicker(t), key("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
	if m.Selected != nil {
		t.Errorf("Selected = %+v, want nil", m.Selected)
	}
}

func TestNodeListModel_Scroll(t *testing.T) {
	m := fanPicker(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 2})
	if m.Height != 5 {
		t.Errorf("Height = %d, want minimum 5", m.Height)
	}

	m.Height = 2
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("down"))
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1 with cursor %d in a 2-row window", m.Offset, m.Cursor)
	}
}

func TestNodeListModel_View(t *testing.T) {
	view := fanPicker(t).View()
	for _, want := range []string{"Select Slice Origin", "Node", "Level", "[1/4]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestNodeListModel_Empty(t *testing.T) {
	m, cmd := update(t, NodeListModel{Height: 5}, key("enter"))
	if cmd != nil || m.Selected != nil {
		t.Error("enter on an empty list should do nothing")
	}
}
