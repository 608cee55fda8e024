// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tfctl/objdiff/comparer"
	"github.com/tfctl/objdiff/internal/filters"
)

// Browse runs an interactive list of the differences. The list is narrowed
// with filter expressions typed at the prompt.
func Browse(locs []comparer.DifferenceLocation) error {
	p := tea.NewProgram(newModel(locs))
	_, err := p.Run()
	return err
}

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#623CE4")).Bold(true)
	kindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#b08800"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#d73a49"))
)

// pageSize is the number of differences shown at once.
const pageSize = 15

type model struct {
	all      []comparer.DifferenceLocation
	shown    []comparer.DifferenceLocation
	input    textinput.Model
	cursor   int
	offset   int
	detail   bool
	filterOn bool
	err      error
}

func newModel(locs []comparer.DifferenceLocation) model {
	ti := textinput.New()
	ti.Placeholder = "path^spec.,kind=ValueMismatch"
	ti.CharLimit = 512
	ti.Width = 60
	ti.Prompt = "filter> "

	return model{all: locs, shown: locs, input: ti}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.filterOn {
		switch key.String() {
		case "enter":
			m.applyFilter()
			m.filterOn = false
			m.input.Blur()
			return m, nil
		case "esc":
			m.filterOn = false
			m.input.Blur()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.shown)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.detail = !m.detail
	case "/":
		m.filterOn = true
		return m, m.input.Focus()
	case "c":
		m.input.SetValue("")
		m.applyFilter()
	}

	m.scroll()
	return m, nil
}

// applyFilter narrows the list to the current filter expression. An invalid
// expression leaves the list unchanged.
func (m *model) applyFilter() {
	spec := m.input.Value()
	if err := filters.Validate(spec); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.shown = filters.Apply(m.all, spec)
	m.cursor, m.offset = 0, 0
}

// scroll keeps the cursor inside the visible page.
func (m *model) scroll() {
	switch {
	case m.cursor < m.offset:
		m.offset = m.cursor
	case m.cursor >= m.offset+pageSize:
		m.offset = m.cursor - pageSize + 1
	}
}

func (m model) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d of %d differences\n\n", len(m.shown), len(m.all))

	end := min(m.offset+pageSize, len(m.shown))
	for i := m.offset; i < end; i++ {
		d := m.shown[i].Difference
		cursor := " "
		if i == m.cursor {
			cursor = cursorStyle.Render(">")
		}
		fmt.Fprintf(&b, "%s %s %s\n", cursor, kindStyle.Render(d.Kind.String()), d.Path)
	}

	if m.detail && m.cursor < len(m.shown) {
		b.WriteString("\n" + detail(m.shown[m.cursor]) + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errStyle.Render(m.err.Error()) + "\n")
	}
	if m.filterOn {
		b.WriteString("\n" + m.input.View() + "\n")
	}

	b.WriteString(helpStyle.Render("\nUP/DOWN: move, ENTER: details, /: filter, C: clear, Q/ESCAPE: quit\n"))
	return b.String()
}

// detail renders one difference and the node it was found at.
func detail(loc comparer.DifferenceLocation) string {
	d := loc.Difference

	lines := []string{
		"path:   " + d.Path,
		"kind:   " + d.Kind.String(),
		"value1: " + d.Value1,
		"value2: " + d.Value2,
	}
	if loc.Node != nil && !loc.Node.IsRoot() {
		lines = append(lines, fmt.Sprintf("node:   %s (depth %d)", loc.Node.Path(), loc.Node.Depth()))
	}
	return strings.Join(lines, "\n")
}
