package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PackageListModel - Interactive package selection
// =============================================================================

// PackageListModel is the bubbletea model for choosing which packages
// take part in a planning run.
type PackageListModel struct {
	Names     []string
	Checked   map[int]bool
	Cursor    int
	Confirmed bool
	Height    int
	Offset    int
}

// NewPackageListModel creates a package list model with every package
// checked.
func NewPackageListModel(names []string) PackageListModel {
	checked := make(map[int]bool, len(names))
	for i := range names {
		checked[i] = true
	}
	return PackageListModel{
		Names:   names,
		Checked: checked,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m PackageListModel) Init() tea.Cmd {
	return nil
}

func (m PackageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Names)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			m.Checked[m.Cursor] = !m.Checked[m.Cursor]
		case "a":
			all := true
			for i := range m.Names {
				if !m.Checked[i] {
					all = false
					break
				}
			}
			for i := range m.Names {
				m.Checked[i] = !all
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PackageListModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Select Packages"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all/none  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Names) {
		end = len(m.Names)
	}

	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		check := "[ ]"
		if m.Checked[i] {
			check = "[x]"
		}

		line := cursor + check + " " + m.Names[i]
		if i == m.Cursor {
			line = listSelectedStyle.Render(line)
		} else if m.Checked[i] {
			line = listNormalStyle.Render(line)
		} else {
			line = listDimStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.Names) > m.Height {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("…scroll for more"))
		b.WriteString("\n")
	}

	return b.String()
}

// Selected returns the checked package names in list order.
func (m PackageListModel) Selected() []string {
	var names []string
	for i, name := range m.Names {
		if m.Checked[i] {
			names = append(names, name)
		}
	}
	return names
}

// runPicker shows the package selection list and returns the chosen
// names. A cancelled picker returns nil.
func runPicker(names []string) ([]string, error) {
	model := NewPackageListModel(names)
	prog := tea.NewProgram(model)
	final, err := prog.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(PackageListModel)
	if !ok || !m.Confirmed {
		return nil, nil
	}
	return m.Selected(), nil
}
