package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/coursegrid/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// CurriculumModel - Interactive semester browser
// =============================================================================

// CurriculumModel is the bubbletea model of the browse command. It shows
// one semester at a time; the selected course lists what it requires and
// what requires it.
type CurriculumModel struct {
	Semesters [][]graph.Box // column -> boxes in row order
	Column    int
	Cursor    int

	requires map[string][]string
	required map[string][]string
	colors   map[string]string // edge id -> colour
}

// NewCurriculumModel builds the browser state from a layout.
func NewCurriculumModel(l graph.Layout) CurriculumModel {
	m := CurriculumModel{
		Semesters: make([][]graph.Box, l.Semesters()),
		requires:  make(map[string][]string),
		required:  make(map[string][]string),
		colors:    make(map[string]string),
	}
	for _, b := range l.Boxes {
		m.Semesters[b.Column] = append(m.Semesters[b.Column], b)
	}
	for _, col := range m.Semesters {
		slices.SortStableFunc(col, func(a, b graph.Box) int { return a.Row - b.Row })
	}
	for _, e := range l.Edges {
		m.requires[e.To] = append(m.requires[e.To], e.From)
		m.required[e.From] = append(m.required[e.From], e.To)
		m.colors[e.ID()] = e.Color
	}
	for len(m.Semesters) > 0 && m.Column < len(m.Semesters)-1 && len(m.Semesters[m.Column]) == 0 {
		m.Column++
	}
	return m
}

// Selected returns the course under the cursor.
func (m CurriculumModel) Selected() (graph.Box, bool) {
	if m.Column >= len(m.Semesters) || m.Cursor >= len(m.Semesters[m.Column]) {
		return graph.Box{}, false
	}
	return m.Semesters[m.Column][m.Cursor], true
}

func (m CurriculumModel) Init() tea.Cmd {
	return nil
}

func (m CurriculumModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if len(m.Semesters) == 0 {
		if key.String() == "q" || key.String() == "ctrl+c" || key.String() == "esc" {
			return m, tea.Quit
		}
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Semesters[m.Column])-1 {
			m.Cursor++
		}
	case "left", "h":
		m.moveColumn(-1)
	case "right", "l":
		m.moveColumn(1)
	}
	return m, nil
}

// moveColumn switches to the next semester in direction dir that holds
// courses and keeps the cursor inside it.
func (m *CurriculumModel) moveColumn(dir int) {
	for col := m.Column + dir; col >= 0 && col < len(m.Semesters); col += dir {
		if len(m.Semesters[col]) == 0 {
			continue
		}
		m.Column = col
		m.Cursor = min(m.Cursor, len(m.Semesters[col])-1)
		return
	}
}

func (m CurriculumModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Curriculum"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ semester  ↑/↓ course  q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.semesterBar())
	b.WriteString("\n\n")

	if len(m.Semesters) == 0 {
		b.WriteString(listDimStyle.Render("  no courses"))
		return b.String()
	}

	rows := make([][]string, 0, len(m.Semesters[m.Column]))
	for i, box := range m.Semesters[m.Column] {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			box.Code,
			box.Name,
			strconv.FormatFloat(box.Duration, 'f', -1, 64),
			strconv.Itoa(len(m.requires[box.Code])),
			strconv.Itoa(len(m.required[box.Code])),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Code", "Name", "Hours", "Requires", "Required by").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	if box, ok := m.Selected(); ok {
		b.WriteString(m.details(box))
	}
	return b.String()
}

func (m CurriculumModel) semesterBar() string {
	parts := make([]string, len(m.Semesters))
	for i, col := range m.Semesters {
		label := fmt.Sprintf(" %d ", i+1)
		switch {
		case i == m.Column:
			parts[i] = listSelectedStyle.Render("[" + strings.TrimSpace(label) + "]")
		case len(col) == 0:
			parts[i] = listDimStyle.Render(label)
		default:
			parts[i] = listNormalStyle.Render(label)
		}
	}
	return StyleDim.Render("Semester ") + strings.Join(parts, "")
}

func (m CurriculumModel) details(box graph.Box) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(StyleHighlight.Render(box.Code) + " " + StyleValue.Render(box.Name))
	b.WriteString("\n")
	b.WriteString(m.edgeList("requires", box.Code, m.requires[box.Code], true))
	b.WriteString(m.edgeList("required by", box.Code, m.required[box.Code], false))
	return b.String()
}

func (m CurriculumModel) edgeList(label, code string, others []string, incoming bool) string {
	if len(others) == 0 {
		return "  " + listDimStyle.Render(label+": none") + "\n"
	}
	items := make([]string, len(others))
	for i, other := range others {
		id := code + "->" + other
		if incoming {
			id = other + "->" + code
		}
		style := listNormalStyle
		if c := m.colors[id]; c != "" {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
		}
		items[i] = style.Render(other)
	}
	return "  " + listDimStyle.Render(label+": ") + strings.Join(items, ", ") + "\n"
}
