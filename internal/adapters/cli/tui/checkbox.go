package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/devbush/ytgrab/internal/domain"
)

var (
	checkedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	uncheckedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle     = lipgloss.NewStyle().Bold(true)
)

// visibleRows caps how many options are drawn at once
const visibleRows = 15

// CheckboxOption represents a checkbox choice
type CheckboxOption struct {
	Label   string
	Value   string
	Checked bool
}

// CheckboxModel is the bubbletea model for checkbox selection
type CheckboxModel struct {
	title     string
	options   []CheckboxOption
	cursor    int
	offset    int
	done      bool
	minSelect int
}

// NewCheckboxModel creates a new checkbox selector
func NewCheckboxModel(title string, options []CheckboxOption) CheckboxModel {
	return CheckboxModel{
		title:     title,
		options:   options,
		minSelect: 1,
	}
}

func (m CheckboxModel) Init() tea.Cmd {
	return nil
}

func (m CheckboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case " ", "x":
			if len(m.options) > 0 {
				m.options[m.cursor].Checked = !m.options[m.cursor].Checked
			}
		case "a":
			for i := range m.options {
				m.options[i].Checked = true
			}
		case "n":
			for i := range m.options {
				m.options[i].Checked = false
			}
		case "enter":
			if m.countSelected() >= m.minSelect {
				m.done = true
				return m, tea.Quit
			}
		case "q", "ctrl+c", "esc":
			m.done = false
			for i := range m.options {
				m.options[i].Checked = false
			}
			return m, tea.Quit
		}
	}
	m.scroll()
	return m, nil
}

// scroll keeps the cursor inside the visible window
func (m *CheckboxModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visibleRows {
		m.offset = m.cursor - visibleRows + 1
	}
}

func (m CheckboxModel) countSelected() int {
	count := 0
	for _, opt := range m.options {
		if opt.Checked {
			count++
		}
	}
	return count
}

func (m CheckboxModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(m.title))
	sb.WriteString("\n\n")

	end := min(m.offset+visibleRows, len(m.options))
	if m.offset > 0 {
		sb.WriteString(hintStyle.Render("  ...") + "\n")
	}
	for i := m.offset; i < end; i++ {
		opt := m.options[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		checkbox := "[ ]"
		style := uncheckedStyle
		if opt.Checked {
			checkbox = "[x]"
			style = checkedStyle
		}

		line := fmt.Sprintf("%s%s %s", cursor, checkbox, opt.Label)
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}
	if end < len(m.options) {
		sb.WriteString(hintStyle.Render("  ...") + "\n")
	}

	selected := m.countSelected()
	sb.WriteString(fmt.Sprintf("\n%d/%d selected", selected, len(m.options)))
	if selected < m.minSelect {
		sb.WriteString(fmt.Sprintf(" (select at least %d)", m.minSelect))
	}
	sb.WriteString("\n(space=toggle, a=all, n=none, enter=confirm, q=cancel)\n")

	return sb.String()
}

// Selected returns the selected option values
func (m CheckboxModel) Selected() []string {
	var result []string
	for _, opt := range m.options {
		if opt.Checked {
			result = append(result, opt.Value)
		}
	}
	return result
}

// SelectedIndexes returns the positions of the selected options
func (m CheckboxModel) SelectedIndexes() []int {
	var result []int
	for i, opt := range m.options {
		if opt.Checked {
			result = append(result, i)
		}
	}
	return result
}

// Cancelled returns true if the user cancelled
func (m CheckboxModel) Cancelled() bool {
	return !m.done
}

// RunCheckbox displays checkboxes and returns selected values
func RunCheckbox(title string, options []CheckboxOption) ([]string, error) {
	result, err := runCheckbox(title, options)
	if err != nil || result.Cancelled() {
		return nil, err
	}
	return result.Selected(), nil
}

// RunEntrySelector lets the user pick playlist entries. It returns the
// chosen 0-based indexes, or nil when the user cancelled.
func RunEntrySelector(title string, entries []domain.MediaEntry) ([]int, error) {
	options := make([]CheckboxOption, len(entries))
	for i, e := range entries {
		options[i] = CheckboxOption{
			Label:   FormatEntryLine(i, e, 50),
			Value:   e.ID,
			Checked: e.Selected,
		}
	}

	result, err := runCheckbox(title, options)
	if err != nil || result.Cancelled() {
		return nil, err
	}
	return result.SelectedIndexes(), nil
}

func runCheckbox(title string, options []CheckboxOption) (CheckboxModel, error) {
	p := tea.NewProgram(NewCheckboxModel(title, options))

	finalModel, err := p.Run()
	if err != nil {
		return CheckboxModel{}, err
	}
	return finalModel.(CheckboxModel), nil
}
