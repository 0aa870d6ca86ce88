package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/devbush/ytgrab/internal/domain"
)

var (
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// MenuOption represents a menu choice
type MenuOption struct {
	Label string
	Value string
}

// MenuModel is a single-choice menu
type MenuModel struct {
	title    string
	options  []MenuOption
	cursor   int
	selected string
}

// NewMenuModel creates a new menu with the cursor on the option whose
// value equals initial, if any
func NewMenuModel(title string, options []MenuOption, initial string) MenuModel {
	m := MenuModel{title: title, options: options}
	for i, opt := range options {
		if opt.Value == initial {
			m.cursor = i
		}
	}
	return m
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case "enter":
			if len(m.options) > 0 {
				m.selected = m.options[m.cursor].Value
			}
			return m, tea.Quit
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	s := fmt.Sprintf("? %s\n\n", titleStyle.Render(m.title))

	for i, opt := range m.options {
		cursor := "  "
		style := normalStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedStyle
		}
		s += fmt.Sprintf("%s%s\n", cursor, style.Render(opt.Label))
	}

	s += hintStyle.Render("\n(up/down to navigate, enter to select, q to quit)") + "\n"
	return s
}

// Selected returns the selected value, empty when cancelled
func (m MenuModel) Selected() string {
	return m.selected
}

// RunMenu displays the menu and returns the selection
func RunMenu(title string, options []MenuOption, initial string) (string, error) {
	model := NewMenuModel(title, options, initial)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	return finalModel.(MenuModel).Selected(), nil
}

// FormatOptions lists every download format as menu options
func FormatOptions() []MenuOption {
	formats := domain.Formats()
	options := make([]MenuOption, len(formats))
	for i, f := range formats {
		options[i] = MenuOption{Label: f.Label(), Value: string(f)}
	}
	return options
}

// RunFormatMenu asks for a download format. ok is false when cancelled.
func RunFormatMenu(title string, current domain.Format) (domain.Format, bool, error) {
	value, err := RunMenu(title, FormatOptions(), string(current))
	if err != nil || value == "" {
		return "", false, err
	}
	f, err := domain.ParseFormat(value)
	if err != nil {
		return "", false, err
	}
	return f, true, nil
}
