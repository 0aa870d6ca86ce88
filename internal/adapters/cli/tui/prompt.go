package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PromptModel asks for a single line of text
type PromptModel struct {
	title    string
	input    textinput.Model
	validate func(string) error
	err      error
	done     bool
}

// NewPromptModel creates a prompt prefilled with initial. validate may be nil.
func NewPromptModel(title, initial string, validate func(string) error) PromptModel {
	ti := textinput.New()
	ti.Placeholder = initial
	ti.SetValue(initial)
	ti.CharLimit = 2048
	ti.Width = 60
	ti.Focus()

	return PromptModel{title: title, input: ti, validate: validate}
}

func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			value := m.Value()
			if value == "" {
				return m, nil
			}
			if m.validate != nil {
				if err := m.validate(value); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.err = nil
	return m, cmd
}

func (m PromptModel) View() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("? %s\n\n", titleStyle.Render(m.title)))
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	if m.err != nil {
		sb.WriteString(selectedStyle.Render("✗ "+m.err.Error()) + "\n")
	}
	sb.WriteString(hintStyle.Render("(enter to confirm, esc to cancel)") + "\n")
	return sb.String()
}

// Value returns the trimmed input
func (m PromptModel) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Cancelled returns true if the user left without confirming
func (m PromptModel) Cancelled() bool {
	return !m.done
}

// RunPrompt asks for a value. ok is false when the user cancelled.
func RunPrompt(title, initial string, validate func(string) error) (string, bool, error) {
	p := tea.NewProgram(NewPromptModel(title, initial, validate))

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	result := finalModel.(PromptModel)
	if result.Cancelled() {
		return "", false, nil
	}
	return result.Value(), true, nil
}
