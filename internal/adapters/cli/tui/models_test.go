package tui

import (
	"errors"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devbush/ytgrab/internal/domain"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCheckboxModel_SelectAllAndConfirm(t *testing.T) {
	m := NewCheckboxModel("Pick", []CheckboxOption{
		{Label: "one", Value: "1"},
		{Label: "two", Value: "2"},
		{Label: "three", Value: "3"},
	})

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !model.(CheckboxModel).Cancelled() {
		t.Fatal("enter with nothing selected should not confirm")
	}

	model, _ = model.Update(runes("a"))
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeySpace})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	result := model.(CheckboxModel)
	if result.Cancelled() {
		t.Fatal("expected confirmed selection")
	}
	if got := result.SelectedIndexes(); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Errorf("SelectedIndexes() = %v, want [0 2]", got)
	}
	if got := result.Selected(); !reflect.DeepEqual(got, []string{"1", "3"}) {
		t.Errorf("Selected() = %v, want [1 3]", got)
	}
}

func TestCheckboxModel_CancelClearsSelection(t *testing.T) {
	m := NewCheckboxModel("Pick", []CheckboxOption{{Label: "one", Value: "1", Checked: true}})

	model, _ := m.Update(runes("q"))
	result := model.(CheckboxModel)
	if !result.Cancelled() || len(result.Selected()) != 0 {
		t.Errorf("cancel should clear the selection, got %v", result.Selected())
	}
}

func TestCheckboxModel_ScrollsWithCursor(t *testing.T) {
	options := make([]CheckboxOption, visibleRows+5)
	for i := range options {
		options[i] = CheckboxOption{Label: "item", Value: "v"}
	}

	var model tea.Model = NewCheckboxModel("Pick", options)
	for range visibleRows + 2 {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	m := model.(CheckboxModel)
	if m.offset != 3 {
		t.Errorf("offset = %d, want 3", m.offset)
	}
}

func TestMenuModel_InitialAndSelect(t *testing.T) {
	m := NewMenuModel("Format", FormatOptions(), string(domain.FormatFLAC))
	if m.cursor != 3 {
		t.Fatalf("cursor = %d, want 3 (flac)", m.cursor)
	}

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := model.(MenuModel).Selected(); got != string(domain.FormatMP4) {
		t.Errorf("Selected() = %q, want mp4", got)
	}
}

func TestMenuModel_Cancel(t *testing.T) {
	model, _ := NewMenuModel("Format", FormatOptions(), "").Update(runes("q"))
	if got := model.(MenuModel).Selected(); got != "" {
		t.Errorf("Selected() = %q, want empty", got)
	}
}

func TestPromptModel_Validation(t *testing.T) {
	validate := func(s string) error {
		if s == "bad" {
			return errors.New("invalid")
		}
		return nil
	}

	var model tea.Model = NewPromptModel("URL", "bad", validate)
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m := model.(PromptModel)
	if !m.Cancelled() || m.err == nil {
		t.Fatal("invalid input should keep the prompt open with an error")
	}

	model, _ = model.Update(runes("!"))
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(PromptModel)
	if m.Cancelled() {
		t.Fatal("valid input should confirm")
	}
	if m.Value() != "bad!" {
		t.Errorf("Value() = %q, want bad!", m.Value())
	}
}

func TestPromptModel_Escape(t *testing.T) {
	model, _ := NewPromptModel("URL", "", nil).Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !model.(PromptModel).Cancelled() {
		t.Error("esc should cancel")
	}
}
