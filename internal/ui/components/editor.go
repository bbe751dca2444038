package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// Editor is a multi-line SQL editor.
type Editor struct {
	Model textarea.Model
}

// NewEditor creates a focused editor.
func NewEditor(width, height int) Editor {
	ta := textarea.New()
	ta.Placeholder = "SELECT ..."
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.Focus()
	return Editor{Model: ta}
}

// Init returns the cursor blink command.
func (e Editor) Init() tea.Cmd {
	return e.Model.Focus()
}

// Update forwards the message to the textarea.
func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	return e, cmd
}

// View renders the editor.
func (e Editor) View() string {
	return e.Model.View()
}

// Value returns the editor contents.
func (e Editor) Value() string {
	return e.Model.Value()
}

// SetValue replaces the editor contents.
func (e *Editor) SetValue(s string) {
	e.Model.SetValue(s)
}

// Resize fits the editor to width x height.
func (e *Editor) Resize(width, height int) {
	if width != e.Model.Width() {
		e.Model.SetWidth(width)
	}
	if height != e.Model.Height() {
		e.Model.SetHeight(height)
	}
}
