package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	domain "github.com/ItsmeMIGUEL/sample-crud-app/internal/domain/user"
	"github.com/ItsmeMIGUEL/sample-crud-app/internal/usecase/form"
)

// formField describes one input of the user form.
type formField struct {
	name        string
	label       string
	placeholder string
	required    bool
}

// formFields is the form layout, top to bottom. Only the fields with
// validation rules are required; the rest are free-form.
var formFields = []formField{
	{name: form.FieldName, label: "Full Name", placeholder: "Enter full name", required: true},
	{name: form.FieldUsername, label: "Username", placeholder: "Enter username", required: true},
	{name: form.FieldEmail, label: "Email Address", placeholder: "Enter email address", required: true},
	{name: form.FieldPhone, label: "Phone", placeholder: "Enter phone number"},
	{name: form.FieldWebsite, label: "Website", placeholder: "https://example.com"},
	{name: form.FieldCompanyName, label: "Company", placeholder: "Enter company name", required: false},
}

// formModel wires a form session to a column of text inputs. Moving
// focus off an input counts as its blur, which is when the session
// starts validating it.
type formModel struct {
	session    *form.Session
	inputs     []textinput.Model
	focusIndex int
	theme      Theme
	keys       KeyMap
}

func newFormModel(existing *domain.User, theme Theme, keys KeyMap) *formModel {
	session := form.NewSession(existing)
	inputs := make([]textinput.Model, len(formFields))
	for i, field := range formFields {
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = field.placeholder
		input.SetValue(session.Field(field.name))
		inputs[i] = input
	}
	return &formModel{
		session: session,
		inputs:  inputs,
		theme:   theme,
		keys:    keys,
	}
}

// focusCmd focuses the current input and returns its cursor command.
func (f *formModel) focusCmd() tea.Cmd {
	return f.inputs[f.focusIndex].Focus()
}

// blurCurrent defocuses the active input and reports the blur to the
// session, marking the field touched.
func (f *formModel) blurCurrent() {
	f.inputs[f.focusIndex].Blur()
	f.session.Blur(formFields[f.focusIndex].name)
}

// focusField moves focus to the input at index, wrapping around both
// ends of the form.
func (f *formModel) focusField(index int) tea.Cmd {
	f.blurCurrent()
	if index < 0 {
		index = len(f.inputs) - 1
	}
	if index >= len(f.inputs) {
		index = 0
	}
	f.focusIndex = index
	return f.inputs[f.focusIndex].Focus()
}

// handleInput routes a keystroke into the focused input and mirrors
// the new value into the session draft.
func (f *formModel) handleInput(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focusIndex], cmd = f.inputs[f.focusIndex].Update(msg)
	f.session.SetField(formFields[f.focusIndex].name, f.inputs[f.focusIndex].Value())
	return cmd
}
