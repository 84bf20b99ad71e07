package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// pinForm is a column of masked inputs with tab navigation, shared by every
// screen that asks for a PIN or passphrase.
type pinForm struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newPINForm(charLimit int, labels ...string) pinForm {
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		in := textinput.New()
		in.Placeholder = strings.ToLower(label)
		in.CharLimit = charLimit
		in.Width = 32
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '*'
		inputs[i] = in
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}

	return pinForm{labels: labels, inputs: inputs}
}

func (f *pinForm) value(i int) string {
	return f.inputs[i].Value()
}

func (f *pinForm) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
		f.inputs[i].Blur()
	}
	f.focus = 0
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
}

// onLast reports whether enter should submit rather than move on.
func (f *pinForm) onLast() bool {
	return f.focus == len(f.inputs)-1
}

func (f *pinForm) focusNext() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *pinForm) focusPrev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *pinForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *pinForm) View() string {
	width := 0
	for _, label := range f.labels {
		if len(label) > width {
			width = len(label)
		}
	}

	var b strings.Builder
	for i, label := range f.labels {
		b.WriteString(fmt.Sprintf("%-*s │ [%s]\n", width, label, f.inputs[i].View()))
	}
	return strings.TrimRight(b.String(), "\n")
}
