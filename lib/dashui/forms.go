// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/lib/schema"
)

// authForm is the shared machinery of the login and register forms: a
// vertical stack of text inputs with one focused at a time.
type authForm struct {
	inputs []textinput.Model
	focus  int
}

func newAuthForm(inputs ...textinput.Model) authForm {
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return authForm{inputs: inputs}
}

// cycle moves focus by delta (1 for tab/down, -1 for shift+tab/up),
// wrapping at the ends.
func (form *authForm) cycle(delta int) {
	form.inputs[form.focus].Blur()
	form.focus = (form.focus + delta + len(form.inputs)) % len(form.inputs)
	form.inputs[form.focus].Focus()
}

// update routes a message to the focused input.
func (form *authForm) update(message tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	form.inputs[form.focus], cmd = form.inputs[form.focus].Update(message)
	return cmd
}

// reset clears every input and refocuses the first.
func (form *authForm) reset() {
	for index := range form.inputs {
		form.inputs[index].Reset()
		form.inputs[index].Blur()
	}
	form.focus = 0
	form.inputs[0].Focus()
}

// LoginForm collects email and password. Submission is handled by the
// page model; validation is deferred entirely to the server.
type LoginForm struct {
	form authForm

	// Message is the notice under the form. Login failures show the
	// server's error message verbatim.
	Message string

	// MessageIsSuccess flips the message color; used for the
	// post-registration notice.
	MessageIsSuccess bool
}

// NewLoginForm creates the login form with the email field focused.
func NewLoginForm() LoginForm {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	password.Width = 40

	return LoginForm{form: newAuthForm(email, password)}
}

// Update handles one key message. Tab and shift+tab move between
// fields; everything else goes to the focused input.
func (login *LoginForm) Update(message tea.KeyMsg) tea.Cmd {
	switch message.Type {
	case tea.KeyTab, tea.KeyDown:
		login.form.cycle(1)
		return nil
	case tea.KeyShiftTab, tea.KeyUp:
		login.form.cycle(-1)
		return nil
	}
	return login.form.update(message)
}

// Values returns the entered email and password.
func (login *LoginForm) Values() (email, password string) {
	return strings.TrimSpace(login.form.inputs[0].Value()), login.form.inputs[1].Value()
}

// Reset clears the form and its message.
func (login *LoginForm) Reset() {
	login.form.reset()
	login.Message = ""
	login.MessageIsSuccess = false
}

// View renders the login page content.
func (login *LoginForm) View(theme Theme, width int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.HeaderForeground).
		Render("Log in to taskdeck")

	var body strings.Builder
	body.WriteString(title + "\n\n")
	body.WriteString("Email:    " + login.form.inputs[0].View() + "\n")
	body.WriteString("Password: " + login.form.inputs[1].View() + "\n")

	if login.Message != "" {
		color := theme.ErrorText
		if login.MessageIsSuccess {
			color = theme.SuccessText
		}
		style := lipgloss.NewStyle().Foreground(color)
		body.WriteString("\n" + style.Render(login.Message) + "\n")
	}

	help := lipgloss.NewStyle().Foreground(theme.HelpText).
		Render("Enter submit · Tab next field · Ctrl+R register · Ctrl+C quit")
	body.WriteString("\n" + help)

	return modalBox(theme, min(width-4, 56), body.String())
}

// RegisterForm collects name, email, password, and role. On success it
// shows a positive message and resets — it never logs the user in.
type RegisterForm struct {
	form authForm
	role schema.Role

	// Message is the notice under the form: the server's error, the
	// generic fallback, or the success text.
	Message string

	// MessageIsError selects the message color.
	MessageIsError bool
}

// NewRegisterForm creates the register form with the name field
// focused and the role defaulting to member.
func NewRegisterForm() RegisterForm {
	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 100
	name.Width = 40

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password (6+ characters)"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	password.Width = 40

	return RegisterForm{
		form: newAuthForm(name, email, password),
		role: schema.RoleMember,
	}
}

// Update handles one key message. Tab cycles fields, ctrl+t toggles
// the role between member and admin.
func (register *RegisterForm) Update(message tea.KeyMsg) tea.Cmd {
	switch message.Type {
	case tea.KeyTab, tea.KeyDown:
		register.form.cycle(1)
		return nil
	case tea.KeyShiftTab, tea.KeyUp:
		register.form.cycle(-1)
		return nil
	case tea.KeyCtrlT:
		if register.role == schema.RoleMember {
			register.role = schema.RoleAdmin
		} else {
			register.role = schema.RoleMember
		}
		return nil
	}
	return register.form.update(message)
}

// Values returns the entered fields and selected role.
func (register *RegisterForm) Values() (name, email, password string, role schema.Role) {
	return strings.TrimSpace(register.form.inputs[0].Value()),
		strings.TrimSpace(register.form.inputs[1].Value()),
		register.form.inputs[2].Value(),
		register.role
}

// Reset clears the inputs and role but keeps the message — a success
// notice stays visible over the freshly cleared form.
func (register *RegisterForm) Reset() {
	register.form.reset()
	register.role = schema.RoleMember
}

// View renders the register page content.
func (register *RegisterForm) View(theme Theme, width int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.HeaderForeground).
		Render("Create an account")

	var body strings.Builder
	body.WriteString(title + "\n\n")
	body.WriteString("Name:     " + register.form.inputs[0].View() + "\n")
	body.WriteString("Email:    " + register.form.inputs[1].View() + "\n")
	body.WriteString("Password: " + register.form.inputs[2].View() + "\n")
	body.WriteString("Role:     " + string(register.role) + "\n")

	if register.Message != "" {
		color := theme.SuccessText
		if register.MessageIsError {
			color = theme.ErrorText
		}
		style := lipgloss.NewStyle().Foreground(color)
		body.WriteString("\n" + style.Render(register.Message) + "\n")
	}

	help := lipgloss.NewStyle().Foreground(theme.HelpText).
		Render("Enter submit · Tab next field · Ctrl+T toggle role · Esc back to login")
	body.WriteString("\n" + help)

	return modalBox(theme, min(width-4, 64), body.String())
}
