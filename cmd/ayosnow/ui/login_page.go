package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ayosnow/internal/forms"
)

// LoginSubmitMsg asks the shell to attempt a backend login.
type LoginSubmitMsg struct {
	Email    string
	Password string
}

// SwitchToRegisterMsg asks the shell to show the signup wizard.
type SwitchToRegisterMsg struct{}

const (
	loginFocusEmail = iota
	loginFocusPassword
	loginFocusSubmit
	loginFocusCount
)

// LoginPage is the credential form shown at the LOGIN view.
type LoginPage struct {
	styles Styles

	email    textinput.Model
	password textinput.Model
	focus    int

	showPassword bool
	busy         bool
	errText      string
}

// NewLoginPage creates a login form with the email field focused.
func NewLoginPage(styles Styles) LoginPage {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "••••••••"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128

	return LoginPage{
		styles:   styles,
		email:    email,
		password: password,
	}
}

// Reset clears credentials and errors, e.g. after logout.
func (p LoginPage) Reset() LoginPage {
	p.email.SetValue("")
	p.password.SetValue("")
	p.errText = ""
	p.busy = false
	p.focus = loginFocusEmail
	p.syncFocus()
	return p
}

// SetBusy toggles the in-flight state; while busy the submit control is
// disabled so a second click cannot double-submit.
func (p LoginPage) SetBusy(busy bool) LoginPage {
	p.busy = busy
	return p
}

// SetError surfaces an inline error under the form.
func (p LoginPage) SetError(text string) LoginPage {
	p.errText = text
	return p
}

// Update handles key input for the form.
func (p LoginPage) Update(msg tea.Msg) (LoginPage, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p.updateFields(msg)
	}

	switch keyMsg.String() {
	case "tab", "down":
		p.focus = (p.focus + 1) % loginFocusCount
		p.syncFocus()
		return p, nil

	case "shift+tab", "up":
		p.focus = (p.focus + loginFocusCount - 1) % loginFocusCount
		p.syncFocus()
		return p, nil

	case "ctrl+p":
		// Visibility toggle is a pure UI affordance, not a security control.
		p.showPassword = !p.showPassword
		if p.showPassword {
			p.password.EchoMode = textinput.EchoNormal
		} else {
			p.password.EchoMode = textinput.EchoPassword
		}
		return p, nil

	case "enter":
		if p.focus == loginFocusEmail {
			p.focus = loginFocusPassword
			p.syncFocus()
			return p, nil
		}
		return p.submit()

	case "ctrl+r":
		if !p.busy {
			return p, func() tea.Msg { return SwitchToRegisterMsg{} }
		}
		return p, nil
	}

	return p.updateFields(msg)
}

func (p LoginPage) submit() (LoginPage, tea.Cmd) {
	if p.busy {
		return p, nil
	}

	form := forms.Login{Email: p.email.Value(), Password: p.password.Value()}
	if err := forms.Check(form); err != nil {
		p.errText = err.Error()
		return p, nil
	}

	p.errText = ""
	return p, func() tea.Msg {
		return LoginSubmitMsg{Email: form.Email, Password: form.Password}
	}
}

func (p LoginPage) updateFields(msg tea.Msg) (LoginPage, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	p.email, cmd = p.email.Update(msg)
	cmds = append(cmds, cmd)
	p.password, cmd = p.password.Update(msg)
	cmds = append(cmds, cmd)

	return p, tea.Batch(cmds...)
}

func (p *LoginPage) syncFocus() {
	p.email.Blur()
	p.password.Blur()
	switch p.focus {
	case loginFocusEmail:
		p.email.Focus()
	case loginFocusPassword:
		p.password.Focus()
	}
}

// View renders the form.
func (p LoginPage) View() string {
	s := p.styles

	field := func(focused bool, content string) string {
		if focused {
			return s.FieldFocused.Render(content)
		}
		return s.FieldBlurred.Render(content)
	}

	submit := s.Button.Render("Sign In →")
	if p.busy {
		submit = s.ButtonBusy.Render("Signing in…")
	} else if p.focus == loginFocusSubmit {
		submit = s.Button.Underline(true).Render("Sign In →")
	}

	sections := []string{
		s.Title.Render("Welcome Back"),
		s.Label.Render("Email"),
		field(p.focus == loginFocusEmail, p.email.View()),
		s.Label.Render("Password") + s.Muted.Render("  (ctrl+p shows/hides)"),
		field(p.focus == loginFocusPassword, p.password.View()),
		"",
		submit,
	}

	if p.errText != "" {
		sections = append(sections, s.Error.Render(p.errText))
	}

	sections = append(sections, "",
		s.Muted.Render("Don't have an account? ")+s.Link.Render("ctrl+r to sign up"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
