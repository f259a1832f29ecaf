package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ayosnow/internal/forms"
	"ayosnow/internal/marketplace"
)

// RegisterSubmitMsg asks the shell to create the account described by the
// (already locally validated) form.
type RegisterSubmitMsg struct {
	Form forms.Registration
}

// SwitchToLoginMsg asks the shell to return to the login view.
type SwitchToLoginMsg struct{}

// registerStep is the wizard position: role choice first, details second.
type registerStep int

const (
	stepRoleSelect registerStep = iota
	stepDetails
)

const (
	regFocusName = iota
	regFocusEmail
	regFocusPassword
	regFocusConfirm
	regFocusSkill
	regFocusSubmit
)

// RegisterPage is the two-step signup wizard.
type RegisterPage struct {
	styles Styles

	step registerStep
	role marketplace.Role

	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	confirm  textinput.Model
	skillIdx int

	focus   int
	busy    bool
	errText string
}

// NewRegisterPage creates the wizard at the role-selection step with
// CUSTOMER preselected.
func NewRegisterPage(styles Styles) RegisterPage {
	name := textinput.New()
	name.Placeholder = "John Doe"
	name.CharLimit = 80

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254

	password := textinput.New()
	password.Placeholder = "Create password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128

	confirm := textinput.New()
	confirm.Placeholder = "Repeat password"
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '•'
	confirm.CharLimit = 128

	return RegisterPage{
		styles:   styles,
		step:     stepRoleSelect,
		role:     marketplace.RoleCustomer,
		name:     name,
		email:    email,
		password: password,
		confirm:  confirm,
	}
}

// Reset returns the wizard to a pristine role-selection state.
func (p RegisterPage) Reset() RegisterPage {
	return NewRegisterPage(p.styles)
}

// SetBusy toggles the in-flight state.
func (p RegisterPage) SetBusy(busy bool) RegisterPage {
	p.busy = busy
	return p
}

// SetError surfaces a backend failure; the wizard stays on DETAILS with
// the entered values intact.
func (p RegisterPage) SetError(text string) RegisterPage {
	p.errText = text
	return p
}

// Role returns the currently selected role.
func (p RegisterPage) Role() marketplace.Role { return p.role }

// Step reports whether the wizard is past role selection.
func (p RegisterPage) OnDetails() bool { return p.step == stepDetails }

// Update handles wizard input.
func (p RegisterPage) Update(msg tea.Msg) (RegisterPage, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p.updateFields(msg)
	}

	if p.step == stepRoleSelect {
		return p.updateRoleSelect(keyMsg)
	}
	return p.updateDetails(keyMsg, msg)
}

func (p RegisterPage) updateRoleSelect(keyMsg tea.KeyMsg) (RegisterPage, tea.Cmd) {
	switch keyMsg.String() {
	case "left", "right", "up", "down", "tab":
		if p.role == marketplace.RoleCustomer {
			p.role = marketplace.RoleWorker
		} else {
			p.role = marketplace.RoleCustomer
		}
		return p, nil

	case "enter":
		p.step = stepDetails
		p.focus = regFocusName
		p.errText = ""
		if p.role == marketplace.RoleCustomer {
			// Skill is worker-only; clear any leftover choice.
			p.skillIdx = 0
		}
		p.syncFocus()
		return p, nil

	case "ctrl+l", "esc":
		if !p.busy {
			return p, func() tea.Msg { return SwitchToLoginMsg{} }
		}
	}
	return p, nil
}

func (p RegisterPage) updateDetails(keyMsg tea.KeyMsg, raw tea.Msg) (RegisterPage, tea.Cmd) {
	switch keyMsg.String() {
	case "esc":
		// Back to role selection, keeping what was typed.
		if !p.busy {
			p.step = stepRoleSelect
			p.errText = ""
		}
		return p, nil

	case "tab", "down":
		p.focus = p.nextFocus(p.focus, 1)
		p.syncFocus()
		return p, nil

	case "shift+tab", "up":
		p.focus = p.nextFocus(p.focus, -1)
		p.syncFocus()
		return p, nil

	case "left", "right":
		if p.focus == regFocusSkill {
			delta := 1
			if keyMsg.String() == "left" {
				delta = len(marketplace.WorkerProfessions) - 1
			}
			p.skillIdx = (p.skillIdx + delta) % len(marketplace.WorkerProfessions)
			return p, nil
		}

	case "enter":
		if p.focus == regFocusSubmit {
			return p.submit()
		}
		p.focus = p.nextFocus(p.focus, 1)
		p.syncFocus()
		return p, nil
	}

	return p.updateFields(raw)
}

// nextFocus steps through the detail fields, skipping the skill selector
// for customers.
func (p RegisterPage) nextFocus(current, dir int) int {
	count := regFocusSubmit + 1
	next := current
	for {
		next = (next + dir + count) % count
		if next == regFocusSkill && p.role != marketplace.RoleWorker {
			continue
		}
		return next
	}
}

// Form assembles the validation form from the wizard state.
func (p RegisterPage) Form() forms.Registration {
	form := forms.NewRegistration(p.role)
	form.Name = p.name.Value()
	form.Email = p.email.Value()
	form.Password = p.password.Value()
	form.ConfirmPassword = p.confirm.Value()
	if p.role == marketplace.RoleWorker {
		form.Skill = marketplace.WorkerProfessions[p.skillIdx]
	}
	return form
}

func (p RegisterPage) submit() (RegisterPage, tea.Cmd) {
	if p.busy {
		return p, nil
	}

	form := p.Form()
	if err := forms.Check(form); err != nil {
		// Validation failures stay local; nothing goes over the wire.
		p.errText = err.Error()
		return p, nil
	}

	p.errText = ""
	return p, func() tea.Msg { return RegisterSubmitMsg{Form: form} }
}

func (p RegisterPage) updateFields(msg tea.Msg) (RegisterPage, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	p.name, cmd = p.name.Update(msg)
	cmds = append(cmds, cmd)
	p.email, cmd = p.email.Update(msg)
	cmds = append(cmds, cmd)
	p.password, cmd = p.password.Update(msg)
	cmds = append(cmds, cmd)
	p.confirm, cmd = p.confirm.Update(msg)
	cmds = append(cmds, cmd)

	return p, tea.Batch(cmds...)
}

func (p *RegisterPage) syncFocus() {
	p.name.Blur()
	p.email.Blur()
	p.password.Blur()
	p.confirm.Blur()
	switch p.focus {
	case regFocusName:
		p.name.Focus()
	case regFocusEmail:
		p.email.Focus()
	case regFocusPassword:
		p.password.Focus()
	case regFocusConfirm:
		p.confirm.Focus()
	}
}

// View renders the current wizard step.
func (p RegisterPage) View() string {
	if p.step == stepRoleSelect {
		return p.viewRoleSelect()
	}
	return p.viewDetails()
}

func (p RegisterPage) viewRoleSelect() string {
	s := p.styles

	card := func(selected bool, title, desc string) string {
		style := s.Card
		if selected {
			style = style.BorderForeground(s.Theme.Primary)
			title = "● " + title
		} else {
			title = "○ " + title
		}
		return style.Render(s.Bold.Render(title) + "\n" + s.Muted.Render(desc))
	}

	customer := card(p.role == marketplace.RoleCustomer,
		"I need a service", "Find electricians, plumbers, and more.")
	worker := card(p.role == marketplace.RoleWorker,
		"I'm a skilled worker", "Find jobs and manage bookings.")

	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Create Account"),
		lipgloss.JoinHorizontal(lipgloss.Top, customer, " ", worker),
		"",
		s.Button.Render("Continue as "+string(p.role)),
		"",
		s.Muted.Render("←/→ choose role · enter continue · "+
			"already have an account? esc to log in"),
	)
}

func (p RegisterPage) viewDetails() string {
	s := p.styles

	field := func(focused bool, content string) string {
		if focused {
			return s.FieldFocused.Render(content)
		}
		return s.FieldBlurred.Render(content)
	}

	sections := []string{
		s.Title.Render("Create Account · " + string(p.role)),
		s.Muted.Render("esc back to role selection"),
		s.Label.Render("Full Name"),
		field(p.focus == regFocusName, p.name.View()),
		s.Label.Render("Email Address"),
		field(p.focus == regFocusEmail, p.email.View()),
		s.Label.Render("Password"),
		field(p.focus == regFocusPassword, p.password.View()),
		s.Label.Render("Confirm Password"),
		field(p.focus == regFocusConfirm, p.confirm.View()),
	}

	if p.role == marketplace.RoleWorker {
		skill := marketplace.WorkerProfessions[p.skillIdx]
		selector := "◂ " + skill + " ▸"
		sections = append(sections,
			s.Label.Render("Profession"),
			field(p.focus == regFocusSkill, selector),
		)
	}

	submit := s.Button.Render("Create Account")
	if p.busy {
		submit = s.ButtonBusy.Render("Creating account…")
	} else if p.focus == regFocusSubmit {
		submit = s.Button.Underline(true).Render("Create Account")
	}
	sections = append(sections, "", submit)

	if p.errText != "" {
		sections = append(sections, s.Error.Render(p.errText))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
