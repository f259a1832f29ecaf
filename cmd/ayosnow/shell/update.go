package shell

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"ayosnow/cmd/ayosnow/ui"
	"ayosnow/internal/api"
	"ayosnow/internal/marketplace"
	"ayosnow/internal/session"
)

// Update routes messages: global keys first, then async results, then the
// page owning the current view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The toast tracks its own expiry ticks regardless of view.
	var toastCmd tea.Cmd
	m.toast, toastCmd = m.toast.Update(msg)
	cmds = append(cmds, toastCmd)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelFetch()
			m.quitting = true
			return m, tea.Quit
		}
		// esc clears a visible toast before the page sees the key.
		if msg.String() == "esc" && m.toast.Visible() {
			m.toast = m.toast.Dismiss()
			return m, tea.Batch(cmds...)
		}

	// Page intents.
	case ui.LoginSubmitMsg:
		m.login = m.login.SetBusy(true).SetError("")
		m.logger.Info("login attempt", zap.String("email", msg.Email))
		return m, tea.Batch(append(cmds, m.loginCmd(msg.Email, msg.Password))...)

	case ui.RegisterSubmitMsg:
		m.register = m.register.SetBusy(true).SetError("")
		m.logger.Info("register attempt",
			zap.String("email", msg.Form.Email), zap.String("role", msg.Form.Role))
		return m, tea.Batch(append(cmds, m.registerCmd(msg.Form))...)

	case ui.SwitchToRegisterMsg:
		m.store.GoToRegister()
		m.register = m.register.Reset()
		return m, tea.Batch(cmds...)

	case ui.SwitchToLoginMsg:
		m.store.GoToLogin()
		m.login = m.login.Reset()
		return m, tea.Batch(cmds...)

	case ui.BookingSubmitMsg:
		m.dash = m.dash.SetSubmitting(true)
		return m, tea.Batch(append(cmds, m.bookingCmd(api.BookingRequest{
			ServiceCategory: msg.Category,
			TaskDescription: msg.Description,
			PreferredTime:   msg.PreferredTime,
		}))...)

	case ui.AcceptJobMsg:
		m.dash = m.dash.SetSubmitting(true)
		return m, tea.Batch(append(cmds, m.acceptJobCmd(msg.JobID))...)

	case ui.LogoutMsg:
		return m.logout(cmds)

	// Async results.
	case loginResultMsg:
		return m.onAuthResult(cmds, msg.resp, msg.err, false)

	case registerResultMsg:
		return m.onAuthResult(cmds, msg.resp, msg.err, true)

	case dashboardFetchedMsg:
		return m.onDashboardFetched(cmds, msg)

	case bookingResultMsg:
		return m.onBookingResult(cmds, msg)

	case acceptResultMsg:
		return m.onAcceptResult(cmds, msg)
	}

	// Everything else belongs to the active page.
	switch view := m.store.Snapshot().View; {
	case view == session.ViewLogin:
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		cmds = append(cmds, cmd)
	case view == session.ViewRegister:
		var cmd tea.Cmd
		m.register, cmd = m.register.Update(msg)
		cmds = append(cmds, cmd)
	case view.Dashboard():
		var cmd tea.Cmd
		m.dash, cmd = m.dash.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// onAuthResult handles login and register outcomes; both seed the same
// dashboard session on success.
func (m Model) onAuthResult(cmds []tea.Cmd, resp *api.AuthResponse, err error, registered bool) (tea.Model, tea.Cmd) {
	if err != nil {
		text := errorText(err)
		m.logger.Warn("auth failed", zap.Bool("register", registered), zap.Error(err))
		if registered {
			m.register = m.register.SetBusy(false).SetError(text)
		} else {
			m.login = m.login.SetBusy(false).SetError(text)
		}
		var toastCmd tea.Cmd
		m.toast, toastCmd = m.toast.Show(text, ui.ToastError)
		return m, tea.Batch(append(cmds, toastCmd)...)
	}

	user := resp.User
	if err := m.store.Login(user, resp.Token); err != nil {
		m.logger.Error("session seed rejected", zap.Error(err))
		text := errorText(err)
		m.login = m.login.SetBusy(false).SetError(text)
		var toastCmd tea.Cmd
		m.toast, toastCmd = m.toast.Show(text, ui.ToastError)
		return m, tea.Batch(append(cmds, toastCmd)...)
	}
	m.client.SetAuthToken(resp.Token)

	m.logger.Info("session started",
		zap.Int64("userID", user.ID), zap.String("role", string(user.Role)))

	greeting := "Welcome, " + user.FirstName() + "!"
	if registered {
		greeting = "Account created. " + greeting
	}

	// A fresh dashboard starts loading; any previous fetch is abandoned.
	m.cancelFetch()
	ctx, cancel := context.WithCancel(context.Background())
	m.fetchCancel = cancel
	m.dash = ui.NewDashboardPage(m.styles, user)

	var toastCmd tea.Cmd
	m.toast, toastCmd = m.toast.Show(greeting, ui.ToastSuccess)

	cmds = append(cmds, toastCmd, m.dash.Init(), m.fetchDashboardCmd(ctx, m.fetchGen, user))
	return m, tea.Batch(cmds...)
}

func (m Model) onDashboardFetched(cmds []tea.Cmd, msg dashboardFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.fetchGen || !m.store.Snapshot().View.Dashboard() {
		// A logout or re-login superseded this fetch.
		return m, tea.Batch(cmds...)
	}
	if m.fetchCancel != nil {
		// The fetch is done; release its context.
		m.fetchCancel()
		m.fetchCancel = nil
	}

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return m, tea.Batch(cmds...)
		}
		m.logger.Warn("dashboard fetch failed", zap.Error(msg.err))
		m.dash = m.dash.ApplyFetchError(msg.err)
		return m, tea.Batch(cmds...)
	}

	m.dash = m.dash.ApplyData(msg.data)
	return m, tea.Batch(cmds...)
}

func (m Model) onBookingResult(cmds []tea.Cmd, msg bookingResultMsg) (tea.Model, tea.Cmd) {
	m.dash = m.dash.SetSubmitting(false)

	if msg.err != nil {
		text := errorText(msg.err)
		m.logger.Warn("booking failed", zap.Error(msg.err))
		m.dash = m.dash.SetActionError(text)
		var toastCmd tea.Cmd
		m.toast, toastCmd = m.toast.Show(text, ui.ToastError)
		return m, tea.Batch(append(cmds, toastCmd)...)
	}

	booking := marketplace.Booking{
		ID:       msg.resp.ID,
		Service:  msg.resp.ServiceCategory,
		Provider: "Searching for provider...",
		Status:   marketplace.BookingPending,
		Time:     marketplace.ParseBookingTime(msg.resp.PreferredTime),
		Location: msg.resp.Location,
	}
	m.logger.Info("booking created", zap.Int64("bookingID", booking.ID))
	m.dash = m.dash.BookingCreated(booking)

	var toastCmd tea.Cmd
	m.toast, toastCmd = m.toast.Show("Booking request submitted!", ui.ToastSuccess)
	return m, tea.Batch(append(cmds, toastCmd)...)
}

func (m Model) onAcceptResult(cmds []tea.Cmd, msg acceptResultMsg) (tea.Model, tea.Cmd) {
	m.dash = m.dash.SetSubmitting(false)

	if msg.err != nil {
		text := errorText(msg.err)
		m.logger.Warn("job accept failed", zap.Error(msg.err))
		m.dash = m.dash.SetActionError(text)
		var toastCmd tea.Cmd
		m.toast, toastCmd = m.toast.Show(text, ui.ToastError)
		return m, tea.Batch(append(cmds, toastCmd)...)
	}

	job := *msg.job
	if job.Status == "" {
		job.Status = marketplace.JobAccepted
	}
	m.logger.Info("job accepted", zap.Int64("jobID", job.ID))
	m.dash = m.dash.JobAccepted(job)

	var toastCmd tea.Cmd
	m.toast, toastCmd = m.toast.Show("Job accepted!", ui.ToastSuccess)
	return m, tea.Batch(append(cmds, toastCmd)...)
}

func (m Model) logout(cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	m.cancelFetch()
	m.store.Logout()
	m.client.SetAuthToken("")
	m.login = m.login.Reset()
	m.register = m.register.Reset()
	m.toast = m.toast.Dismiss()
	m.logger.Info("session ended")
	return m, tea.Batch(cmds...)
}

// errorText converts a failure into the inline message the pages render.
// Structured backend errors surface their own message; transport failures
// collapse into one generic line.
func errorText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Unable to reach AyosNow. Please try again."
}
