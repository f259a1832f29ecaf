package shell

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"ayosnow/internal/api"
	"ayosnow/internal/forms"
	"ayosnow/internal/marketplace"
)

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	resp *api.AuthResponse
	err  error
}

// registerResultMsg carries the outcome of an account creation attempt.
type registerResultMsg struct {
	resp *api.AuthResponse
	err  error
}

// dashboardFetchedMsg delivers a provider fetch. gen identifies which
// session seed the fetch belongs to; stale generations are discarded.
type dashboardFetchedMsg struct {
	gen  uint64
	data *marketplace.DashboardData
	err  error
}

// bookingResultMsg carries the outcome of a booking submission.
type bookingResultMsg struct {
	resp *api.BookingResponse
	err  error
}

// acceptResultMsg carries the outcome of a job acceptance.
type acceptResultMsg struct {
	job *marketplace.Job
	err error
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	client := m.client
	timeout := m.cfg.HTTPTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := client.Login(ctx, email, password)
		return loginResultMsg{resp: resp, err: err}
	}
}

func (m Model) registerCmd(form forms.Registration) tea.Cmd {
	client := m.client
	timeout := m.cfg.HTTPTimeout
	req := api.RegisterRequest{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Role:     form.Role,
		Skill:    form.SkillPayload(),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := client.Register(ctx, req)
		return registerResultMsg{resp: resp, err: err}
	}
}

func (m Model) fetchDashboardCmd(ctx context.Context, gen uint64, user marketplace.User) tea.Cmd {
	provider := m.provider
	return func() tea.Msg {
		data, err := provider.FetchDashboard(ctx, user)
		return dashboardFetchedMsg{gen: gen, data: data, err: err}
	}
}

func (m Model) bookingCmd(req api.BookingRequest) tea.Cmd {
	client := m.client
	timeout := m.cfg.HTTPTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := client.RequestBooking(ctx, req)
		return bookingResultMsg{resp: resp, err: err}
	}
}

func (m Model) acceptJobCmd(jobID int64) tea.Cmd {
	client := m.client
	timeout := m.cfg.HTTPTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		job, err := client.AcceptJob(ctx, jobID)
		return acceptResultMsg{job: job, err: err}
	}
}
