package shell

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"ayosnow/cmd/ayosnow/ui"
	"ayosnow/internal/api"
	"ayosnow/internal/config"
	"ayosnow/internal/forms"
	"ayosnow/internal/marketplace"
	"ayosnow/internal/session"
)

// stubProvider returns canned dashboard data synchronously.
type stubProvider struct {
	data *marketplace.DashboardData
	err  error
}

func (s stubProvider) FetchDashboard(ctx context.Context, _ marketplace.User) (*marketplace.DashboardData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.data, s.err
}

func stubData() *marketplace.DashboardData {
	return &marketplace.DashboardData{
		Profile: marketplace.Profile{Name: "Jane Doe", Email: "jane@example.com"},
		Stats: []marketplace.Stat{
			{Label: marketplace.StatActive, Value: 0},
			{Label: marketplace.StatTotalJobs, Value: 8},
		},
		Bookings: []marketplace.Booking{},
	}
}

// testBackend is an HTTP stub for the AyosNow API. requests counts every
// call so tests can assert that nothing went over the wire.
type testBackend struct {
	srv      *httptest.Server
	requests atomic.Int64
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	b := &testBackend{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email, Password string
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "password123" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials or role mismatch."})
			return
		}
		role := "CUSTOMER"
		if strings.HasPrefix(body.Email, "worker") {
			role = "WORKER"
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 1, "name": "Jane Doe", "email": body.Email, "role": role, "token": "tok-1",
		})
	})
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var body api.RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 2, "name": body.Name, "email": body.Email, "role": body.Role, "token": "tok-2",
		})
	})
	mux.HandleFunc("/api/user/bookings/request", func(w http.ResponseWriter, r *http.Request) {
		var body api.BookingRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.ServiceCategory == "Painting" {
			w.WriteHeader(http.StatusPaymentRequired)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Payment method required."})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 55, "serviceCategory": body.ServiceCategory, "preferredTime": body.PreferredTime,
		})
	})
	mux.HandleFunc("/api/worker/jobs/2/accept", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 2, "title": "Fix Burst Pipe Emergency", "client": "L. Smith", "status": "Accepted",
		})
	})

	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.requests.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func newTestModel(t *testing.T, backend *testBackend, provider stubProvider) Model {
	t.Helper()
	cfg := *config.Default()
	cfg.APIBaseURL = backend.srv.URL
	cfg.ToastTTL = time.Millisecond

	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	return New(cfg, zap.NewNop(), client, provider)
}

// collect executes a command tree and flattens the produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// findMsg pulls the first message of type T out of msgs, failing the test
// when it is absent.
func findMsg[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, msg := range msgs {
		if typed, ok := msg.(T); ok {
			return typed
		}
	}
	var zero T
	t.Fatalf("no %T among %d messages", zero, len(msgs))
	return zero
}

// loginAs drives a full successful login, leaving the fetch result
// unapplied so tests control when (and whether) it lands.
func loginAs(t *testing.T, m Model, email string) (Model, dashboardFetchedMsg) {
	t.Helper()

	m, cmd := apply(t, m, ui.LoginSubmitMsg{Email: email, Password: "password123"})
	result := findMsg[loginResultMsg](t, collect(cmd))

	m, cmd = apply(t, m, result)
	fetch := findMsg[dashboardFetchedMsg](t, collect(cmd))
	return m, fetch
}

func TestShell_LoginRoutesCustomerToDashboard(t *testing.T) {
	backend := newTestBackend(t)
	m := newTestModel(t, backend, stubProvider{data: stubData()})

	m, fetch := loginAs(t, m, "jane@example.com")

	if got := m.CurrentView(); got != session.ViewCustomerDashboard {
		t.Fatalf("view = %s, want USER_DASHBOARD", got)
	}
	if !m.toast.Visible() || m.toast.Text() != "Welcome, Jane!" {
		t.Errorf("toast = %q (visible=%v)", m.toast.Text(), m.toast.Visible())
	}
	if !m.dash.Loading() {
		t.Error("dashboard must be loading until the fetch lands")
	}

	m, _ = apply(t, m, fetch)
	if m.dash.Loading() || m.dash.Data() == nil {
		t.Fatal("fetch result must populate the dashboard")
	}
}

func TestShell_LoginRoutesWorkerToWorkerDashboard(t *testing.T) {
	backend := newTestBackend(t)
	m := newTestModel(t, backend, stubProvider{data: stubData()})

	m, _ = loginAs(t, m, "worker@example.com")

	if got := m.CurrentView(); got != session.ViewWorkerDashboard {
		t.Fatalf("view = %s, want WORKER_DASHBOARD", got)
	}
	if m.toast.Text() != "Welcome, Jane!" || m.toast.Kind() != ui.ToastSuccess {
		t.Errorf("toast = %q kind=%v", m.toast.Text(), m.toast.Kind())
	}
}

func TestShell_LoginFailureStaysOnLogin(t *testing.T) {
	backend := newTestBackend(t)
	m := newTestModel(t, backend, stubProvider{data: stubData()})

	m, cmd := apply(t, m, ui.LoginSubmitMsg{Email: "jane@example.com", Password: "wrongpass1"})
	result := findMsg[loginResultMsg](t, collect(cmd))

	m, _ = apply(t, m, result)
	if got := m.CurrentView(); got != session.ViewLogin {
		t.Fatalf("view = %s, want LOGIN", got)
	}
	if !strings.Contains(m.login.View(), "Invalid credentials or role mismatch.") {
		t.Error("backend message must render inline")
	}
	if m.toast.Kind() != ui.ToastError {
		t.Error("failure toast must be an error toast")
	}
}

func TestShell_ValidationFailureNeverHitsNetwork(t *testing.T) {
	backend := newTestBackend(t)
	m := newTestModel(t, backend, stubProvider{data: stubData()})

	// Empty form: enter moves to password, second enter submits.
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	collect(cmd)

	if got := backend.requests.Load(); got != 0 {
		t.Fatalf("local validation failure issued %d requests, want 0", got)
	}
	if got := m.CurrentView(); got != session.ViewLogin {
		t.Errorf("view = %s, want LOGIN", got)
	}
}

func TestShell_RegisterSeedsSessionLikeLogin(t *testing.T) {
	backend := newTestBackend(t)
	m := newTestModel(t, backend, stubProvider{data: stubData()})

	m, cmd := apply(t, m, ui.SwitchToRegisterMsg{})
	collect(cmd)
	if got := m.CurrentView(); got != session.ViewRegister {
		t.Fatalf("view = %s, want REGISTER", got)
	}

	m, cmd = apply(t, m, ui.RegisterSubmitMsg{Form: registrationForm()})
	result := findMsg[registerResultMsg](t, collect(cmd))

	m, _ = apply(t, m, result)
	if got := m.CurrentView(); got != session.ViewCustomerDashboard {
		t.Fatalf("view = %s, want USER_DASHBOARD", got)
	}
	if m.toast.Text() != "Account created. Welcome, Jane!" {
		t.Errorf("toast = %q", m.toast.Text())
	}
}

func TestShell_BookingOptimisticUpdate(t *testing.T) {
	backend := newTestBackend(t)
	m := newTestModel(t, backend, stubProvider{data: stubData()})

	m, fetch := loginAs(t, m, "jane@example.com")
	m, _ = apply(t, m, fetch)

	m, cmd := apply(t, m, ui.BookingSubmitMsg{
		Category:      "Plumbing",
		Description:   "Leaky kitchen faucet needs replacement",
		PreferredTime: time.Now().UTC().Format(time.RFC3339),
	})
	result := findMsg[bookingResultMsg](t, collect(cmd))

	m, _ = apply(t, m, result)
	d := m.dash.Data()
	if len(d.Bookings) != 1 || d.Bookings[0].ID != 55 {
		t.Fatalf("bookings = %+v", d.Bookings)
	}
	if d.Bookings[0].Status != marketplace.BookingPending {
		t.Errorf("status = %q, want Pending", d.Bookings[0].Status)
	}
	if d.Stats[0].Value != 1 {
		t.Errorf("Active stat = %v, want 1", d.Stats[0].Value)
	}
	if m.toast.Text() != "Booking request submitted!" {
		t.Errorf("toast = %q", m.toast.Text())
	}
}

func TestShell_BookingFailureLeavesDataUntouched(t *testing.T) {
	backend := newTestBackend(t)
	m := newTestModel(t, backend, stubProvider{data: stubData()})

	m, fetch := loginAs(t, m, "jane@example.com")
	m, _ = apply(t, m, fetch)

	m, cmd := apply(t, m, ui.BookingSubmitMsg{
		Category:      "Painting", // backend rejects this one
		Description:   "Repaint the living room walls",
		PreferredTime: time.Now().UTC().Format(time.RFC3339),
	})
	result := findMsg[bookingResultMsg](t, collect(cmd))

	m, _ = apply(t, m, result)
	if got := len(m.dash.Data().Bookings); got != 0 {
		t.Fatalf("failed booking mutated data: %d bookings", got)
	}
	if m.toast.Text() != "Payment method required." || m.toast.Kind() != ui.ToastError {
		t.Errorf("toast = %q kind=%v", m.toast.Text(), m.toast.Kind())
	}
}

func TestShell_AcceptJobPrependsPipeline(t *testing.T) {
	backend := newTestBackend(t)
	data := stubData()
	data.Bookings = nil
	data.Stats = []marketplace.Stat{{Label: marketplace.StatActiveRequests, Value: 1}}
	data.Jobs = []marketplace.Job{
		{ID: 2, Title: "Fix Burst Pipe Emergency", Client: "L. Smith", Status: marketplace.JobConfirmed},
	}
	m := newTestModel(t, backend, stubProvider{data: data})

	m, fetch := loginAs(t, m, "worker@example.com")
	m, _ = apply(t, m, fetch)

	m, cmd := apply(t, m, ui.AcceptJobMsg{JobID: 2})
	result := findMsg[acceptResultMsg](t, collect(cmd))

	m, _ = apply(t, m, result)
	jobs := m.dash.Data().Jobs
	if len(jobs) != 1 || jobs[0].Status != marketplace.JobAccepted {
		t.Fatalf("jobs = %+v", jobs)
	}
	if m.toast.Text() != "Job accepted!" {
		t.Errorf("toast = %q", m.toast.Text())
	}
}

func TestShell_EscDismissesToast(t *testing.T) {
	backend := newTestBackend(t)
	m := newTestModel(t, backend, stubProvider{data: stubData()})

	m, fetch := loginAs(t, m, "jane@example.com")
	m, _ = apply(t, m, fetch)
	if !m.toast.Visible() {
		t.Fatal("login must leave a toast showing")
	}

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.toast.Visible() {
		t.Fatal("esc must dismiss the visible toast")
	}
	if got := m.CurrentView(); got != session.ViewCustomerDashboard {
		t.Errorf("dismissing a toast moved the view to %s", got)
	}
}

func TestShell_LogoutSuppressesStaleFetch(t *testing.T) {
	backend := newTestBackend(t)
	m := newTestModel(t, backend, stubProvider{data: stubData()})

	m, staleFetch := loginAs(t, m, "jane@example.com")

	m, _ = apply(t, m, ui.LogoutMsg{})
	if got := m.CurrentView(); got != session.ViewLogin {
		t.Fatalf("view after logout = %s, want LOGIN", got)
	}
	if view := m.View(); strings.Contains(view, "Hello,") || !strings.Contains(view, "Welcome Back") {
		t.Error("logout must render the login form, not dashboard content")
	}

	// The fetch from the ended session lands late and must change nothing.
	m, _ = apply(t, m, staleFetch)
	if got := m.CurrentView(); got != session.ViewLogin {
		t.Errorf("stale fetch moved the view to %s", got)
	}
	if m.dash.Data() != nil {
		t.Error("stale fetch must not populate the dashboard")
	}
}

func TestShell_ReloginDiscardsPreviousSessionsFetch(t *testing.T) {
	backend := newTestBackend(t)
	m := newTestModel(t, backend, stubProvider{data: stubData()})

	m, firstFetch := loginAs(t, m, "jane@example.com")
	m, _ = apply(t, m, ui.LogoutMsg{})
	m, secondFetch := loginAs(t, m, "jane@example.com")

	m, _ = apply(t, m, firstFetch)
	if m.dash.Data() != nil {
		t.Fatal("first session's fetch must be discarded after re-login")
	}

	m, _ = apply(t, m, secondFetch)
	if m.dash.Data() == nil {
		t.Fatal("current session's fetch must apply")
	}
}

func TestShell_FetchErrorShowsErrorState(t *testing.T) {
	backend := newTestBackend(t)
	m := newTestModel(t, backend, stubProvider{err: errStub("provider down")})

	m, fetch := loginAs(t, m, "jane@example.com")
	m, _ = apply(t, m, fetch)

	if m.dash.Loading() {
		t.Fatal("fetch error must end loading")
	}
	if !strings.Contains(m.dash.View(), "Failed to load dashboard data") {
		t.Error("error state must render in the dashboard")
	}
}

type errStub string

func (e errStub) Error() string { return string(e) }

func registrationForm() forms.Registration {
	return forms.Registration{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		Role:            "CUSTOMER",
	}
}
