// Package shell hosts the root bubbletea model for the AyosNow terminal
// client: the login/register/dashboard view machine, the async command
// plumbing, and the top-level frame.
package shell

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"ayosnow/cmd/ayosnow/ui"
	"ayosnow/internal/api"
	"ayosnow/internal/config"
	"ayosnow/internal/dashboard"
	"ayosnow/internal/session"
)

// Model is the program root. It owns the session store and routes every
// message to the page matching the current view.
type Model struct {
	cfg      config.Config
	logger   *zap.Logger
	styles   ui.Styles
	store    *session.Store
	client   *api.Client
	provider dashboard.Provider

	login    ui.LoginPage
	register ui.RegisterPage
	dash     ui.DashboardPage
	toast    ui.ToastModel

	width  int
	height int

	// fetchGen stamps each dashboard fetch; results carrying an older
	// generation are dropped so a logout or re-login never resurrects
	// stale data.
	fetchGen    uint64
	fetchCancel context.CancelFunc

	quitting bool
}

// New assembles the root model. The session starts logged out at the
// login view.
func New(cfg config.Config, logger *zap.Logger, client *api.Client, provider dashboard.Provider) Model {
	theme := ui.DetectTheme()
	if cfg.DarkMode {
		theme = ui.DarkTheme()
	}
	styles := ui.NewStyles(theme)

	return Model{
		cfg:      cfg,
		logger:   logger,
		styles:   styles,
		store:    session.NewStore(),
		client:   client,
		provider: provider,
		login:    ui.NewLoginPage(styles),
		register: ui.NewRegisterPage(styles),
		toast:    ui.NewToast(styles, cfg.ToastTTL),
	}
}

// Init satisfies tea.Model; nothing runs until the first key.
func (m Model) Init() tea.Cmd {
	return nil
}

// CurrentView exposes the current session view, mostly for tests.
func (m Model) CurrentView() session.View {
	return m.store.Snapshot().View
}

// cancelFetch abandons any in-flight dashboard fetch and invalidates its
// generation so a late result is ignored either way.
func (m *Model) cancelFetch() {
	if m.fetchCancel != nil {
		m.fetchCancel()
		m.fetchCancel = nil
	}
	m.fetchGen++
}
