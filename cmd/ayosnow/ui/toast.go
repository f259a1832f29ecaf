package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ToastKind selects the toast's styling.
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

// toastExpiredMsg is the auto-dismiss tick. It carries the sequence number
// it was armed for; a tick for a superseded toast is ignored, so an old
// timer can never clear a newer message.
type toastExpiredMsg struct {
	seq uint64
}

// ToastModel renders at most one transient message at a time. Show
// supersedes any visible toast and restarts the expiry clock.
type ToastModel struct {
	styles Styles
	ttl    time.Duration

	visible bool
	text    string
	kind    ToastKind
	seq     uint64
}

// NewToast creates a hidden toast with the given time-to-live.
func NewToast(styles Styles, ttl time.Duration) ToastModel {
	return ToastModel{styles: styles, ttl: ttl}
}

// Show replaces the current toast (if any) and arms a fresh expiry timer.
// The previous timer's tick, if still pending, is invalidated by the
// sequence bump.
func (m ToastModel) Show(text string, kind ToastKind) (ToastModel, tea.Cmd) {
	m.seq++
	m.visible = true
	m.text = text
	m.kind = kind

	seq := m.seq
	return m, tea.Tick(m.ttl, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// Dismiss hides the toast immediately. The pending timer is left to fire
// into the bumped sequence check and do nothing.
func (m ToastModel) Dismiss() ToastModel {
	m.seq++
	m.visible = false
	m.text = ""
	return m
}

// Update consumes expiry ticks. Everything else passes through untouched.
func (m ToastModel) Update(msg tea.Msg) (ToastModel, tea.Cmd) {
	if expired, ok := msg.(toastExpiredMsg); ok {
		if expired.seq == m.seq && m.visible {
			m.visible = false
			m.text = ""
		}
	}
	return m, nil
}

// Visible reports whether a toast is currently displayed.
func (m ToastModel) Visible() bool { return m.visible }

// Text returns the displayed message, empty when hidden.
func (m ToastModel) Text() string { return m.text }

// Kind returns the current toast kind.
func (m ToastModel) Kind() ToastKind { return m.kind }

// View renders the toast banner, or the empty string when hidden.
func (m ToastModel) View() string {
	if !m.visible {
		return ""
	}

	var base lipgloss.Style
	var icon string
	switch m.kind {
	case ToastError:
		base = m.styles.Error
		icon = "✗"
	default:
		base = m.styles.Success
		icon = "✓"
	}

	banner := base.Render(icon+" "+m.text) + m.styles.Muted.Render("  (esc to dismiss)")
	return m.styles.Card.Render(banner)
}
