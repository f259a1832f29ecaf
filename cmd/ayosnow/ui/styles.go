// Package ui provides the visual components of the AyosNow terminal
// client: theme and styles, the toast banner, the auth forms and the
// role dashboards.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ayosnow/internal/marketplace"
)

// AyosNow brand palette.
var (
	// Light mode
	LightBackground = lipgloss.Color("#f9fafb")
	LightForeground = lipgloss.Color("#111827")
	LightPrimary    = lipgloss.Color("#4f46e5") // indigo
	LightAccent     = lipgloss.Color("#fbbf24") // amber
	LightSecondary  = lipgloss.Color("#e5e7eb")
	LightMuted      = lipgloss.Color("#6b7280")
	LightBorder     = lipgloss.Color("#d1d5db")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark mode
	DarkBackground = lipgloss.Color("#111827")
	DarkForeground = lipgloss.Color("#f9fafb")
	DarkPrimary    = lipgloss.Color("#818cf8")
	DarkAccent     = lipgloss.Color("#fbbf24")
	DarkSecondary  = lipgloss.Color("#1f2937")
	DarkMuted      = lipgloss.Color("#9ca3af")
	DarkBorder     = lipgloss.Color("#374151")
	DarkCard       = lipgloss.Color("#1f2937")

	// Semantic colors, shared by both modes
	Destructive = lipgloss.Color("#ef4444")
	Success     = lipgloss.Color("#22c55e")
	Warning     = lipgloss.Color("#eab308")
	Info        = lipgloss.Color("#3b82f6")
)

// Theme holds the active color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// DetectTheme picks a theme from the terminal background heuristic or the
// AYOSNOW_DARK_MODE environment variable, defaulting to light.
func DetectTheme() Theme {
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// Format is "foreground;background"; low background indices are
		// dark terminals.
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("AYOSNOW_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds every styled component the client renders with.
type Styles struct {
	Theme Theme

	// Layout
	App     lipgloss.Style
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style
	Card    lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Forms
	Label        lipgloss.Style
	FieldFocused lipgloss.Style
	FieldBlurred lipgloss.Style
	Button       lipgloss.Style
	ButtonBusy   lipgloss.Style
	Link         lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Tabs
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Divider lipgloss.Style
	Badge   lipgloss.Style
	Avatar  lipgloss.Style

	// Status badges
	BadgeGreen  lipgloss.Style
	BadgeYellow lipgloss.Style
	BadgeIndigo lipgloss.Style
	BadgeGray   lipgloss.Style
	BadgeRed    lipgloss.Style
}

// NewStyles creates a Styles instance for the given theme.
func NewStyles(theme Theme) Styles {
	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#ffffff"))

	return Styles{
		Theme: theme,

		App: lipgloss.NewStyle().
			Background(theme.Background).
			Foreground(theme.Foreground),

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Card: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Bold(true),

		FieldFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		FieldBlurred: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 3).
			Bold(true),

		ButtonBusy: lipgloss.NewStyle().
			Background(theme.Muted).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 3),

		Link: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Underline(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		TabActive: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		TabInactive: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: badge.Background(theme.Accent).Foreground(theme.Foreground),

		Avatar: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		BadgeGreen:  badge.Background(Success),
		BadgeYellow: badge.Background(Warning),
		BadgeIndigo: badge.Background(theme.Primary),
		BadgeGray:   badge.Background(theme.Muted),
		BadgeRed:    badge.Background(Destructive),
	}
}

// DefaultStyles returns styles with the auto-detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// StatusBadge picks the badge style for a booking or job status, matching
// the original badge coloring: en-route indigo, accepted/confirmed/
// completed green, draft gray, everything else (pending) yellow.
func (s Styles) StatusBadge(status string) lipgloss.Style {
	switch status {
	case marketplace.BookingEnRoute:
		return s.BadgeIndigo
	case marketplace.BookingAccepted, marketplace.BookingConfirmed, marketplace.BookingCompleted:
		return s.BadgeGreen
	case marketplace.JobDraft:
		return s.BadgeGray
	default:
		return s.BadgeYellow
	}
}

// Logo returns the AyosNow wordmark.
func Logo(s Styles) string {
	logo := `
    _                   _  _
   / \  _   _  ___  ___| \| | _____      __
  / _ \| | | |/ _ \/ __|  .  |/ _ \ \ /\ / /
 / ___ \ |_| | (_) \__ \ |\  | (_) \ V  V /
/_/   \_\__, |\___/|___/_| \_|\___/ \_/\_/
        |___/
`
	return s.Title.Render(logo)
}

// RenderDivider returns a horizontal divider of the given width.
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", width))
}
