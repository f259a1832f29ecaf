package ui

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ayosnow/internal/forms"
	"ayosnow/internal/marketplace"
)

// BookingSubmitMsg asks the shell to submit a new service request.
type BookingSubmitMsg struct {
	Category      string
	Description   string
	PreferredTime string
}

// AcceptJobMsg asks the shell to accept the given job offer.
type AcceptJobMsg struct {
	JobID int64
}

// LogoutMsg asks the shell to end the session.
type LogoutMsg struct{}

// DashboardPage is the tabbed workspace shown after login. One component
// serves both roles; RoleConfig supplies the differences.
type DashboardPage struct {
	styles Styles
	cfg    RoleConfig
	user   marketplace.User

	activeTab int
	data      *marketplace.DashboardData
	loading   bool
	errText   string

	spinner spinner.Model

	// Booking form (customer action tab)
	categoryIdx int
	hasCategory bool
	description textarea.Model
	formErr     string
	submitting  bool

	// Job selection (worker action tab)
	jobIdx    int
	accepting bool
}

// NewDashboardPage creates the dashboard for a user in its loading state.
func NewDashboardPage(styles Styles, user marketplace.User) DashboardPage {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	desc := textarea.New()
	desc.Placeholder = "e.g. 'Leaky kitchen faucet needs replacement'..."
	desc.SetHeight(4)
	desc.CharLimit = 500

	return DashboardPage{
		styles:      styles,
		cfg:         ConfigFor(user.Role),
		user:        user,
		loading:     true,
		spinner:     sp,
		description: desc,
	}
}

// Init starts the loading spinner.
func (p DashboardPage) Init() tea.Cmd {
	return p.spinner.Tick
}

// ActiveTab returns the current tab.
func (p DashboardPage) ActiveTab() Tab {
	return p.cfg.Tabs[p.activeTab]
}

// SetTab jumps to the given tab if the role has it.
func (p DashboardPage) SetTab(tab Tab) DashboardPage {
	for i, t := range p.cfg.Tabs {
		if t == tab {
			p.activeTab = i
			break
		}
	}
	return p
}

// Loading reports whether the initial fetch is still pending.
func (p DashboardPage) Loading() bool { return p.loading }

// Data exposes the loaded aggregate, nil while loading or failed.
func (p DashboardPage) Data() *marketplace.DashboardData { return p.data }

// ApplyData installs a completed fetch result.
func (p DashboardPage) ApplyData(data *marketplace.DashboardData) DashboardPage {
	p.data = data
	p.loading = false
	p.errText = ""
	return p
}

// ApplyFetchError records a failed fetch; the error view replaces normal
// content until the next reseed.
func (p DashboardPage) ApplyFetchError(err error) DashboardPage {
	p.loading = false
	p.errText = fmt.Sprintf("Failed to load dashboard data: %v", err)
	return p
}

// SetSubmitting toggles the in-flight guard for the role's action.
func (p DashboardPage) SetSubmitting(busy bool) DashboardPage {
	p.submitting = busy
	p.accepting = busy
	return p
}

// SetActionError surfaces a failed booking/accept without touching data.
func (p DashboardPage) SetActionError(text string) DashboardPage {
	p.formErr = text
	return p
}

// BookingCreated merges a successful submission optimistically: the new
// booking is prepended, the Active stat recomputed, the form cleared, and
// the view returns home.
func (p DashboardPage) BookingCreated(b marketplace.Booking) DashboardPage {
	if p.data != nil {
		p.data.PrependBooking(b)
	}
	p.description.SetValue("")
	p.hasCategory = false
	p.formErr = ""
	return p.SetTab(TabHome)
}

// JobAccepted records an accepted job at the head of the pipeline and
// returns home.
func (p DashboardPage) JobAccepted(job marketplace.Job) DashboardPage {
	if p.data != nil {
		// Remove the pending copy before prepending the accepted one.
		kept := p.data.Jobs[:0]
		for _, j := range p.data.Jobs {
			if j.ID != job.ID {
				kept = append(kept, j)
			}
		}
		p.data.Jobs = kept
		p.data.PrependJob(job)
		if p.jobIdx >= len(p.data.Jobs) {
			p.jobIdx = 0
		}
	}
	p.formErr = ""
	return p.SetTab(TabHome)
}

// Update handles dashboard input and spinner ticks.
func (p DashboardPage) Update(msg tea.Msg) (DashboardPage, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !p.loading {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	return p.updateDescription(msg)
}

func (p DashboardPage) handleKey(msg tea.KeyMsg) (DashboardPage, tea.Cmd) {
	key := msg.String()

	// Tab switching is always available and purely local.
	switch key {
	case "ctrl+right":
		p.activeTab = (p.activeTab + 1) % len(p.cfg.Tabs)
		return p, nil
	case "ctrl+left":
		p.activeTab = (p.activeTab + len(p.cfg.Tabs) - 1) % len(p.cfg.Tabs)
		return p, nil
	case "ctrl+l":
		return p, func() tea.Msg { return LogoutMsg{} }
	}
	if idx := tabHotkey(key); idx >= 0 && idx < len(p.cfg.Tabs) {
		// Digit hotkeys only outside the description editor.
		if p.ActiveTab() != TabBooking || !p.description.Focused() {
			p.activeTab = idx
			return p, nil
		}
	}

	switch p.ActiveTab() {
	case TabBooking:
		return p.handleBookingKey(msg)
	case TabJobs:
		return p.handleJobsKey(key)
	}
	return p, nil
}

func tabHotkey(key string) int {
	switch key {
	case "1":
		return 0
	case "2":
		return 1
	case "3":
		return 2
	case "4":
		return 3
	case "5":
		return 4
	}
	return -1
}

func (p DashboardPage) handleBookingKey(msg tea.KeyMsg) (DashboardPage, tea.Cmd) {
	switch msg.String() {
	case "left", "right":
		if !p.description.Focused() {
			n := len(marketplace.ServiceCategories)
			delta := 1
			if msg.String() == "left" {
				delta = n - 1
			}
			if p.hasCategory {
				p.categoryIdx = (p.categoryIdx + delta) % n
			}
			p.hasCategory = true
			return p, nil
		}

	case "enter":
		if !p.description.Focused() {
			p.description.Focus()
			return p, nil
		}

	case "esc":
		if p.description.Focused() {
			p.description.Blur()
			return p, nil
		}

	case "ctrl+s":
		return p.submitBooking()
	}

	return p.updateDescription(msg)
}

func (p DashboardPage) submitBooking() (DashboardPage, tea.Cmd) {
	if p.submitting {
		return p, nil
	}

	form := forms.Booking{Description: p.description.Value()}
	if p.hasCategory {
		form.Category = marketplace.ServiceCategories[p.categoryIdx]
	}
	if err := forms.Check(form); err != nil {
		// Local rejection: no request is issued, the data stays as is.
		p.formErr = err.Error()
		return p, nil
	}

	p.formErr = ""
	return p, func() tea.Msg {
		return BookingSubmitMsg{
			Category:      form.Category,
			Description:   form.Description,
			PreferredTime: time.Now().UTC().Format(time.RFC3339),
		}
	}
}

func (p DashboardPage) handleJobsKey(key string) (DashboardPage, tea.Cmd) {
	if p.data == nil || len(p.data.Jobs) == 0 {
		return p, nil
	}

	switch key {
	case "up", "k":
		p.jobIdx = (p.jobIdx + len(p.data.Jobs) - 1) % len(p.data.Jobs)
	case "down", "j":
		p.jobIdx = (p.jobIdx + 1) % len(p.data.Jobs)
	case "enter":
		if p.accepting {
			return p, nil
		}
		job := p.data.Jobs[p.jobIdx]
		if job.Status == marketplace.JobAccepted {
			p.formErr = "job already accepted"
			return p, nil
		}
		p.formErr = ""
		return p, func() tea.Msg { return AcceptJobMsg{JobID: job.ID} }
	}
	return p, nil
}

func (p DashboardPage) updateDescription(msg tea.Msg) (DashboardPage, tea.Cmd) {
	var cmd tea.Cmd
	p.description, cmd = p.description.Update(msg)
	return p, cmd
}

// View renders the dashboard frame and the active tab's content.
func (p DashboardPage) View() string {
	s := p.styles

	var content string
	switch {
	case p.errText != "":
		content = s.Error.Render(p.errText)
	case p.loading:
		content = p.spinner.View() + " " + s.Muted.Render("Loading your personalized dashboard...")
	default:
		content = p.viewTab()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		p.viewTabBar(),
		s.Content.Render(content),
		s.Footer.Render("1-5 tabs · ctrl+l logout"),
	)
}

func (p DashboardPage) viewTabBar() string {
	s := p.styles
	parts := make([]string, 0, len(p.cfg.Tabs))
	for i, tab := range p.cfg.Tabs {
		label := fmt.Sprintf("%d %s", i+1, tab)
		if i == p.activeTab {
			parts = append(parts, s.TabActive.Render(label))
		} else {
			parts = append(parts, s.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (p DashboardPage) viewTab() string {
	switch p.ActiveTab() {
	case TabHome:
		return p.viewHome()
	case TabBooking:
		return p.viewBooking()
	case TabJobs:
		return p.viewJobs()
	case TabHistory, TabPerformance:
		return p.viewHistory()
	case TabProfile:
		return p.viewProfile()
	case TabSettings:
		return p.viewSettings()
	}
	return p.viewHome()
}

func (p DashboardPage) viewHome() string {
	s := p.styles
	d := p.data

	hero := s.Title.Render(fmt.Sprintf("Hello, %s! %s", d.Profile.Name, p.cfg.Headline))

	statsCard := p.viewStatsCard()
	items := p.viewActiveItems()
	history := p.viewRecentHistory()

	left := lipgloss.JoinVertical(lipgloss.Left,
		s.Bold.Render(fmt.Sprintf("%s (%d)", p.cfg.ItemsTitle, d.ActiveCount())),
		items,
	)
	right := lipgloss.JoinVertical(lipgloss.Left, statsCard, history)

	return lipgloss.JoinVertical(lipgloss.Left,
		hero,
		lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right),
	)
}

func (p DashboardPage) viewStatsCard() string {
	s := p.styles
	d := p.data

	lines := []string{
		s.Avatar.Render(p.user.Initial()) + " " + s.Bold.Render(d.Profile.Name),
	}
	if d.Profile.MemberStatus != "" {
		lines = append(lines, s.Muted.Render("Status: ")+s.Badge.Render(d.Profile.MemberStatus))
	}
	if d.Profile.Availability != "" {
		badge := s.BadgeGreen
		if d.Profile.Availability != "Available" {
			badge = s.BadgeRed
		}
		lines = append(lines, s.Muted.Render("Status: ")+badge.Render(d.Profile.Availability))
	}
	for _, stat := range d.Stats {
		lines = append(lines, fmt.Sprintf("%s %s",
			s.Bold.Render(trimFloat(stat.Value)), s.Muted.Render(stat.Label)))
	}

	return s.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (p DashboardPage) viewActiveItems() string {
	s := p.styles
	d := p.data

	if d.ActiveCount() == 0 {
		return s.Card.Render(s.Muted.Render(p.cfg.EmptyItems))
	}

	var cards []string
	for _, b := range d.Bookings {
		body := lipgloss.JoinVertical(lipgloss.Left,
			s.Bold.Render(b.Service)+" "+s.StatusBadge(b.Status).Render(b.Status),
			s.Muted.Render("Provider: ")+s.Body.Render(b.Provider),
			s.Muted.Render(b.Time),
		)
		cards = append(cards, s.Card.Render(body))
	}
	for i, j := range d.Jobs {
		title := j.Title
		if p.ActiveTab() == TabJobs && i == p.jobIdx {
			title = "▸ " + title
		}
		body := lipgloss.JoinVertical(lipgloss.Left,
			s.Bold.Render(title)+" "+s.StatusBadge(j.Status).Render(j.Status),
			s.Muted.Render(fmt.Sprintf("Client: %s | Due: %s", j.Client, j.Due)),
		)
		cards = append(cards, s.Card.Render(body))
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (p DashboardPage) viewRecentHistory() string {
	s := p.styles
	d := p.data

	lines := []string{s.Bold.Render("Recent History")}
	for _, h := range d.History {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			s.Body.Render(h.Title),
			s.Muted.Render(h.Date),
			s.Warning.Render(fmt.Sprintf("%.0f★", h.Rating)),
		))
	}
	return s.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (p DashboardPage) viewBooking() string {
	s := p.styles

	var cats []string
	for i, cat := range marketplace.ServiceCategories {
		label := "○ " + cat
		if p.hasCategory && i == p.categoryIdx {
			label = s.Bold.Render("● " + cat)
		}
		cats = append(cats, s.TabInactive.Render(label))
	}

	descView := s.FieldBlurred.Render(p.description.View())
	if p.description.Focused() {
		descView = s.FieldFocused.Render(p.description.View())
	}

	submit := s.Button.Render("Submit Request (ctrl+s)")
	if p.submitting {
		submit = s.ButtonBusy.Render("Submitting…")
	}

	sections := []string{
		s.Title.Render("Schedule a New Service"),
		s.Label.Render("Step 1: Select Service Category") + s.Muted.Render("  (←/→)"),
		lipgloss.JoinHorizontal(lipgloss.Top, cats...),
		s.Label.Render("Step 2: Describe the Task") + s.Muted.Render("  (enter to edit, esc to leave)"),
		descView,
		"",
		submit,
	}
	if p.formErr != "" {
		sections = append(sections, s.Error.Render(p.formErr))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (p DashboardPage) viewJobs() string {
	s := p.styles
	d := p.data

	sections := []string{
		s.Title.Render("Job Requests"),
		s.Muted.Render("↑/↓ select · enter accept"),
	}
	if d == nil || len(d.Jobs) == 0 {
		sections = append(sections, s.Card.Render(s.Muted.Render(p.cfg.EmptyItems)))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	for i, j := range d.Jobs {
		cursor := "  "
		if i == p.jobIdx {
			cursor = "▸ "
		}
		line := cursor + s.Bold.Render(j.Title) + " " + s.StatusBadge(j.Status).Render(j.Status)
		detail := "  " + s.Muted.Render(fmt.Sprintf("Client: %s | Due: %s", j.Client, j.Due))
		sections = append(sections, line, detail)
	}

	if p.accepting {
		sections = append(sections, s.ButtonBusy.Render("Accepting…"))
	}
	if p.formErr != "" {
		sections = append(sections, s.Error.Render(p.formErr))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewHistory merges active items and completed history, newest first,
// the way the original full-history tab did.
func (p DashboardPage) viewHistory() string {
	s := p.styles
	d := p.data

	type entry struct {
		title  string
		date   string
		status string
		when   time.Time
	}

	var entries []entry
	for _, b := range d.Bookings {
		entries = append(entries, entry{b.Service, b.Time, b.Status, parseWhen(b.Time)})
	}
	for _, j := range d.Jobs {
		entries = append(entries, entry{j.Title, j.Due, j.Status, parseWhen(j.Due)})
	}
	for _, h := range d.History {
		entries = append(entries, entry{h.Title, h.Date, h.Status, parseWhen(h.Date)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].when.After(entries[j].when)
	})

	table := Table{Headers: []string{"Service", "Date", "Status"}}
	for _, e := range entries {
		table.AddRow(e.title, e.date, e.status)
	}

	title := "Booking History"
	if p.cfg.Role == marketplace.RoleWorker {
		title = "Performance & History"
	}

	sections := []string{s.Title.Render(title)}
	if p.cfg.Role == marketplace.RoleWorker {
		sections = append(sections, p.viewStatsCard())
	}
	if body := table.View(s); body != "" {
		sections = append(sections, body)
	} else {
		sections = append(sections, s.Muted.Render("Nothing here yet."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (p DashboardPage) viewProfile() string {
	s := p.styles
	d := p.data

	detail := func(label, value string) string {
		return s.Label.Render(label) + "\n" + s.Body.Render(value)
	}

	sections := []string{
		s.Title.Render("My Profile"),
		detail("Full Name", d.Profile.Name),
		detail("Email", d.Profile.Email),
		detail("Primary Address", d.Profile.Location),
	}
	if d.Profile.Skill != "" {
		sections = append(sections, detail("Profession", d.Profile.Skill))
	}
	if d.Profile.MemberStatus != "" {
		sections = append(sections,
			s.Card.Render(s.Bold.Render("Your "+d.Profile.MemberStatus+" Status")+"\n"+
				s.Muted.Render("Enjoy priority scheduling and discounted service fees.")))
	}
	if len(d.Profile.Skills) > 0 {
		var tags []string
		for _, skill := range d.Profile.Skills {
			tags = append(tags, s.Badge.Render(skill))
		}
		sections = append(sections,
			s.Label.Render("My Service Tags"),
			lipgloss.JoinHorizontal(lipgloss.Top, tags...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (p DashboardPage) viewSettings() string {
	s := p.styles
	check := s.Success.Render("[x]")

	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Account Settings"),
		s.Bold.Render("Notification Preferences"),
		check+" "+s.Body.Render("Email notifications for job updates"),
		check+" "+s.Body.Render("SMS alerts for worker arrival"),
		"",
		s.Bold.Render("Security & Access"),
		s.Muted.Render("Change password and payment methods from the web app."),
	)
}

func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

// parseWhen makes a best-effort timestamp out of the mixed date formats
// the lists carry; unparseable dates sort last.
func parseWhen(raw string) time.Time {
	for _, layout := range []string{
		time.RFC3339,
		"Jan 2, 2006 3:04 PM",
		"Jan 2, 2006",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
