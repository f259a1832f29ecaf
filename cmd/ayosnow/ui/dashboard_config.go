package ui

import "ayosnow/internal/marketplace"

// Tab identifies one dashboard workspace.
type Tab string

const (
	TabHome        Tab = "HOME"
	TabBooking     Tab = "BOOKING"
	TabJobs        Tab = "JOBS"
	TabHistory     Tab = "HISTORY"
	TabPerformance Tab = "PERFORMANCE"
	TabProfile     Tab = "PROFILE"
	TabSettings    Tab = "SETTINGS"
)

// RoleConfig parameterizes the dashboard for one role: which tabs exist,
// what the active items are called, and the headline copy. The customer
// and worker dashboards are the same component under two of these.
type RoleConfig struct {
	Role marketplace.Role
	Tabs []Tab

	// ActionTab hosts the role's primary action (book a service / accept
	// jobs).
	ActionTab Tab

	Headline    string
	Subtitle    string
	ItemsTitle  string
	EmptyItems  string
	ActionLabel string
}

// CustomerConfig describes the customer dashboard.
func CustomerConfig() RoleConfig {
	return RoleConfig{
		Role:        marketplace.RoleCustomer,
		Tabs:        []Tab{TabHome, TabBooking, TabHistory, TabProfile, TabSettings},
		ActionTab:   TabBooking,
		Headline:    "Let's get things fixed.",
		Subtitle:    "Book trusted pros for your home.",
		ItemsTitle:  "Current & Upcoming Bookings",
		EmptyItems:  "No active or upcoming bookings found.\nReady to schedule your next service?",
		ActionLabel: "Schedule a New Service",
	}
}

// WorkerConfig describes the worker dashboard.
func WorkerConfig() RoleConfig {
	return RoleConfig{
		Role:        marketplace.RoleWorker,
		Tabs:        []Tab{TabHome, TabJobs, TabPerformance, TabProfile, TabSettings},
		ActionTab:   TabJobs,
		Headline:    "Professional Dashboard",
		Subtitle:    "Manage your profile, performance, and job pipeline.",
		ItemsTitle:  "Upcoming Job Pipeline",
		EmptyItems:  "No jobs in your pipeline.\nNew requests will appear here.",
		ActionLabel: "Review Job Requests",
	}
}

// ConfigFor returns the dashboard configuration for a role.
func ConfigFor(role marketplace.Role) RoleConfig {
	if role == marketplace.RoleWorker {
		return WorkerConfig()
	}
	return CustomerConfig()
}
