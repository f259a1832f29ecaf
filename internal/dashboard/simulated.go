package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ayosnow/internal/marketplace"
)

// Simulated is the stand-in Provider used while the backend grows real
// read endpoints. Data is derived deterministically from the identity, so
// the same user always sees the same dashboard, after a fixed artificial
// delay that exercises the loading path.
type Simulated struct {
	delay time.Duration
}

// NewSimulated creates a simulated provider with the given fetch delay.
func NewSimulated(delay time.Duration) *Simulated {
	return &Simulated{delay: delay}
}

// FetchDashboard waits out the artificial delay, then builds the role's
// aggregate. Returns ctx.Err() if cancelled before the delay elapses.
func (s *Simulated) FetchDashboard(ctx context.Context, user marketplace.User) (*marketplace.DashboardData, error) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	switch user.Role {
	case marketplace.RoleWorker:
		return workerData(user), nil
	case marketplace.RoleCustomer:
		return customerData(user), nil
	default:
		return nil, fmt.Errorf("unknown role %q", user.Role)
	}
}

// customerData mirrors the shape a customer sees: empty active bookings,
// a couple of completed services, and membership stats.
func customerData(user marketplace.User) *marketplace.DashboardData {
	data := &marketplace.DashboardData{
		Profile: marketplace.Profile{
			Name:         displayName(user, "Customer Account"),
			Email:        derivedEmail(user),
			Location:     "123 Main Street, City",
			MemberStatus: "Gold",
		},
		Stats: []marketplace.Stat{
			{Label: marketplace.StatActive, Value: 0},
			{Label: marketplace.StatTotalJobs, Value: 8},
			{Label: marketplace.StatRatingAvg, Value: 4.7},
		},
		Bookings: []marketplace.Booking{},
		History: []marketplace.HistoryEntry{
			{ID: 101, Title: "Deep Cleaning", Date: "Oct 25, 2024", Rating: 5, Status: marketplace.BookingCompleted},
			{ID: 102, Title: "Wall Painting", Date: "Sep 01, 2024", Rating: 4, Status: marketplace.BookingCompleted},
		},
	}
	data.SetStat(marketplace.StatActive, float64(len(data.Bookings)))
	return data
}

// workerData mirrors the worker pipeline view: profile with availability,
// service tags, performance stats and three queued jobs.
func workerData(user marketplace.User) *marketplace.DashboardData {
	skill := user.Skill
	if skill == "" {
		skill = "General Repairs"
	}

	data := &marketplace.DashboardData{
		Profile: marketplace.Profile{
			Name:         displayName(user, "AyosNow Pro"),
			Email:        derivedEmail(user),
			Location:     "Metro Area, CA",
			Skill:        skill,
			Availability: "Available",
			Skills: []string{
				"Emergency " + skill,
				"Pipe Fitting",
				"Tile Installation",
				"Water Heater Repair",
				"Drainage Systems",
			},
		},
		Stats: []marketplace.Stat{
			{Label: marketplace.StatJobsCompleted, Value: 312},
			{Label: marketplace.StatFiveStarRating, Value: 4.9},
			{Label: marketplace.StatActiveRequests, Value: 3},
		},
		Jobs: []marketplace.Job{
			{ID: 1, Title: "Install New Shower Unit", Client: "R. Evans", Due: "Fri, Sep 20th", Status: marketplace.JobPending},
			{ID: 2, Title: "Fix Burst Pipe Emergency", Client: "L. Smith", Due: "Today, 3:00 PM", Status: marketplace.JobConfirmed},
			{ID: 3, Title: "Tiling Quote for Kitchen", Client: "A. Chen", Due: "Next Week", Status: marketplace.JobDraft},
		},
		History: []marketplace.HistoryEntry{
			{ID: 201, Title: "Water Heater Replacement", Date: "Oct 12, 2024", Rating: 5, Status: marketplace.BookingCompleted},
			{ID: 202, Title: "Bathroom Re-Tiling", Date: "Aug 19, 2024", Rating: 5, Status: marketplace.BookingCompleted},
		},
	}
	data.SetStat(marketplace.StatActiveRequests, float64(len(data.Jobs)))
	return data
}

func displayName(user marketplace.User, fallback string) string {
	if strings.TrimSpace(user.Name) == "" {
		return fallback
	}
	return user.Name
}

// derivedEmail prefers the identity's real address and otherwise derives
// one from the name, dots for spaces.
func derivedEmail(user marketplace.User) string {
	if user.Email != "" {
		return user.Email
	}
	if strings.TrimSpace(user.Name) == "" {
		return "default@ayosnow.com"
	}
	return strings.ToLower(strings.ReplaceAll(user.Name, " ", ".")) + "@ayosnow.com"
}
