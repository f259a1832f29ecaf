package marketplace

import "time"

// Booking statuses as the customer dashboard displays them.
const (
	BookingPending   = "Pending"
	BookingAccepted  = "Accepted"
	BookingConfirmed = "Confirmed"
	BookingEnRoute   = "En Route"
	BookingCompleted = "Completed"
)

// Job statuses as the worker dashboard displays them.
const (
	JobPending   = "Pending"
	JobConfirmed = "Confirmed"
	JobDraft     = "Draft"
	JobAccepted  = "Accepted"
)

// ServiceCategories a customer can request a booking for.
var ServiceCategories = []string{
	"Plumbing",
	"Electrical",
	"Cleaning",
	"Landscaping",
	"Appliance Repair",
	"Painting",
}

// WorkerProfessions selectable during worker registration.
var WorkerProfessions = []string{
	"Electrician",
	"Plumber",
	"Carpenter",
}

// Booking is an active or upcoming service booking from the customer's
// point of view.
type Booking struct {
	ID       int64  `json:"id"`
	Service  string `json:"service"`
	Provider string `json:"provider"`
	Status   string `json:"status"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

// Job is an entry in a worker's pipeline.
type Job struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Client string `json:"client"`
	Due    string `json:"due"`
	Status string `json:"status"`
}

// HistoryEntry is a completed item shown in the recent-history lists.
type HistoryEntry struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Date   string  `json:"date"`
	Rating float64 `json:"rating"`
	Status string  `json:"status"`
}

// Stat is one labelled counter on a dashboard stats card. Order matters:
// dashboards render stats in the sequence the provider returns them.
type Stat struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Profile carries the identity-derived fields a dashboard displays.
// MemberStatus is customer-only; Availability and Skills are worker-only.
type Profile struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Location     string   `json:"location"`
	Skill        string   `json:"skill,omitempty"`
	MemberStatus string   `json:"memberStatus,omitempty"`
	Availability string   `json:"availability,omitempty"`
	Skills       []string `json:"skills,omitempty"`
}

// DashboardData aggregates everything a role dashboard renders. Bookings
// is populated for customers, Jobs for workers; both share Stats and
// History. The "Active" stat always mirrors the current active-item count.
type DashboardData struct {
	Profile  Profile        `json:"profile"`
	Stats    []Stat         `json:"stats"`
	Bookings []Booking      `json:"bookings,omitempty"`
	Jobs     []Job          `json:"jobs,omitempty"`
	History  []HistoryEntry `json:"history"`
}

// ActiveCount returns the number of active items for either role. Only one
// of the two lists is ever populated for a given dashboard.
func (d DashboardData) ActiveCount() int {
	return len(d.Bookings) + len(d.Jobs)
}

// SetStat updates the named stat in place, if present.
func (d *DashboardData) SetStat(label string, value float64) {
	for i := range d.Stats {
		if d.Stats[i].Label == label {
			d.Stats[i].Value = value
			return
		}
	}
}

// PrependBooking inserts b at the head of the booking list and refreshes
// the "Active" stat. Optimistic updates after a successful submission go
// through here.
func (d *DashboardData) PrependBooking(b Booking) {
	d.Bookings = append([]Booking{b}, d.Bookings...)
	d.SetStat(StatActive, float64(len(d.Bookings)))
}

// PrependJob inserts j at the head of the job list and refreshes the
// "Active Requests" stat.
func (d *DashboardData) PrependJob(j Job) {
	d.Jobs = append([]Job{j}, d.Jobs...)
	d.SetStat(StatActiveRequests, float64(len(d.Jobs)))
}

// Stat labels the dashboards rely on when recomputing counters.
const (
	StatActive         = "Active"
	StatTotalJobs      = "Total Jobs"
	StatRatingAvg      = "Rating Avg."
	StatJobsCompleted  = "Jobs Completed"
	StatFiveStarRating = "5-Star Rating"
	StatActiveRequests = "Active Requests"
)

// ParseBookingTime renders an RFC3339 preferred time the way the booking
// cards display it. Unparseable input is returned unchanged so a backend
// quirk never hides a booking.
func ParseBookingTime(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Local().Format("Jan 2, 2006 3:04 PM")
}
