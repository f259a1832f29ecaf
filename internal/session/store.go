// Package session owns the authenticated identity and the coarse view
// selection for the client. It is the single writer of both: auth flows
// log identities in, dashboards log them out, and everything else only
// reads snapshots.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ayosnow/internal/marketplace"
)

// View is the coarse-grained screen selector at the application root.
type View int

const (
	ViewLogin View = iota
	ViewRegister
	ViewCustomerDashboard
	ViewWorkerDashboard
)

// String returns the display name for each view.
func (v View) String() string {
	switch v {
	case ViewLogin:
		return "LOGIN"
	case ViewRegister:
		return "REGISTER"
	case ViewCustomerDashboard:
		return "USER_DASHBOARD"
	case ViewWorkerDashboard:
		return "WORKER_DASHBOARD"
	default:
		return "UNKNOWN"
	}
}

// Dashboard reports whether v is one of the authenticated dashboard views.
func (v View) Dashboard() bool {
	return v == ViewCustomerDashboard || v == ViewWorkerDashboard
}

// Snapshot is an immutable copy of the session handed to observers and
// renderers. User is nil until a login or registration succeeds.
type Snapshot struct {
	View View
	User *marketplace.User
}

// Store holds the identity and view state. All mutations notify the
// registered observers with a fresh snapshot.
//
// Invariant: a dashboard view is only ever paired with a non-nil identity
// whose role matches it.
type Store struct {
	mu          sync.Mutex
	view        View
	user        *marketplace.User
	token       string
	tokenExpiry time.Time
	observers   []func(Snapshot)
}

// NewStore creates a logged-out store at the login view.
func NewStore() *Store {
	return &Store{view: ViewLogin}
}

// OnChange registers an observer invoked after every mutation. Observers
// run synchronously under the store's own goroutine discipline, so they
// must not call back into the store.
func (s *Store) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Login installs the identity and routes to the role-appropriate
// dashboard. An optional backend token is retained for expiry display;
// parsing failures are ignored (the token is opaque bookkeeping, not a
// security control here).
func (s *Store) Login(user marketplace.User, token string) error {
	if !user.Role.Valid() {
		return fmt.Errorf("login rejected: unknown role %q", user.Role)
	}

	s.mu.Lock()
	u := user
	s.user = &u
	s.token = token
	s.tokenExpiry = tokenExpiry(token)
	if user.Role == marketplace.RoleWorker {
		s.view = ViewWorkerDashboard
	} else {
		s.view = ViewCustomerDashboard
	}
	snap := s.snapshotLocked()
	obs := s.observersLocked()
	s.mu.Unlock()

	notify(obs, snap)
	return nil
}

// Logout clears the identity and returns to the login view.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.tokenExpiry = time.Time{}
	s.view = ViewLogin
	snap := s.snapshotLocked()
	obs := s.observersLocked()
	s.mu.Unlock()

	notify(obs, snap)
}

// GoToRegister switches LOGIN -> REGISTER. No-op while an identity is
// present or when not on the login view.
func (s *Store) GoToRegister() {
	s.toggleAuthView(ViewLogin, ViewRegister)
}

// GoToLogin switches REGISTER -> LOGIN. No-op while an identity is present.
func (s *Store) GoToLogin() {
	s.toggleAuthView(ViewRegister, ViewLogin)
}

func (s *Store) toggleAuthView(from, to View) {
	s.mu.Lock()
	if s.user != nil || s.view != from {
		s.mu.Unlock()
		return
	}
	s.view = to
	snap := s.snapshotLocked()
	obs := s.observersLocked()
	s.mu.Unlock()

	notify(obs, snap)
}

// Snapshot returns the current view and a copy of the identity.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Token returns the retained backend token, empty when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// TokenExpiry reports when the retained token expires, if it carried an
// expiry claim.
func (s *Store) TokenExpiry() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenExpiry, !s.tokenExpiry.IsZero()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{View: s.view}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

func (s *Store) observersLocked() []func(Snapshot) {
	obs := make([]func(Snapshot), len(s.observers))
	copy(obs, s.observers)
	return obs
}

func notify(obs []func(Snapshot), snap Snapshot) {
	for _, fn := range obs {
		fn(snap)
	}
}

// tokenExpiry extracts the exp claim without verifying the signature.
// Verification belongs to the backend; the client only displays expiry.
func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
