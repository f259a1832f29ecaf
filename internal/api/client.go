// Package api encapsulates HTTP interaction with the AyosNow backend.
// The backend owns authentication, persistence and matching; this client
// only speaks the handful of endpoints the terminal UI needs.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"ayosnow/internal/marketplace"
)

// Client issues requests against the backend API. A zero-value Client is
// not usable; construct one with NewClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
	authToken  string
}

// NewClient creates a backend client for the given base address. The
// timeout bounds every request end to end; no retries are performed.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetAuthToken attaches a bearer token to all subsequent requests.
// Passing the empty string clears it.
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

// AuthResponse is the body both auth endpoints return: the identity, plus
// an optional session token when the backend issues one.
type AuthResponse struct {
	marketplace.User
	Token string `json:"token,omitempty"`
}

// RegisterRequest is the payload for /api/auth/register. Skill is a
// pointer so it serializes as null for customers, matching the backend's
// expectations.
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Skill    *string `json:"skill"`
}

// BookingRequest is the payload for /api/user/bookings/request.
type BookingRequest struct {
	ServiceCategory string `json:"serviceCategory"`
	TaskDescription string `json:"taskDescription"`
	PreferredTime   string `json:"preferredTime"`
}

// BookingResponse is the created booking as the backend reports it.
type BookingResponse struct {
	ID              int64  `json:"id"`
	ServiceCategory string `json:"serviceCategory"`
	PreferredTime   string `json:"preferredTime"`
	Location        string `json:"location,omitempty"`
}

// Login authenticates with email and password and returns the identity.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	payload := map[string]string{"email": email, "password": password}

	var out AuthResponse
	if err := c.post(ctx, "/api/auth/login", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account and returns the created identity.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.post(ctx, "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestBooking submits a new service request for the logged-in customer.
func (c *Client) RequestBooking(ctx context.Context, req BookingRequest) (*BookingResponse, error) {
	var out BookingResponse
	if err := c.post(ctx, "/api/user/bookings/request", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptJob accepts the job offer with the given id on behalf of the
// logged-in worker and returns the accepted job representation.
func (c *Client) AcceptJob(ctx context.Context, jobID int64) (*marketplace.Job, error) {
	var out marketplace.Job
	path := fmt.Sprintf("/api/worker/jobs/%d/accept", jobID)
	if err := c.post(ctx, path, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// post sends a JSON body and decodes a JSON response into out. Non-2xx
// responses are converted into *Error values carrying the backend's
// message.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	if c == nil || c.baseURL == "" {
		return fmt.Errorf("api client not configured")
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
