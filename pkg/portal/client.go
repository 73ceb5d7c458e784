// Package portal is the Go client of the management portal API: login,
// per-module record access with a session cache, and display-oriented
// record mapping driven by the view schemas.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gestor/pkg/domain"
)

// ErrConnection indicates the API could not be reached at all.
var ErrConnection = errors.New("cannot reach the portal API")

// APIError carries the server's verbatim detail message.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Client talks to the portal API on behalf of one session.
type Client struct {
	baseURL string
	http    *http.Client
	team    []string

	session Session
	cache   *cache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTeam overrides the team member options used in schemas.
func WithTeam(team []string) Option {
	return func(c *Client) { c.team = append([]string(nil), team...) }
}

// NewClient returns a logged-out client for the API at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		team:    domain.DefaultTeamMembers(),
		cache:   newCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.session.State = *newViewState()
	return c
}

// Session returns a copy of the current session state.
func (c *Client) Session() Session { return c.session }

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login authenticates and stores the bearer token. The displayed user
// name is derived from the email's local part.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login", body, &resp); err != nil {
		return err
	}
	c.session.LoggedIn = true
	c.session.Token = resp.AccessToken
	c.session.CurrentUser = displayName(email)
	c.cache.clear()
	return nil
}

// Logout drops the token and cached data.
func (c *Client) Logout() {
	c.session = Session{State: *newViewState()}
	c.cache.clear()
}

// displayName capitalizes the email local part, the label shown in the
// sidebar greeting.
func displayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return email
	}
	return strings.ToUpper(local[:1]) + strings.ToLower(local[1:])
}

// doJSON performs one API round trip. Non-2xx responses surface the
// server's detail string; transport failures collapse to ErrConnection.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return &APIError{Status: resp.StatusCode, Detail: envelope.Detail}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
