package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/weiawesome/neurolab/pkg/log"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// Client talks to the neuro-api backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	userID     string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its transport is used as is
// and the client itself is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithUserID sends X-User-ID on profile requests.
func WithUserID(id string) Option {
	return func(c *Client) { c.userID = id }
}

// NewClient creates a client for the backend at baseURL. Requests are
// logged through pkg/log.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: log.NewTransport(nil, log.L()),
			Timeout:   30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.timeout != c.httpClient.Timeout {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// SendMessage posts one chat message and validates the reply.
func (c *Client) SendMessage(ctx context.Context, message string) (ChatReply, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/chat", map[string]string{"message": message})
	if err != nil {
		return ChatReply{}, err
	}
	return ParseChatReply(body)
}

// Analytics fetches the analytics snapshot.
func (c *Client) Analytics(ctx context.Context) (*AnalyticsSnapshot, error) {
	var out AnalyticsSnapshot
	if err := c.getJSON(ctx, "/api/analytics", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChatHistory lists stored conversations, newest first.
func (c *Client) ChatHistory(ctx context.Context) ([]ChatHistorySummary, error) {
	var out []ChatHistorySummary
	if err := c.getJSON(ctx, "/api/chat/history", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChatDetail fetches one stored conversation.
func (c *Client) ChatDetail(ctx context.Context, id string) (*ChatDetail, error) {
	var out ChatDetail
	if err := c.getJSON(ctx, "/api/chat/history/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile fetches the current user's profile.
func (c *Client) Profile(ctx context.Context) (*UserProfile, error) {
	var out UserProfile
	if err := c.getJSON(ctx, "/api/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile changes the provided profile fields.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*ProfileUpdateResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/profile/update", update)
	if err != nil {
		return nil, err
	}
	var out ProfileUpdateResult
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*SignupResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/signup", req)
	if err != nil {
		return nil, err
	}
	var out SignupResult
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Home fetches the home dashboard.
func (c *Client) Home(ctx context.Context) (*HomeData, error) {
	var out HomeData
	if err := c.getJSON(ctx, "/api/home", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LiveBrainData fetches the live brain series.
func (c *Client) LiveBrainData(ctx context.Context) ([]BrainData, error) {
	var out []BrainData
	if err := c.getJSON(ctx, "/api/brain/live", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Tests lists recorded test sessions matching query.
func (c *Client) Tests(ctx context.Context, query string) ([]TestResult, error) {
	path := "/api/tests"
	if query != "" {
		path += "?" + url.Values{"q": {query}}.Encode()
	}
	var out []TestResult
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Test fetches one recorded test session.
func (c *Client) Test(ctx context.Context, id string) (*TestResult, error) {
	var out TestResult
	if err := c.getJSON(ctx, "/api/tests/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// do sends one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, in interface{}) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp.StatusCode, body)
	}
	return body, nil
}

func decode(body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
