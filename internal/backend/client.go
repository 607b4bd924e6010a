// Package backend is the HTTP client for the sakaton REST API.
//
// The Client wraps a resty client configured with a base URL, an explicit
// request timeout, JSON headers and debug hooks routed through the logging
// package. Every authenticated call takes the session token explicitly and
// sends it as a bearer credential; the client holds no session state.
//
// RETRY POLICY:
// Only idempotent GET requests are retried, and only on connection errors.
// POST requests (authenticate, click, start-task, claim-task) are sent exactly
// once so a click batch is never submitted twice by the transport.
package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://sakaton.vercel.app/api"

// API paths relative to the base URL.
const (
	PathAuthenticate = "/authenticate"
	PathClick        = "/click"
	PathGetUser      = "/getUser"
	PathGetPoints    = "/getPoints"
	PathTasks        = "/tasks"
	PathStartTask    = "/start-task"
	PathClaimTask    = "/claim-task"
	PathGetRanking   = "/getRanking"
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	RetryCount int // GET retries on connection errors; 0 disables
}

// DefaultOptions returns production settings.
func DefaultOptions() Options {
	return Options{
		BaseURL:    DefaultBaseURL,
		Timeout:    10 * time.Second,
		UserAgent:  "sakaton",
		RetryCount: 3,
	}
}

// Client talks to the sakaton API.
type Client struct {
	client  *resty.Client
	baseURL string
}

// New creates a Client from opts. Zero fields fall back to DefaultOptions.
func New(opts Options) *Client {
	defaults := DefaultOptions()
	if opts.BaseURL == "" {
		opts.BaseURL = defaults.BaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaults.UserAgent
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")

	client := resty.New()

	// Route Resty's internal logging through our structured logging system
	client.SetLogger(RestyLogger{})

	client.
		SetTimeout(opts.Timeout).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", opts.UserAgent)

	if opts.RetryCount > 0 {
		client.
			SetRetryCount(opts.RetryCount).
			SetRetryWaitTime(500 * time.Millisecond).
			SetRetryMaxWaitTime(3 * time.Second).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				// Connection errors on GETs only; never replay a POST
				if err == nil || r == nil || r.Request == nil {
					return false
				}
				return r.Request.Method == http.MethodGet
			})
	}

	// Request tracing hooks are only installed when DEBUG output is on
	if logging.IsDebugEnabled() {
		client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
			logging.Debug("Making API request: %s %s", req.Method, req.URL)
			return nil
		})

		client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
			logging.Debug("API response: %d %s (took %v)",
				resp.StatusCode(), resp.Status(), resp.Time())
			return nil
		})

		client.OnError(func(req *resty.Request, err error) {
			logging.Debug("API request failed: %s %s - %v", req.Method, req.URL, err)
		})
	}

	return &Client{
		client:  client,
		baseURL: baseURL,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request builds a request bound to ctx, with the bearer token when non-empty.
func (c *Client) request(ctx context.Context, token string) *resty.Request {
	req := c.client.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// check converts transport failures and non-2xx responses into errors.
func (c *Client) check(method, path string, resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%s %s%s: %w", method, c.baseURL, path, err)
	}
	if !resp.IsSuccess() {
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       resp.String(),
		}
	}
	return nil
}

// Authenticate exchanges Telegram init data for a session token.
func (c *Client) Authenticate(ctx context.Context, initData string) (string, error) {
	var out AuthenticateResponse
	resp, err := c.request(ctx, "").
		SetBody(AuthenticateRequest{InitData: initData}).
		SetResult(&out).
		Post(PathAuthenticate)
	if err := c.check(http.MethodPost, PathAuthenticate, resp, err); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("%s: response carried no token", PathAuthenticate)
	}
	return out.Token, nil
}

// SubmitClicks sends one signed click batch. The response body is ignored.
func (c *Client) SubmitClicks(ctx context.Context, token string, req ClickRequest) error {
	resp, err := c.request(ctx, token).
		SetBody(req).
		Post(PathClick)
	return c.check(http.MethodPost, PathClick, resp, err)
}

// GetUser fetches the authenticated user's profile.
func (c *Client) GetUser(ctx context.Context, token string) (*User, error) {
	var out UserResponse
	resp, err := c.request(ctx, token).
		SetResult(&out).
		Get(PathGetUser)
	if err := c.check(http.MethodGet, PathGetUser, resp, err); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// GetPoints fetches the authoritative point total.
func (c *Client) GetPoints(ctx context.Context, token string) (int64, error) {
	var out PointsResponse
	resp, err := c.request(ctx, token).
		SetResult(&out).
		Get(PathGetPoints)
	if err := c.check(http.MethodGet, PathGetPoints, resp, err); err != nil {
		return 0, err
	}
	return out.Points, nil
}

// GetTasks lists the available tasks and their progress.
func (c *Client) GetTasks(ctx context.Context, token string) ([]Task, error) {
	var out TasksResponse
	resp, err := c.request(ctx, token).
		SetResult(&out).
		Get(PathTasks)
	if err := c.check(http.MethodGet, PathTasks, resp, err); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

// StartTask marks a task as started.
func (c *Client) StartTask(ctx context.Context, token, taskID string) error {
	resp, err := c.request(ctx, token).
		SetBody(TaskRequest{TaskID: taskID}).
		Post(PathStartTask)
	return c.check(http.MethodPost, PathStartTask, resp, err)
}

// ClaimTask claims the reward of a started task.
func (c *Client) ClaimTask(ctx context.Context, token, taskID string) error {
	resp, err := c.request(ctx, token).
		SetBody(TaskRequest{TaskID: taskID}).
		Post(PathClaimTask)
	return c.check(http.MethodPost, PathClaimTask, resp, err)
}

// GetRanking fetches the leaderboard and, when userID is set, that user's
// position. The endpoint is public.
func (c *Client) GetRanking(ctx context.Context, userID string) (*Ranking, error) {
	var out Ranking
	req := c.request(ctx, "").SetResult(&out)
	if userID != "" {
		req.SetQueryParam("user_id", userID)
	}
	resp, err := req.Get(PathGetRanking)
	if err := c.check(http.MethodGet, PathGetRanking, resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}
