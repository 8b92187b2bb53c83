package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/teamtask/teamtask/internal/logging"
	"github.com/teamtask/teamtask/internal/model"
)

// Action is the operation field of the request envelope.
type Action string

const (
	ActionRead   Action = "READ"
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
)

// Sheet names the two record collections the endpoint serves.
type Sheet string

const (
	SheetUsers Sheet = "Users"
	SheetTasks Sheet = "Tasks"
)

// contentType avoids a CORS preflight on the Apps Script side. The endpoint
// only ever sees this MIME type, so the Go client keeps it for wire
// compatibility.
const contentType = "text/plain;charset=utf-8"

// ErrNotConfigured indicates no endpoint URL has been configured yet.
// All remote calls fail with it until setup completes.
var ErrNotConfigured = errors.New("remote endpoint not configured")

// RemoteError is returned when the endpoint reports a failure or answers
// with a body the client cannot parse.
type RemoteError struct {
	// Message is the human-readable message from the endpoint, or a
	// description of the parse failure.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote store: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("remote store: %s", e.Message)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// envelope is the request body for every operation.
type envelope struct {
	Action  Action         `json:"action"`
	Sheet   Sheet          `json:"sheet"`
	Item    any            `json:"item,omitempty"`
	ID      string         `json:"id,omitempty"`
	Updates map[string]any `json:"updates,omitempty"`
}

// response is the status wrapper every operation answers with.
type response struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Client performs typed operations against the remote endpoint. All calls
// pass through a circuit breaker so a dead endpoint fails fast instead of
// stacking up timed-out requests while the poller keeps ticking.
type Client struct {
	endpoint string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
	log      *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for breaker state changes and request
// failures. Defaults to a no-op logger.
func WithLogger(log *logging.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client for the given endpoint URL. An empty endpoint yields
// a client whose every call fails with ErrNotConfigured.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "remote-store",
		MaxRequests: 1,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn("circuit breaker state change",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

// Endpoint returns the configured endpoint URL.
func (c *Client) Endpoint() string { return c.endpoint }

// do sends one envelope and decodes the status wrapper. A status of "error"
// is folded into a *RemoteError here so typed operations only ever see
// success payloads.
func (c *Client) do(ctx context.Context, env envelope) (*response, error) {
	resp, err := c.exchange(ctx, env)
	if err != nil {
		return nil, err
	}
	if resp.Status != "success" {
		msg := resp.Message
		if msg == "" {
			msg = "unknown endpoint error"
		}
		return nil, &RemoteError{Message: msg}
	}
	return resp, nil
}

// exchange performs the raw round trip without interpreting the status
// field. Probe uses it directly: a reachable endpoint answering either
// success or error proves the script is deployed and running.
func (c *Client) exchange(ctx context.Context, env envelope) (*response, error) {
	if c.endpoint == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	result, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", contentType)

		httpResp, err := c.http.Do(req)
		if err != nil {
			return nil, &RemoteError{Message: "request failed", Err: err}
		}
		defer httpResp.Body.Close()

		raw, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return nil, &RemoteError{Message: "failed to read response body", Err: err}
		}

		var resp response
		if err := json.Unmarshal(raw, &resp); err != nil {
			// HTML error pages (sign-in walls, 404s) land here.
			return nil, &RemoteError{Message: "endpoint returned a non-JSON body", Err: err}
		}
		if resp.Status == "" {
			return nil, &RemoteError{Message: "endpoint response has no status field"}
		}
		return &resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &RemoteError{Message: "endpoint unavailable", Err: err}
		}
		c.log.Debug("remote call failed", "action", string(env.Action), "sheet", string(env.Sheet), "error", err)
		return nil, err
	}
	return result.(*response), nil
}

// Probe checks that the endpoint is reachable and speaks the expected
// protocol. It issues a READ on the Users collection and accepts either a
// success or an error status: an error status (for example a sheet that
// does not exist yet) still proves the script answered.
func (c *Client) Probe(ctx context.Context) error {
	_, err := c.exchange(ctx, envelope{Action: ActionRead, Sheet: SheetUsers})
	return err
}

// Users fetches the full Users collection.
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	resp, err := c.do(ctx, envelope{Action: ActionRead, Sheet: SheetUsers})
	if err != nil {
		return nil, err
	}
	var users []model.User
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &users); err != nil {
			return nil, &RemoteError{Message: "failed to decode Users data", Err: err}
		}
	}
	return users, nil
}

// CreateUser appends a user record to the Users collection.
func (c *Client) CreateUser(ctx context.Context, user model.User) error {
	_, err := c.do(ctx, envelope{Action: ActionCreate, Sheet: SheetUsers, Item: user})
	return err
}

// UpdateUserStatus overwrites the status field of the user with the given ID.
func (c *Client) UpdateUserStatus(ctx context.Context, userID string, status model.UserStatus) error {
	_, err := c.do(ctx, envelope{
		Action:  ActionUpdate,
		Sheet:   SheetUsers,
		ID:      userID,
		Updates: map[string]any{"status": status},
	})
	return err
}

// Tasks fetches the full Tasks collection. There is no pagination or
// server-side filtering; the collection is always read wholesale.
func (c *Client) Tasks(ctx context.Context) ([]model.Task, error) {
	resp, err := c.do(ctx, envelope{Action: ActionRead, Sheet: SheetTasks})
	if err != nil {
		return nil, err
	}
	var tasks []model.Task
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &tasks); err != nil {
			return nil, &RemoteError{Message: "failed to decode Tasks data", Err: err}
		}
	}
	return tasks, nil
}

// CreateTask appends a task record to the Tasks collection.
func (c *Client) CreateTask(ctx context.Context, task model.Task) error {
	_, err := c.do(ctx, envelope{Action: ActionCreate, Sheet: SheetTasks, Item: task})
	return err
}

// UpdateTaskStatus overwrites the status field of the task with the given ID.
func (c *Client) UpdateTaskStatus(ctx context.Context, taskID string, status model.TaskStatus) error {
	_, err := c.do(ctx, envelope{
		Action:  ActionUpdate,
		Sheet:   SheetTasks,
		ID:      taskID,
		Updates: map[string]any{"status": status},
	})
	return err
}

// UpdateTaskReadBy overwrites the read-by list of the task with the given ID.
// The caller supplies the complete new list; see the package comment for the
// lost-update caveat.
func (c *Client) UpdateTaskReadBy(ctx context.Context, taskID string, readBy []string) error {
	_, err := c.do(ctx, envelope{
		Action:  ActionUpdate,
		Sheet:   SheetTasks,
		ID:      taskID,
		Updates: map[string]any{"readBy": readBy},
	})
	return err
}
