package pollapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-poll-client/internal/domain"
	"github.com/samvad-hq/samvad-poll-client/pkg/httpclient"
	"github.com/samvad-hq/samvad-poll-client/pkg/sinks"
)

const defaultTimeout = 15 * time.Second

// Logger defines the logging surface the client relies on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type nopLogger struct{}

func (nopLogger) InfoObj(string, string, interface{})  {}
func (nopLogger) DebugObj(string, string, interface{}) {}
func (nopLogger) WarnObj(string, string, interface{})  {}
func (nopLogger) ErrorObj(string, string, interface{}) {}

// Client talks to one polls API deployment. It is stateless apart from
// the base URL and bearer token, so a single Client may be shared across
// goroutines.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	http    httpclient.Client
	log     Logger
	sink    *sinks.Fanout
}

// Option customizes a Client.
type Option func(*Client)

// WithToken sets the bearer token attached to authenticated operations.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithHTTPClient injects a transport, mainly for tests.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout overrides the default transport timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger injects the logger used for diagnostics.
func WithLogger(log Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithSink injects the diagnostics sink fanout. Events are recorded
// best-effort; sink errors never fail an API call.
func WithSink(f *sinks.Fanout) Option {
	return func(c *Client) { c.sink = f }
}

// NewClient creates a client for the API at baseURL. Trailing slashes
// on the base URL are normalized before path concatenation.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		timeout: defaultTimeout,
		log:     nopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(c.timeout)
	}
	return c
}

// SetToken replaces the bearer token, e.g. after a fresh login.
func (c *Client) SetToken(token string) {
	c.token = strings.TrimSpace(token)
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, username, password string) (domain.User, error) {
	raw, err := c.do(ctx, registerSpec(username, password))
	if err != nil {
		return domain.User{}, err
	}

	var user domain.User
	if err := decode(raw, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// CreatePoll creates a poll with the given question and option texts.
// Requires a bearer token.
func (c *Client) CreatePoll(ctx context.Context, question string, options []string) (domain.Poll, error) {
	raw, err := c.do(ctx, createPollSpec(question, options))
	if err != nil {
		return domain.Poll{}, err
	}

	var poll domain.Poll
	if err := decode(raw, &poll); err != nil {
		return domain.Poll{}, err
	}
	return poll, nil
}

// Polls fetches a page of polls using skip/limit pagination.
func (c *Client) Polls(ctx context.Context, skip, limit int) ([]domain.Poll, error) {
	raw, err := c.do(ctx, listPollsSpec(skip, limit))
	if err != nil {
		return nil, err
	}

	var polls []domain.Poll
	if err := decode(raw, &polls); err != nil {
		return nil, err
	}
	return polls, nil
}

// PollResults retrieves a poll with per-option vote counts. The token
// is optional; the call is bounded to 30 seconds.
func (c *Client) PollResults(ctx context.Context, pollID int64) (domain.PollResults, error) {
	raw, err := c.do(ctx, pollResultsSpec(pollID))
	if err != nil {
		return domain.PollResults{}, err
	}

	var results domain.PollResults
	if err := decode(raw, &results); err != nil {
		return domain.PollResults{}, err
	}
	return results, nil
}

// Vote casts a vote for an option on a poll. Requires a bearer token.
func (c *Client) Vote(ctx context.Context, pollID, optionID int64) (domain.Vote, error) {
	raw, err := c.do(ctx, voteSpec(pollID, optionID))
	if err != nil {
		return domain.Vote{}, err
	}

	var vote domain.Vote
	if err := decode(raw, &vote); err != nil {
		return domain.Vote{}, err
	}
	return vote, nil
}

// do executes one request spec and classifies the response. Every call
// produces exactly one diagnostics event.
func (c *Client) do(ctx context.Context, spec RequestSpec) (json.RawMessage, error) {
	u := c.requestURL(spec)

	headers := map[string]string{"Accept": "application/json"}
	if spec.Auth != AuthNone && c.token != "" {
		headers["Authorization"] = "Bearer " + c.token
	}

	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	evt := sinks.NewEvent(spec.Operation, spec.Method, u)
	start := time.Now()

	var resp httpclient.Response
	var err error
	switch spec.Method {
	case http.MethodGet:
		resp, err = c.http.Get(ctx, u, headers)
	case http.MethodPost:
		resp, err = c.http.Post(ctx, u, headers, spec.Body)
	default:
		return nil, fmt.Errorf("unsupported method %q for operation %s", spec.Method, spec.Operation)
	}
	evt.ElapsedMs = time.Since(start).Milliseconds()

	if err != nil {
		failure := ClassifyTransport(err)
		evt.Outcome = string(failure.Kind)
		evt.Detail = failure.Detail
		c.record(ctx, evt)
		return nil, failure
	}

	result := Classify(spec.Response, resp.StatusCode(), resp.Body())
	evt.Status = resp.StatusCode()

	if result.Failure != nil {
		evt.Outcome = string(result.Failure.Kind)
		evt.Detail = result.Failure.Detail
		c.record(ctx, evt)
		return nil, result.Failure
	}

	evt.Outcome = sinks.OutcomeSuccess
	evt.MissingFields = result.Missing
	c.record(ctx, evt)

	if len(result.Missing) > 0 {
		c.log.WarnObj("response missing required fields", "field_check", map[string]any{
			"operation": spec.Operation,
			"missing":   result.Missing,
		})
	}

	return result.Value, nil
}

// requestURL joins the base URL, path, and encoded query parameters.
func (c *Client) requestURL(spec RequestSpec) string {
	u := c.baseURL + spec.Path
	if len(spec.Query) > 0 {
		vals := url.Values{}
		for k, v := range spec.Query {
			vals.Set(k, v)
		}
		u += "?" + vals.Encode()
	}
	return u
}

// record delivers the event to the sink fanout.
func (c *Client) record(ctx context.Context, evt sinks.Event) {
	if c.sink == nil || c.sink.Size() == 0 {
		return
	}
	// Event delivery must survive a request deadline that already fired.
	ctx = context.WithoutCancel(ctx)
	if _, err := c.sink.Record(ctx, evt); err != nil {
		c.log.WarnObj("diagnostics sink record failed", "sink_error", err.Error())
	}
}

// decode unmarshals a classified success body into its typed model.
func decode(raw json.RawMessage, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return &Failure{
			Kind:   KindMalformedResponse,
			Detail: fmt.Sprintf("decode response: %v", err),
			Status: http.StatusOK,
		}
	}
	return nil
}
