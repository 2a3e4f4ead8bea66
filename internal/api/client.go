// Package api talks to a dummyjson-style todo endpoint.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/idilsaglam/todoview/internal/model"
)

// RequestIDHeader carries a per-request id so client and server logs line up.
const RequestIDHeader = "X-Request-Id"

// Client calls the todo list and create endpoints.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout sets a whole-request timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client = &http.Client{Transport: c.client.Transport, Timeout: d}
		}
	}
}

// WithLogger sets the logger used for request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client for the given list endpoint URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the list endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// NewTodo is the body of a create request.
type NewTodo struct {
	Title     string
	Completed bool
	UserID    int
}

type wireTodo struct {
	ID        *int    `json:"id"`
	Todo      *string `json:"todo"`
	Completed bool    `json:"completed"`
	UserID    int     `json:"userId"`
}

type listResponse struct {
	Todos *[]wireTodo `json:"todos"`
	Total int         `json:"total"`
	Skip  int         `json:"skip"`
	Limit int         `json:"limit"`
}

type addRequest struct {
	Todo      string `json:"todo"`
	Completed bool   `json:"completed"`
	UserID    int    `json:"userId"`
}

// List fetches up to limit todos in server order. CreatedAt is left zero.
func (c *Client) List(ctx context.Context, limit int) ([]model.Todo, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, networkError(err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	var response listResponse
	if err := c.do(ctx, http.MethodGet, u.String(), nil, &response); err != nil {
		return nil, err
	}
	if response.Todos == nil {
		return nil, malformed("missing todos array")
	}

	todos := make([]model.Todo, 0, len(*response.Todos))
	for i, w := range *response.Todos {
		t, err := w.toModel()
		if err != nil {
			return nil, malformed("todo %d: %v", i, err)
		}
		todos = append(todos, t)
	}
	return todos, nil
}

// Add creates a todo and returns the server's echo of it.
func (c *Client) Add(ctx context.Context, in NewTodo) (model.Todo, error) {
	body := addRequest{Todo: in.Title, Completed: in.Completed, UserID: in.UserID}
	var response wireTodo
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/add", body, &response); err != nil {
		return model.Todo{}, err
	}
	t, err := response.toModel()
	if err != nil {
		return model.Todo{}, malformed("created todo: %v", err)
	}
	return t, nil
}

func (w wireTodo) toModel() (model.Todo, error) {
	if w.ID == nil {
		return model.Todo{}, errMissing("id")
	}
	if w.Todo == nil {
		return model.Todo{}, errMissing("todo")
	}
	return model.Todo{ID: *w.ID, Title: *w.Todo, Completed: w.Completed, UserID: w.UserID}, nil
}

type missingFieldError string

func (e missingFieldError) Error() string { return "missing field " + strconv.Quote(string(e)) }

func errMissing(field string) error { return missingFieldError(field) }

func (c *Client) do(ctx context.Context, method, target string, payload any, dest any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return networkError(err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", "method", method, "url", target, "request_id", requestID, "error", err)
		return networkError(err)
	}
	defer resp.Body.Close()
	c.logger.Debug("api request", "method", method, "url", target, "status", resp.StatusCode,
		"request_id", requestID, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readErrorResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return malformed("decode %s %s: %v", method, target, err)
	}
	return nil
}
