// Package supabase talks to a Supabase project through its PostgREST API
// and implements the domain repositories on top of it.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	restPrefix     = "/rest/v1/"
)

// Client holds the project endpoint and service key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type Config struct {
	URL    string
	APIKey string
	// Timeout applies when HTTPClient is nil. Zero means 30s.
	Timeout    time.Duration
	HTTPClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	switch {
	case cfg.URL == "":
		return nil, fmt.Errorf("supabase URL is required")
	case cfg.APIKey == "":
		return nil, fmt.Errorf("supabase API key is required")
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: hc,
	}, nil
}

// Table scopes a request to one table. Filters apply to reads and writes
// alike; columns, order and limit only to reads.
func (c *Client) Table(name string) *TableQuery {
	return &TableQuery{client: c, table: name, query: url.Values{}}
}

type TableQuery struct {
	client *Client
	table  string
	query  url.Values
	reads  url.Values
}

func (t *TableQuery) read(key, value string) *TableQuery {
	if t.reads == nil {
		t.reads = url.Values{}
	}
	t.reads.Set(key, value)
	return t
}

func (t *TableQuery) Select(columns string) *TableQuery {
	return t.read("select", columns)
}

// Eq filters on column = value. The value is sent in its %v form.
func (t *TableQuery) Eq(column string, value any) *TableQuery {
	t.query.Add(column, "eq."+fmt.Sprint(value))
	return t
}

func (t *TableQuery) Order(column string, ascending bool) *TableQuery {
	dir := ".desc"
	if ascending {
		dir = ".asc"
	}
	return t.read("order", column+dir)
}

func (t *TableQuery) Limit(n int) *TableQuery {
	return t.read("limit", strconv.Itoa(n))
}

// Get reads the matching rows.
func (t *TableQuery) Get(ctx context.Context) (*Response, error) {
	q := url.Values{}
	for k, v := range t.query {
		q[k] = v
	}
	for k, v := range t.reads {
		q[k] = v
	}
	return t.client.send(ctx, http.MethodGet, t.table, q, nil)
}

// Insert creates rows from data and returns them as stored.
func (t *TableQuery) Insert(ctx context.Context, data any) (*Response, error) {
	return t.client.send(ctx, http.MethodPost, t.table, t.query, data)
}

// Update patches every matching row and returns the rows it changed.
func (t *TableQuery) Update(ctx context.Context, data any) (*Response, error) {
	return t.client.send(ctx, http.MethodPatch, t.table, t.query, data)
}

func (c *Client) send(ctx context.Context, method, table string, query url.Values, data any) (*Response, error) {
	endpoint := c.baseURL + restPrefix + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", table, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", table, err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, table, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", table, err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: raw}, nil
}

type Response struct {
	StatusCode int
	Body       []byte
}

// Decode fails with an *APIError on non-2xx answers, otherwise it
// unmarshals the body into out (when out is non-nil).
func (r *Response) Decode(out any) error {
	if r.StatusCode >= http.StatusBadRequest {
		return newAPIError(r)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// APIError is a non-2xx answer from PostgREST.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func newAPIError(r *Response) *APIError {
	e := &APIError{StatusCode: r.StatusCode}
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(r.Body, &body) == nil {
		e.Code = body.Code
		e.Message = body.Message
		if e.Message == "" {
			e.Message = body.Error
		}
	}
	return e
}

func (e *APIError) Error() string {
	switch {
	case e.Message == "":
		return fmt.Sprintf("supabase: status %d", e.StatusCode)
	case e.Code != "":
		return fmt.Sprintf("supabase: %s (%s)", e.Message, e.Code)
	}
	return "supabase: " + e.Message
}
