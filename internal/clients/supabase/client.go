// Package supabase provides a minimal PostgREST query client for hosted
// Supabase tables.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Filter restricts results to rows where Column equals Value.
type Filter struct {
	Column string
	Value  string
}

// Order sorts results by a column.
type Order struct {
	Column     string
	Descending bool
}

// RowRange selects an inclusive row range via the Range header.
// PostgREST caps each response at 1000 rows regardless of the requested span.
type RowRange struct {
	From int
	To   int
}

// Query describes a single table read: column projection, equality filters,
// ordering and an optional row range.
type Query struct {
	Table   string
	Columns []string // empty means "*"
	Filters []Filter
	Order   *Order
	Range   *RowRange
}

// APIError represents a non-2xx response from PostgREST.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to a Supabase project's PostgREST endpoint.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a client for the given project URL and service-role key.
func NewClient(baseURL, apiKey string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     log.With().Str("client", "supabase").Logger(),
	}
}

// Select executes the query and returns the raw JSON array of rows.
func (c *Client) Select(ctx context.Context, q Query) (json.RawMessage, error) {
	params := url.Values{}

	sel := "*"
	if len(q.Columns) > 0 {
		sel = strings.Join(q.Columns, ",")
	}
	params.Set("select", sel)

	for _, f := range q.Filters {
		params.Set(f.Column, "eq."+f.Value)
	}

	if q.Order != nil {
		dir := "asc"
		if q.Order.Descending {
			dir = "desc"
		}
		params.Set("order", q.Order.Column+"."+dir)
	}

	fullURL := fmt.Sprintf("%s/rest/v1/%s?%s", c.baseURL, q.Table, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if q.Range != nil {
		// Ranged reads answer with 206 Partial Content.
		req.Header.Set("Range-Unit", "items")
		req.Header.Set("Range", fmt.Sprintf("%d-%d", q.Range.From, q.Range.To))
	}

	c.log.Debug().
		Str("table", q.Table).
		Str("query", params.Encode()).
		Msg("Querying table")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Table, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	return body, nil
}

// errorMessage extracts the PostgREST error message from a response body,
// falling back to the raw body text.
func errorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(body))
}
