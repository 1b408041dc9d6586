// Package apiclient is a typed facade over the budgeting REST API. The
// base URL is injected so tests and deployments can point it anywhere.
// Every failure, transport-level or non-2xx, comes back as
// ErrRequestFailed; callers branch on success only.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"github.com/jtmarsh/budgeteer/internal/ledger"
	"github.com/jtmarsh/budgeteer/internal/period"
)

var ErrRequestFailed = errors.New("request failed")

type Client struct {
	base   *url.URL
	client *http.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}

	// The session credential is a cookie; the jar carries it across
	// calls the way a browser would.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	return &Client{
		base: base,
		client: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}, nil
}

// Item is one detail row as the API represents it.
type Item struct {
	ID     int64   `json:"id"`
	Amount float64 `json:"amount"`
	Name   string  `json:"name"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/login", nil, credentials{Email: email, Password: password}, nil)
}

func (c *Client) CreateAccount(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/make-account", nil, credentials{Email: email, Password: password}, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil, nil)
}

// Verify reports whether the stored session cookie is still accepted.
// It is safe to call repeatedly; it has no side effects server-side.
func (c *Client) Verify(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/verify", nil, nil, nil)
}

func (c *Client) Summary(ctx context.Context, p period.Period) (*ledger.Summary, error) {
	var resp struct {
		Income []struct {
			CategoryName string  `json:"category_name"`
			Total        float64 `json:"total"`
		} `json:"income"`
		Expense []struct {
			CategoryName string  `json:"category_name"`
			Total        float64 `json:"total"`
		} `json:"expense"`
	}

	if err := c.do(ctx, http.MethodGet, "/get-summary", periodQuery(p), nil, &resp); err != nil {
		return nil, err
	}

	sum := &ledger.Summary{}
	for _, e := range resp.Income {
		sum.Income = append(sum.Income, ledger.SummaryEntry{CategoryName: e.CategoryName, Total: e.Total})
	}

	for _, e := range resp.Expense {
		sum.Expenses = append(sum.Expenses, ledger.SummaryEntry{CategoryName: e.CategoryName, Total: e.Total})
	}

	return sum, nil
}

func (c *Client) Details(ctx context.Context, table ledger.Table, category string, p period.Period) ([]Item, error) {
	query := periodQuery(p)
	query.Set("table", string(table))
	query.Set("category", category)

	var resp struct {
		Details []Item `json:"details"`
	}

	if err := c.do(ctx, http.MethodGet, "/get-details", query, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Details, nil
}

type itemRequest struct {
	CategoryName string  `json:"category_name"`
	Amount       float64 `json:"amount"`
	Name         string  `json:"name"`
	ID           *int64  `json:"id,omitempty"`
}

// CreateItem creates a line item and returns its server-assigned id.
func (c *Client) CreateItem(ctx context.Context, table ledger.Table, category string, p period.Period, name string, amount float64) (int64, error) {
	query := periodQuery(p)
	query.Set("table", string(table))

	var resp struct {
		ID int64 `json:"id"`
	}

	body := itemRequest{CategoryName: category, Amount: amount, Name: name}
	if err := c.do(ctx, http.MethodPost, "/items", query, body, &resp); err != nil {
		return 0, err
	}

	return resp.ID, nil
}

func (c *Client) UpdateItem(ctx context.Context, table ledger.Table, category string, p period.Period, item Item) error {
	query := periodQuery(p)
	query.Set("table", string(table))

	body := itemRequest{CategoryName: category, Amount: item.Amount, Name: item.Name, ID: &item.ID}

	return c.do(ctx, http.MethodPut, "/items", query, body, nil)
}

func (c *Client) DeleteItem(ctx context.Context, table ledger.Table, p period.Period, id int64) error {
	query := periodQuery(p)
	query.Set("table", string(table))

	return c.do(ctx, http.MethodDelete, "/items", query, itemRequest{ID: &id}, nil)
}

func periodQuery(p period.Period) url.Values {
	query := url.Values{}
	query.Set("month", strconv.Itoa(p.Month))
	query.Set("year", strconv.Itoa(p.Year))

	return query
}

// do executes one API call. A non-nil out must be a pointer; the
// response body is decoded into it on success.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.base
	u.Path = path

	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader

	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}

		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Debug("api request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %s %s: %v", ErrRequestFailed, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Debug("api request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return fmt.Errorf("%w: %s %s returned %d", ErrRequestFailed, method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
