package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/vendas/internal/sale"
)

// APIError is a non-2xx answer from the sales API. Message is the response
// body, trimmed.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}

	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the sales API on behalf of one authenticated session.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

type importDTO struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"fileName"`
	RecordCount int       `json:"recordCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (d importDTO) toImport() *sale.Import {
	return &sale.Import{
		ID:          d.ID,
		FileName:    d.FileName,
		RecordCount: d.RecordCount,
		CreatedAt:   d.CreatedAt,
	}
}

// CreateSales submits one validated batch. Sending the same key again
// returns the batch stored the first time. There are no retries.
func (c *Client) CreateSales(ctx context.Context, idempotencyKey string, sales []sale.Sale) (*sale.Import, error) {
	body, err := json.Marshal(sales)
	if err != nil {
		return nil, fmt.Errorf("encode sales: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/sales", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	var dto importDTO
	if err := c.do(req, &dto); err != nil {
		return nil, err
	}

	return dto.toImport(), nil
}

func (c *Client) ListImports(ctx context.Context) ([]*sale.Import, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/imports", nil)
	if err != nil {
		return nil, err
	}

	var dtos []importDTO
	if err := c.do(req, &dtos); err != nil {
		return nil, err
	}

	imports := make([]*sale.Import, len(dtos))
	for i, d := range dtos {
		imports[i] = d.toImport()
	}

	return imports, nil
}

// RevertImport deletes an import and its sales.
func (c *Client) RevertImport(ctx context.Context, id uuid.UUID) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/v1/imports/"+id.String(), nil)
	if err != nil {
		return err
	}

	return c.do(req, nil)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return req, nil
}

// do sends req and decodes a JSON answer into out, if out is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
