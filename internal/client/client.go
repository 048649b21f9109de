// Package client is a record store that forwards every operation to a
// running agarbatti API over HTTP.
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

	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository"
)

// APIError is a non-2xx response. A 404 unwraps to repository.ErrNotFound.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("api returned %d: %s %v", e.StatusCode, e.Message, e.Fields)
	}
	return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return repository.ErrNotFound
	}
	return nil
}

// Client implements repository.Store against the REST API. It keeps no
// local state and never retries.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

var _ repository.Store = (*Client)(nil)

// New creates a client for baseURL. A nil httpClient gets a 30 second
// timeout.
func New(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

func (c *Client) Close(ctx context.Context) error {
	c.http.CloseIdleConnections()
	return nil
}

// do sends body as JSON and decodes a 2xx response into out. out may be nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	var payload struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
		apiErr.Fields = payload.Fields
	}
	return apiErr
}

func (c *Client) Load(ctx context.Context) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := c.do(ctx, http.MethodGet, "/api/snapshot", nil, &snap); err != nil {
		return nil, err
	}
	snap.Normalize()
	return &snap, nil
}

func (c *Client) Replace(ctx context.Context, snap *domain.Snapshot) error {
	return c.do(ctx, http.MethodPost, "/api/snapshot", snap, nil)
}

// ReplaceCollection reads the remote dataset, swaps one collection and writes
// it back. Writes by other clients in between are lost.
func (c *Client) ReplaceCollection(ctx context.Context, col domain.Collection, src *domain.Snapshot) error {
	snap, err := c.Load(ctx)
	if err != nil {
		return err
	}
	if err := snap.CopyCollection(col, src); err != nil {
		return err
	}
	return c.Replace(ctx, snap)
}
