package records

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Fetcher loads the current record collection.
// It is implemented by *Client and *FileSource.
type Fetcher interface {
	FetchRecords(ctx context.Context) ([]Record, error)
}

var (
	_ Fetcher = (*Client)(nil)
	_ Fetcher = (*FileSource)(nil)
)

// Client reads records from an HTTP JSON endpoint.
type Client struct {
	endpoint    *url.URL
	recordsPath string
	http        *http.Client
	userAgent   string
}

const (
	defaultUserAgent = "tally/0.1"
	requestTimeout   = 5 * time.Second
	maxBodyBytes     = 64 << 20
)

// NewClient builds a Client for the given endpoint URL. recordsPath selects
// the record array inside the response; empty selects the whole body.
func NewClient(endpoint, recordsPath string) (*Client, error) {
	u, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	return &Client{
		endpoint:    u,
		recordsPath: recordsPath,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Endpoint returns the URL records are fetched from.
func (c *Client) Endpoint() string {
	if c == nil || c.endpoint == nil {
		return ""
	}
	return c.endpoint.String()
}

// FetchRecords retrieves and decodes the record collection.
func (c *Client) FetchRecords(ctx context.Context) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body, err := c.get(ctx)
	if err != nil {
		return nil, err
	}
	return Decode(body, c.recordsPath)
}

func (c *Client) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("api %s returned status %d", c.endpoint.Path, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func parseEndpoint(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("endpoint is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse endpoint %q: missing host", raw)
	}
	u.Fragment = ""
	return u, nil
}

// FileSource reads records from a JSON file on every fetch.
type FileSource struct {
	Path        string
	RecordsPath string
}

// FetchRecords reads and decodes the file.
func (f *FileSource) FetchRecords(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read records file: %w", err)
	}
	recs, err := Decode(data, f.RecordsPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(f.Path), err)
	}
	return recs, nil
}
