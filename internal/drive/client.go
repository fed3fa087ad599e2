// Package drive talks to the storage provider hosting the actual PDF files.
// Its direct URLs are never exposed to browsers; only the proxy and the
// offline tools reach it.
package drive

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// DefaultBaseURL is the production storage provider endpoint.
const DefaultBaseURL = "https://drive.google.com"

// idPattern matches well-formed file identifiers: 28-44 characters of
// alphanumerics, dash, underscore. Applied before any identifier reaches an
// outbound URL.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{28,44}$`)

// ValidID reports whether id is a well-formed storage file identifier.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// Client issues requests against the storage provider. A single outbound
// attempt per call; redirects are followed, no retries.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient constructs a Client. baseURL may be empty for production; tests
// point it at a local server.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
	}
}

// DownloadURL builds the provider's direct-download URL for a validated id.
func (c *Client) DownloadURL(id string) string {
	return fmt.Sprintf("%s/uc?export=download&id=%s", c.baseURL, url.QueryEscape(id))
}

// PreviewEmbedURL builds the provider's embeddable viewer URL.
func (c *Client) PreviewEmbedURL(id string) string {
	return fmt.Sprintf("%s/file/d/%s/preview", c.baseURL, url.PathEscape(id))
}

// ThumbnailURL builds the provider's thumbnail URL for catalog cards.
func (c *Client) ThumbnailURL(id string) string {
	return fmt.Sprintf("%s/thumbnail?id=%s&sz=w400", c.baseURL, url.QueryEscape(id))
}

// Fetch issues the single outbound GET for a file. The caller owns the
// response body.
func (c *Client) Fetch(ctx context.Context, id string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.DownloadURL(id), nil)
	if err != nil {
		return nil, fmt.Errorf("build drive request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch from drive: %w", err)
	}
	return resp, nil
}

// ContentLength HEADs the file and returns its size in bytes. The provider
// omits Content-Length for some files; that surfaces as an error.
func (c *Client) ContentLength(ctx context.Context, id string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.DownloadURL(id), nil)
	if err != nil {
		return 0, fmt.Errorf("build drive request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("head drive file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("head drive file: status %d", resp.StatusCode)
	}
	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("head drive file: no content length")
	}
	return resp.ContentLength, nil
}
