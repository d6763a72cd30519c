// Package rest talks to the employee REST backend.
package rest

import (
	"bytes"
	"context"
	"empdir/internal/types"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

const (
	contentTypeJSON = "application/json"
	acceptEncoding  = "zstd, gzip"

	// maxBodyBytes bounds how much of a (decoded) response body is read.
	maxBodyBytes = 32 << 20
)

// HTTPError carries status/body for non-2xx responses.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, snippet(e.Body, 300))
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// Client implements ports.EmployeeAPI. BaseURL is the collection endpoint,
// e.g. http://localhost:8080/api/employees. Each call is a single attempt.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	// Timeout bounds each request; 0 waits for as long as ctx allows.
	Timeout time.Duration
}

func New(baseURL string, timeout time.Duration) *Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		// Content-Encoding is negotiated and decoded in decodeBody.
		DisableCompression: true,
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Transport: tr},
		Timeout: timeout,
	}
}

func (c *Client) List(ctx context.Context) ([]types.Employee, error) {
	var out []types.Employee
	if err := c.do(ctx, http.MethodGet, c.collectionURL(), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []types.Employee{}
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (types.Employee, error) {
	var out types.Employee
	if err := c.do(ctx, http.MethodGet, c.itemURL(id), nil, &out); err != nil {
		return types.Employee{}, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, draft types.Draft) (types.Employee, error) {
	var out types.Employee
	if err := c.do(ctx, http.MethodPost, c.collectionURL(), draft, &out); err != nil {
		return types.Employee{}, err
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, id int64, draft types.Draft) (types.Employee, error) {
	var out types.Employee
	if err := c.do(ctx, http.MethodPut, c.itemURL(id), draft, &out); err != nil {
		return types.Employee{}, err
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) collectionURL() string {
	return c.BaseURL
}

func (c *Client) itemURL(id int64) string {
	return c.BaseURL + "/" + strconv.FormatInt(id, 10)
}

// do performs one round-trip. Transport failures map to ErrNetwork, 404 to ErrNotFound
// and any other non-2xx status or an unparsable success body to ErrBackend.
// out may be nil; an empty success body leaves out untouched.
func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return types.Err(types.ErrNetwork, err, "")
	}
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("Accept-Encoding", acceptEncoding)
	if in != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	started := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"method": method, "url": url}).Debug("request failed")
		return types.Err(types.ErrNetwork, err, "%s %s", method, url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := decodeBody(resp)
	if err != nil {
		return types.Err(types.ErrNetwork, err, "%s %s: read body", method, url)
	}
	log.WithFields(log.Fields{
		"method":   method,
		"url":      url,
		"status":   resp.StatusCode,
		"encoding": resp.Header.Get("Content-Encoding"),
		"took":     time.Since(started),
	}).Debug("round-trip")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &HTTPError{Method: method, URL: url, StatusCode: resp.StatusCode, Body: raw}
		if resp.StatusCode == http.StatusNotFound {
			return types.Err(types.ErrNotFound, httpErr, "")
		}
		return types.Err(types.ErrBackend, httpErr, "")
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return types.Err(types.ErrBackend, err, "%s %s: invalid json body", method, url)
	}
	return nil
}
