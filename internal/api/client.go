package api

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

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const logCacheSize = 64

type Options struct {
	BaseURL     string
	Timeout     time.Duration // per request
	LogTail     int
	LogCacheTTL time.Duration // 0 disables the cache
	HTTPClient  *http.Client
}

// Client talks to the mini-docker HTTP API. Containers are addressed by name.
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
	logTail int

	logs     *expirable.LRU[string, string]
	logGroup singleflight.Group
}

func NewClient(opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", opts.BaseURL)
	}

	c := &Client{
		base:    u,
		http:    opts.HTTPClient,
		timeout: opts.Timeout,
		logTail: opts.LogTail,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.timeout <= 0 {
		c.timeout = 10 * time.Second
	}
	if c.logTail <= 0 {
		c.logTail = 500
	}
	if opts.LogCacheTTL > 0 {
		c.logs = expirable.NewLRU[string, string](logCacheSize, nil, opts.LogCacheTTL)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.base.String()
}

// ============================================================================
// Endpoints
// ============================================================================

// ListContainers fetches the full container list (the poll)
func (c *Client) ListContainers(ctx context.Context) ([]Container, error) {
	var out []Container
	if err := c.call(ctx, "list containers", http.MethodGet, "/api/containers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateContainer returns the new container id
func (c *Client) CreateContainer(ctx context.Context, spec CreateSpec) (string, error) {
	var resp createResponse
	if err := c.call(ctx, "create container", http.MethodPost, "/api/containers", spec, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// DoAction runs start/stop/pause/resume/restart, or delete, on one container.
// The returned message is whatever the server said on success (may be empty).
func (c *Client) DoAction(ctx context.Context, name, action string) (string, error) {
	op := action + " " + name
	var resp actionResponse
	var err error
	if action == "delete" {
		err = c.call(ctx, op, http.MethodDelete, containerPath(name), nil, &resp)
	} else {
		err = c.call(ctx, op, http.MethodPost, containerPath(name, action), nil, &resp)
	}
	if err != nil {
		return "", err
	}
	if c.logs != nil {
		c.logs.Remove(name)
	}
	return resp.Message, nil
}

// GetLogs returns the full log text. concurrent calls for one container share a request
func (c *Client) GetLogs(ctx context.Context, name string) (string, error) {
	if c.logs != nil {
		if text, ok := c.logs.Get(name); ok {
			return text, nil
		}
	}

	v, err, _ := c.logGroup.Do(name, func() (any, error) {
		var resp logsResponse
		path := containerPath(name, "logs") + "?tail=" + strconv.Itoa(c.logTail)
		if err := c.call(ctx, "logs "+name, http.MethodGet, path, nil, &resp); err != nil {
			return "", err
		}
		if c.logs != nil {
			c.logs.Add(name, resp.Logs)
		}
		return resp.Logs, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// OpenRootfs asks the server host to open the container's root filesystem
func (c *Client) OpenRootfs(ctx context.Context, name string) error {
	return c.call(ctx, "open rootfs "+name, http.MethodPost, containerPath(name, "rootfs"), nil, nil)
}

// ============================================================================
// Plumbing
// ============================================================================

func containerPath(name string, rest ...string) string {
	p := "/api/containers/" + url.PathEscape(name)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

func (c *Client) call(ctx context.Context, op, method, path string, body any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
		"took":   time.Since(start),
	}).Debug("api call")

	if resp.StatusCode >= 400 {
		return rejection(op, resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// the server answers errors as {"error": "..."}; fall back to the status text
func rejection(op string, code int, body []byte) error {
	var er errorResponse
	msg := ""
	if err := json.Unmarshal(body, &er); err == nil {
		msg = strings.TrimSpace(er.Error)
	}
	if msg == "" {
		msg = fmt.Sprintf("%s failed: %s", op, http.StatusText(code))
	}
	return &RejectionError{Op: op, StatusCode: code, Message: msg}
}
