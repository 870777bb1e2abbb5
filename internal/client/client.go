package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	errors "github.com/frahmantamala/household-expenses/internal"
)

const defaultTimeout = 15 * time.Second

type Config struct {
	APIBaseURL string
	Timeout    time.Duration
	// Transport is the underlying round tripper; nil means http.DefaultTransport.
	Transport http.RoundTripper
}

// Client talks to the household backend. Every call sends the session cookie held in its jar.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	jar         http.CookieJar
	interceptor *UnauthorizedInterceptor
	logger      *slog.Logger
}

type Option func(*Client)

func WithJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

// WithUnauthorizedHook installs fn as the 401 hook at construction time.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) {
		c.interceptor.SetHook(fn)
	}
}

func New(config Config, logger *slog.Logger, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(config.APIBaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("client: api base url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("client: invalid api base url %q: %w", base, err)
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		baseURL:     base + "/api",
		interceptor: NewUnauthorizedInterceptor(config.Transport),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("client: failed to create cookie jar: %w", err)
		}
		c.jar = jar
	}

	c.httpClient = &http.Client{
		Timeout:   timeout,
		Jar:       c.jar,
		Transport: c.interceptor,
	}
	return c, nil
}

// OnUnauthorized replaces the hook fired for every 401 response.
func (c *Client) OnUnauthorized(fn func()) {
	c.interceptor.SetHook(fn)
}

func (c *Client) Jar() http.CookieJar {
	return c.jar
}

// BaseURL is the API root, including the /api prefix.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.NewInternalError("failed to encode request body", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return nil, errors.NewInternalError("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// send performs req and maps the outcome onto the error taxonomy. The caller closes the body on success.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	c.logger.Debug("api request", "method", req.Method, "path", req.URL.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError("Request failed", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		defer drain(resp)
		if msg := rejectionMessage(resp.Body); msg != "" && msg != errors.ErrUnauthorized.Message {
			return nil, errors.NewUnauthorizedError(msg, errors.ErrCodeSessionInvalid)
		}
		return nil, errors.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer drain(resp)
		return nil, errors.NewServerRejectionError(resp.StatusCode, rejectionMessage(resp.Body))
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer drain(resp)

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewServerRejectionError(resp.StatusCode, "Malformed response").WithCause(err)
	}
	return nil
}

func rejectionMessage(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return ""
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
