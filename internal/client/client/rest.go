package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/moviecatalog/internal/client/models"
	"github.com/dmitrijs2005/moviecatalog/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	usersCollection  = "users"
	moviesCollection = "movies"

	requestIDHeader = "X-Request-ID"
	userAgent       = "MovieCatalogCLI/1.0"

	// limit response size to prevent memory issues
	maxResponseSize = 5 * 1024 * 1024
	maxErrorSnippet = 200
)

// RESTClient implements Client over HTTP+JSON. It is safe for concurrent use.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        logging.Logger
}

type Option func(*RESTClient)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *RESTClient) { c.httpClient = h }
}

// WithRateLimit paces outgoing requests to rps per second with a burst of one.
// rps <= 0 disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *RESTClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *RESTClient) { c.log = l }
}

// NewRESTClient returns a client rooted at baseURL, e.g. "http://127.0.0.1:8080"
// or "https://xyz.mockapi.io/api/v1".
func NewRESTClient(baseURL string, opts ...Option) (*RESTClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 100
	transport.MaxIdleConnsPerHost = 10
	transport.IdleConnTimeout = 90 * time.Second

	c := &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Transport: transport},
		log:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *RESTClient) ListMovies(ctx context.Context) ([]models.Movie, error) {
	return list[models.Movie](ctx, c, "list movies", moviesCollection)
}

func (c *RESTClient) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	return get[models.Movie](ctx, c, "get movie", moviesCollection, id)
}

func (c *RESTClient) CreateMovie(ctx context.Context, m models.Movie) (*models.Movie, error) {
	m.ID = ""
	return send[models.Movie](ctx, c, "create movie", http.MethodPost, "/"+moviesCollection, m)
}

func (c *RESTClient) UpdateMovie(ctx context.Context, id string, m models.Movie) (*models.Movie, error) {
	path, err := itemPath("update movie", moviesCollection, id)
	if err != nil {
		return nil, err
	}
	m.ID = id
	return send[models.Movie](ctx, c, "update movie", http.MethodPut, path, m)
}

func (c *RESTClient) ListUsers(ctx context.Context) ([]models.User, error) {
	return list[models.User](ctx, c, "list users", usersCollection)
}

func (c *RESTClient) GetUser(ctx context.Context, id string) (*models.User, error) {
	return get[models.User](ctx, c, "get user", usersCollection, id)
}

func (c *RESTClient) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	u.ID = ""
	return send[models.User](ctx, c, "create user", http.MethodPost, "/"+usersCollection, u)
}

func (c *RESTClient) UpdateUser(ctx context.Context, id string, u models.User) (*models.User, error) {
	path, err := itemPath("update user", usersCollection, id)
	if err != nil {
		return nil, err
	}
	u.ID = id
	return send[models.User](ctx, c, "update user", http.MethodPut, path, u)
}

func (c *RESTClient) DeleteUser(ctx context.Context, id string) error {
	path, err := itemPath("delete user", usersCollection, id)
	if err != nil {
		return err
	}
	return c.do(ctx, "delete user", http.MethodDelete, path, nil, nil)
}

func itemPath(op, collection, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidID)
	}
	return "/" + collection + "/" + url.PathEscape(id), nil
}

func list[T any](ctx context.Context, c *RESTClient, op, collection string) ([]T, error) {
	var out []T
	if err := c.do(ctx, op, http.MethodGet, "/"+collection, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func get[T any](ctx context.Context, c *RESTClient, op, collection, id string) (*T, error) {
	path, err := itemPath(op, collection, id)
	if err != nil {
		return nil, err
	}
	var out T
	if err := c.do(ctx, op, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func send[T any](ctx context.Context, c *RESTClient, op, method, path string, body any) (*T, error) {
	var out T
	if err := c.do(ctx, op, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs exactly one request. out may be nil when the body is ignored.
func (c *RESTClient) do(ctx context.Context, op, method, path string, body any, out any) error {
	endpoint := c.baseURL + path
	fail := func(status int, err error) error {
		return &FetchError{Op: op, Method: method, URL: endpoint, StatusCode: status, Err: err}
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		payload = bytes.NewReader(b)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fail(0, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return fail(0, fmt.Errorf("failed to create request: %w", err))
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn(ctx, "api request failed", "op", op, "url", endpoint, "request_id", requestID, "error", err)
		return fail(0, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return fail(resp.StatusCode, fmt.Errorf("failed to read response body: %w", err))
	}
	if len(data) > maxResponseSize {
		return fail(resp.StatusCode, errors.New("response too large"))
	}

	c.log.Debug(ctx, "api request",
		"op", op,
		"method", method,
		"url", endpoint,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(start),
		"response_size", len(data),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet(data)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorSnippet {
		s = s[:maxErrorSnippet] + "..."
	}
	return s
}
