package cms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/kerjaplus/jobboard/internal/metrics"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const apiPrefix = "/api/v1"

var (
	// ErrTimeout marks requests aborted by the per-request deadline,
	// distinguishable from generic transport failures.
	ErrTimeout = errors.New("cms request timed out")

	// ErrNotFound marks 404 responses from the CMS.
	ErrNotFound = errors.New("cms resource not found")
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Settings is everything the client needs to reach the CMS.
type Settings struct {
	BaseURL        string
	Token          string
	RequestTimeout time.Duration
}

// SettingsSource supplies Settings on first use. Today this is a synchronous
// read of environment-derived config; keeping it behind a function lets a
// remote settings source be plugged in later without changing callers.
type SettingsSource func() (Settings, error)

func StaticSettings(settings Settings) SettingsSource {
	return func() (Settings, error) {
		return settings, nil
	}
}

type Client struct {
	httpClient   HTTPClient
	rateLimiter  *rate.Limiter
	loadSettings SettingsSource

	initOnce sync.Once
	initErr  error
	settings Settings
}

func NewClient(source SettingsSource) *Client {
	return &Client{httpClient: &http.Client{}, loadSettings: source}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// ensureInitialized loads settings exactly once; concurrent first calls all
// wait on the same in-flight load.
func (c *Client) ensureInitialized() error {
	c.initOnce.Do(func() {
		settings, err := c.loadSettings()
		if err != nil {
			c.initErr = fmt.Errorf("loading cms settings: %w", err)
			return
		}
		if settings.RequestTimeout <= 0 {
			settings.RequestTimeout = 10 * time.Second
		}
		c.settings = settings
	})
	return c.initErr
}

func (c *Client) sendRequest(ctx context.Context, endpoint string, path string, query url.Values) ([]byte, error) {

	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	reqURL := c.settings.BaseURL + apiPrefix + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.settings.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.settings.Token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.CmsRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("request to %v: %w", path, ErrTimeout)
		}
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(path, resp)
}

func (c *Client) handleResponse(path string, resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("request to %v: %w", path, ErrNotFound)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(body))
	}

	return body, nil
}
