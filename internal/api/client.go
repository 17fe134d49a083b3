package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/relocate/tui-go/internal/logging"
	"github.com/relocate/tui-go/internal/model"
)

const (
	// DefaultBaseURL is where the relocation API listens in local development
	DefaultBaseURL = "http://localhost:8001/api"

	userAgent = "relocate-tui/1.0"
)

// CredentialSource supplies the credential for outgoing requests. It is
// consulted on every request, so a logout takes effect on the next call.
type CredentialSource interface {
	Credential() (string, bool)
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	RetryMax  int
	RetryWait time.Duration // minimum backoff; the maximum is 10x
	RateLimit float64       // requests per second, 0 for unlimited
	Logger    *zap.Logger
}

// Client talks to the relocation API
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	logger  *zap.Logger

	mu    sync.RWMutex
	creds CredentialSource
}

// New creates a client. Transient failures (connection errors, 5xx, 429) are
// retried by the transport; any other non-2xx response is returned as *Error.
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = 250 * time.Millisecond
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.RetryMax
	retryClient.RetryWaitMin = opts.RetryWait
	retryClient.RetryWaitMax = 10 * opts.RetryWait
	retryClient.Logger = logging.NewRetryLogger(logger)
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(1, int(opts.RateLimit)))
	}

	c := &Client{
		limiter: limiter,
		logger:  logger.Named("api"),
	}

	c.resty = resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(opts.BaseURL).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetError(&model.ErrorBody{}).
		OnBeforeRequest(c.attachCredential)
	if opts.Timeout > 0 {
		c.resty.SetTimeout(opts.Timeout)
	}

	return c
}

// UseCredentials installs the source consulted for every request that does
// not carry an explicit token. Passing nil detaches credentials entirely.
func (c *Client) UseCredentials(src CredentialSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creds = src
}

func (c *Client) attachCredential(_ *resty.Client, r *resty.Request) error {
	if r.Token != "" {
		return nil
	}
	c.mu.RLock()
	src := c.creds
	c.mu.RUnlock()
	if src == nil {
		return nil
	}
	if token, ok := src.Credential(); ok {
		r.SetAuthToken(token)
	}
	return nil
}

// request waits on the rate limiter and returns a request bound to ctx
func (c *Client) request(ctx context.Context) (*resty.Request, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	return c.resty.R().SetContext(ctx), nil
}

// execute sends r and converts transport and HTTP failures into errors
func (c *Client) execute(r *resty.Request, method, path string) error {
	resp, err := r.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr := newError(resp)
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", apiErr.StatusCode),
		)
		return apiErr
	}
	return nil
}
