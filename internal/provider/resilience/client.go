package resilience

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// ErrCircuitOpen is returned without calling the provider while its
// circuit is open or half-open and saturated.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// ClientConfig holds configuration for the resilient HTTP client. Zero
// durations and counts take the values of DefaultClientConfig.
type ClientConfig struct {
	// Name identifies the provider in breaker logs and the registry.
	Name string

	// Timeout bounds a single attempt.
	Timeout time.Duration

	// MaxRetries is the number of attempts after the first.
	MaxRetries uint64

	InitialInterval time.Duration
	MaxInterval     time.Duration

	// MaxRetryAfter caps how long a Retry-After hint from the provider may
	// delay the next attempt. Longer hints give up instead.
	MaxRetryAfter time.Duration

	// UserAgent is sent when the request has none.
	UserAgent string

	// Transport defaults to http.DefaultTransport.
	Transport http.RoundTripper

	// CircuitBreaker defaults to DefaultCircuitBreakerConfig(Name).
	CircuitBreaker *CircuitBreakerConfig

	// Registry, if set, receives the client on creation and is told about
	// every request outcome. Surfaced by GET /v1/ops/status.
	Registry *Registry

	// Logger receives circuit breaker state transitions.
	Logger zerolog.Logger
}

// DefaultClientConfig returns the settings used for weather providers.
func DefaultClientConfig(name string) ClientConfig {
	cb := DefaultCircuitBreakerConfig(name)
	return ClientConfig{
		Name:            name,
		Timeout:         10 * time.Second,
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		MaxRetryAfter:   10 * time.Second,
		UserAgent:       "packwise",
		CircuitBreaker:  &cb,
	}
}

func (cfg ClientConfig) withDefaults() ClientConfig {
	def := DefaultClientConfig(cfg.Name)
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = def.InitialInterval
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = def.MaxInterval
	}
	if cfg.MaxRetryAfter <= 0 {
		cfg.MaxRetryAfter = def.MaxRetryAfter
	}
	if cfg.CircuitBreaker == nil {
		cfg.CircuitBreaker = def.CircuitBreaker
	}
	return cfg
}

// Client sends provider requests through a circuit breaker and retries
// transient failures with exponential backoff.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	cfg        ClientConfig
}

// NewClient creates a Client and registers it with cfg.Registry.
func NewClient(cfg ClientConfig) *Client {
	cfg = cfg.withDefaults()

	cb := *cfg.CircuitBreaker
	if cb.Name == "" {
		cb.Name = cfg.Name
	}
	if cb.OnStateChange == nil {
		logger := cfg.Logger
		cb.OnStateChange = func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("provider", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		}
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout, Transport: cfg.Transport},
		breaker:    NewCircuitBreaker[*http.Response](cb), //nolint:bodyclose // type param, not response
		cfg:        cfg,
	}
	if cfg.Registry != nil {
		cfg.Registry.Register(cfg.Name, c)
	}
	return c
}

// Name returns the provider name.
func (c *Client) Name() string {
	return c.cfg.Name
}

// Do sends req, retrying network errors, 5xx and 429 answers. When retries
// run out on a retryable status the last response is returned with a nil
// error so the caller can inspect it. ErrCircuitOpen is returned at once
// while the circuit is open.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if c.cfg.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(ctx)
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.cfg.InitialInterval
	exp.MaxInterval = c.cfg.MaxInterval
	exp.MaxElapsedTime = 0
	policy := &hintedBackOff{BackOff: backoff.WithMaxRetries(exp, c.cfg.MaxRetries)}

	var last *http.Response
	err := backoff.Retry(func() error {
		resp, err := c.attempt(ctx, req)
		if resp != nil {
			if last != nil {
				_ = last.Body.Close()
			}
			last = resp
		}

		var serverErr *ServerError
		switch {
		case err == nil:
			return nil
		case errors.Is(err, ErrCircuitOpen):
			return backoff.Permanent(err)
		case errors.As(err, &serverErr) && serverErr.RetryAfter > c.cfg.MaxRetryAfter:
			return backoff.Permanent(err)
		case errors.As(err, &serverErr):
			policy.hint = serverErr.RetryAfter
		}
		return err
	}, backoff.WithContext(policy, ctx))

	if err == nil {
		c.report(nil)
		return last, nil
	}

	c.report(err)
	var serverErr *ServerError
	if last != nil && errors.As(err, &serverErr) {
		return last, nil
	}
	if last != nil {
		_ = last.Body.Close()
	}
	return nil, err
}

// attempt performs one breaker-guarded round trip.
func (c *Client) attempt(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.breaker.Execute(func() (*http.Response, error) { //nolint:bodyclose // caller closes
		r, err := c.httpClient.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if retryableStatus(r.StatusCode) {
			return r, &ServerError{StatusCode: r.StatusCode, RetryAfter: parseRetryAfter(r.Header.Get("Retry-After"))}
		}
		return r, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrCircuitOpen
	}
	return resp, err
}

func (c *Client) report(err error) {
	if c.cfg.Registry == nil {
		return
	}
	if err == nil {
		c.cfg.Registry.RecordSuccess(c.cfg.Name)
		return
	}
	c.cfg.Registry.RecordFailure(c.cfg.Name, err)
}

// retryableStatus reports upstream statuses worth another attempt. Open-Meteo
// answers 429 when its fair-use limit is hit.
func retryableStatus(code int) bool {
	return code >= http.StatusInternalServerError || code == http.StatusTooManyRequests
}

// parseRetryAfter reads the delay-seconds form of Retry-After. HTTP dates
// and garbage yield zero.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// hintedBackOff waits at least as long as the last Retry-After hint.
type hintedBackOff struct {
	backoff.BackOff
	hint time.Duration
}

func (b *hintedBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next != backoff.Stop && b.hint > next {
		next = b.hint
	}
	b.hint = 0
	return next
}

// ServerError is a retryable upstream status (5xx or 429).
type ServerError struct {
	StatusCode int

	// RetryAfter is the provider's hint, zero when absent.
	RetryAfter time.Duration
}

func (e *ServerError) Error() string {
	return "server error: " + http.StatusText(e.StatusCode)
}

// CircuitBreakerState returns the current state of the circuit breaker.
func (c *Client) CircuitBreakerState() gobreaker.State {
	return c.breaker.State()
}

// CircuitBreakerCounts returns the current counts of the circuit breaker.
func (c *Client) CircuitBreakerCounts() gobreaker.Counts {
	return c.breaker.Counts()
}
