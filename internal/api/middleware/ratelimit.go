package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/httprate"

	"github.com/packwise/packwise/internal/api/models"
)

// LimitKey selects what a rate limit counts against.
type LimitKey int

const (
	// LimitByIP keys on the client address as resolved by chi's RealIP.
	LimitByIP LimitKey = iota
	// LimitByUser keys on the authenticated subject, falling back to the
	// client address when the request carries none.
	LimitByUser
)

// RateLimitPolicy is a fixed-window request budget.
type RateLimitPolicy struct {
	Requests int
	Window   time.Duration
	Key      LimitKey
}

// Built-in policies. Generation endpoints may fan out to the weather
// provider and get the tighter budget.
var (
	GeneratePolicy = RateLimitPolicy{Requests: 30, Window: time.Minute}
	StandardPolicy = RateLimitPolicy{Requests: 100, Window: time.Minute}
)

// PerUser returns a copy of p keyed on the authenticated user.
func (p RateLimitPolicy) PerUser() RateLimitPolicy {
	p.Key = LimitByUser
	return p
}

// String renders the policy in the form accepted by ParseRateLimitPolicy.
func (p RateLimitPolicy) String() string {
	return fmt.Sprintf("%d/%s", p.Requests, p.Window)
}

// ParseRateLimitPolicy reads "<requests>/<window>", e.g. "30/1m" or "5/10s".
// The key strategy of base is kept; an empty string returns base unchanged.
func ParseRateLimitPolicy(s string, base RateLimitPolicy) (RateLimitPolicy, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return base, nil
	}

	count, window, ok := strings.Cut(s, "/")
	if !ok {
		return base, fmt.Errorf("rate limit %q: want <requests>/<window>", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil || n <= 0 {
		return base, fmt.Errorf("rate limit %q: requests must be a positive integer", s)
	}
	d, err := time.ParseDuration(strings.TrimSpace(window))
	if err != nil || d <= 0 {
		return base, fmt.Errorf("rate limit %q: window must be a positive duration", s)
	}

	base.Requests = n
	base.Window = d
	return base, nil
}

// RateLimit enforces p. Rejected requests get a 429 problem with
// Retry-After set to the window, since httprate does not expose the
// counter's reset time.
func RateLimit(p RateLimitPolicy) func(http.Handler) http.Handler {
	keyFunc := httprate.KeyByRealIP
	if p.Key == LimitByUser {
		keyFunc = keyByUserOrIP
	}

	return httprate.Limit(
		p.Requests,
		p.Window,
		httprate.WithKeyFuncs(keyFunc),
		httprate.WithLimitHandler(tooManyRequests(p.Window)),
	)
}

func keyByUserOrIP(r *http.Request) (string, error) {
	if userID := GetUserID(r.Context()); userID != "" {
		return "user:" + userID, nil
	}
	return httprate.KeyByRealIP(r)
}

func tooManyRequests(window time.Duration) http.HandlerFunc {
	retryAfter := strconv.Itoa(max(1, int(window.Round(time.Second).Seconds())))

	return func(w http.ResponseWriter, r *http.Request) {
		problem := models.NewTooManyRequests(GetRequestID(r.Context()), "Rate limit exceeded. Please try again later.")
		problem.Instance = r.URL.Path

		w.Header().Set("Retry-After", retryAfter)
		problem.Write(w)
	}
}
