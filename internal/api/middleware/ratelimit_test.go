package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packwise/packwise/internal/api/middleware"
)

var allowAll = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

type tokenTable map[string]string

func (t tokenTable) Authenticate(token string) (string, error) {
	if user, ok := t[token]; ok {
		return user, nil
	}
	return "", errors.New("unknown token")
}

func hit(t *testing.T, h http.Handler, remoteAddr, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/plans", http.NoBody)
	req.RemoteAddr = remoteAddr
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_ByIP(t *testing.T) {
	h := middleware.RateLimit(middleware.RateLimitPolicy{Requests: 3, Window: time.Minute})(allowAll)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(t, h, "10.0.0.1:1000", "").Code, "request %d", i+1)
	}

	rec := hit(t, h, "10.0.0.1:1000", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, hit(t, h, "10.0.0.2:1000", "").Code, "other clients keep their budget")
}

func TestRateLimit_ByUserAcrossAddresses(t *testing.T) {
	policy := middleware.RateLimitPolicy{Requests: 2, Window: time.Minute}.PerUser()
	h := middleware.Auth(tokenTable{"tok-a": "user-a", "tok-b": "user-b"})(
		middleware.RateLimit(policy)(allowAll),
	)

	assert.Equal(t, http.StatusOK, hit(t, h, "192.0.2.1:1", "tok-a").Code)
	assert.Equal(t, http.StatusOK, hit(t, h, "192.0.2.2:1", "tok-a").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(t, h, "192.0.2.3:1", "tok-a").Code,
		"a user's budget follows them between addresses")

	assert.Equal(t, http.StatusOK, hit(t, h, "192.0.2.1:1", "tok-b").Code,
		"users sharing an address are counted separately")
}

func TestRateLimit_ByUserFallsBackToIP(t *testing.T) {
	h := middleware.RateLimit(middleware.RateLimitPolicy{Requests: 1, Window: time.Minute}.PerUser())(allowAll)

	assert.Equal(t, http.StatusOK, hit(t, h, "198.51.100.1:1", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(t, h, "198.51.100.1:1", "").Code)
	assert.Equal(t, http.StatusOK, hit(t, h, "198.51.100.2:1", "").Code)
}

func TestRateLimit_ProblemResponse(t *testing.T) {
	h := middleware.RequestID(
		middleware.RateLimit(middleware.RateLimitPolicy{Requests: 1, Window: 10 * time.Second})(allowAll),
	)

	require.Equal(t, http.StatusOK, hit(t, h, "203.0.113.1:1", "").Code)
	rec := hit(t, h, "203.0.113.1:1", "")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "10", rec.Header().Get("Retry-After"))

	body := rec.Body.String()
	assert.Contains(t, body, "too-many-requests")
	assert.Contains(t, body, "Rate limit exceeded")
	assert.Contains(t, body, `"instance":"/v1/plans"`)
	assert.Contains(t, body, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRateLimit_SubSecondWindowRetryAfter(t *testing.T) {
	h := middleware.RateLimit(middleware.RateLimitPolicy{Requests: 1, Window: 200 * time.Millisecond})(allowAll)

	hit(t, h, "203.0.113.9:1", "")
	rec := hit(t, h, "203.0.113.9:1", "")

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestBuiltInPolicies(t *testing.T) {
	assert.Equal(t, "30/1m0s", middleware.GeneratePolicy.String())
	assert.Equal(t, "100/1m0s", middleware.StandardPolicy.String())
	assert.Equal(t, middleware.LimitByIP, middleware.StandardPolicy.Key)
	assert.Equal(t, middleware.LimitByUser, middleware.StandardPolicy.PerUser().Key)
	assert.Equal(t, middleware.LimitByIP, middleware.StandardPolicy.Key, "PerUser does not mutate the original")
}

func TestParseRateLimitPolicy(t *testing.T) {
	base := middleware.StandardPolicy.PerUser()

	tests := []struct {
		in       string
		requests int
		window   time.Duration
		wantErr  bool
	}{
		{"", 100, time.Minute, false},
		{"30/1m", 30, time.Minute, false},
		{" 5 / 10s ", 5, 10 * time.Second, false},
		{"30", 100, time.Minute, true},
		{"0/1m", 100, time.Minute, true},
		{"x/1m", 100, time.Minute, true},
		{"10/forever", 100, time.Minute, true},
		{"10/-1s", 100, time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := middleware.ParseRateLimitPolicy(tt.in, base)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.requests, got.Requests)
			assert.Equal(t, tt.window, got.Window)
			assert.Equal(t, middleware.LimitByUser, got.Key)
		})
	}
}
