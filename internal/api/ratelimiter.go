package api

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

type requestLimiter interface {
	Allow() bool
}

// tokenBucket throttles API requests to a steady rate with bursts.
type tokenBucket struct {
	limiter *rate.Limiter
}

// newTokenBucket returns nil when rps or burst is not positive, meaning the
// API is not throttled.
func newTokenBucket(rps float64, burst int) *tokenBucket {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	return &tokenBucket{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (b *tokenBucket) Allow() bool {
	return b.limiter.Allow()
}

// RetryAfter is the time until the next token is available.
func (b *tokenBucket) RetryAfter() time.Duration {
	return time.Duration(float64(time.Second) / float64(b.limiter.Limit()))
}

// throttle rejects requests the limiter denies with 429 and a Retry-After
// header in whole seconds.
func throttle(l requestLimiter) func(http.Handler) http.Handler {
	retryAfter := "1"
	if rl, ok := l.(interface{ RetryAfter() time.Duration }); ok {
		retryAfter = strconv.Itoa(max(1, int(math.Ceil(rl.RetryAfter().Seconds()))))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				w.Header().Set("Retry-After", retryAfter)
				writeError(w, http.StatusTooManyRequests, "Too many requests", "property API rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
