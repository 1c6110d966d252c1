package fetcher

import (
	"math"
	"net/http"
	"time"
)

const (
	forbiddenBaseDelay = 600 * time.Millisecond
	blockingBaseDelay  = 1 * time.Second
	maxRetryDelay      = 4 * time.Second
)

// RetryDelay is the wait before retry number attempt (zero based) after a
// blocking status
func RetryDelay(statusCode int, attempt int) time.Duration {
	base := blockingBaseDelay
	if statusCode == http.StatusForbidden {
		base = forbiddenBaseDelay
	}
	if attempt < 0 {
		attempt = 0
	}

	delay := time.Duration(float64(base) * math.Pow(2, float64(attempt)))
	if delay > maxRetryDelay || delay <= 0 {
		return maxRetryDelay
	}

	return delay
}

// blockingBackOff implements backoff.BackOff using the status of the last
// blocked response
type blockingBackOff struct {
	lastStatus int
	attempt    int
}

func (b *blockingBackOff) NextBackOff() time.Duration {
	delay := RetryDelay(b.lastStatus, b.attempt)
	b.attempt++

	return delay
}

func (b *blockingBackOff) Reset() {
	b.attempt = 0
}
