package resilience

import "time"

// Breaker tuning shared by the broker and model clients
const (
	halfOpenProbes      uint32 = 3
	countWindow                = time.Minute
	openFor                    = 30 * time.Second
	consecutiveFailures uint32 = 5
	failureRatio               = 0.5
	minRequestsForRatio uint32 = 10
)

// Hosted model calls are slow and metered, so the model breaker trips after
// fewer failures and probes with a single request.
const (
	modelOpenFor             = 45 * time.Second
	modelConsecutiveFailures = 3
)

// Retry backoff
const (
	retryAttempts     = 3
	retryInitialDelay = 100 * time.Millisecond
	retryMaxDelay     = 5 * time.Second
	retryBackoff      = 2.0
)
