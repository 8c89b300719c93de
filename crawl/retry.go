package crawl

import (
	"context"
	"time"
)

// FetchFunc is the signature for a fetch function. It returns the
// rendered HTML and the final URL after redirects.
type FetchFunc func(ctx context.Context, url string) (html string, finalURL string, err error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// BackoffDelays returns n exponential backoff delays starting at 1s.
// n <= 0 yields an empty (non-nil) slice, meaning a single attempt.
func BackoffDelays(n int) []time.Duration {
	if n <= 0 {
		return []time.Duration{}
	}
	delays := make([]time.Duration, n)
	d := 1 * time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// FetchWithRetryDelays attempts to fetch a URL, retrying with the
// given backoff delays between attempts (len(delays)+1 attempts in
// total). The logger function, if provided, is called for each retry.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, finalURL, err := fetch(ctx, url)
		if err == nil {
			return html, finalURL, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return "", "", ctx.Err()
		default:
		}

		if logger != nil {
			logger("  retry %s (attempt %d): %v", url, attempt+2, err)
		}

		// Wait before next attempt
		select {
		case <-ctx.Done():
			return "", "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", "", lastErr
}
