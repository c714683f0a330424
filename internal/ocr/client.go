// Package ocr is the client for the remote receipt-scan service. The service
// does all image understanding; this client only ships bytes and guards the
// call with a circuit breaker and retry so a flaky scanner cannot stall
// expense entry.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// ErrUnavailable is returned when the scan service cannot be reached, the
// circuit is open, or retries are exhausted.
var ErrUnavailable = errors.New("receipt scan service unavailable")

const (
	defaultTimeout = 15 * time.Second
	maxRetries     = 2
	initialBackoff = 200 * time.Millisecond
)

// ScanResult is the draft data extracted from a receipt image.
type ScanResult struct {
	Merchant string `json:"merchant"`
	Total    string `json:"total"`
	Date     string `json:"date"`
	Category string `json:"category"`
}

// Client calls the remote OCR service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "receipt-ocr",
			MaxRequests: 3,                // half-open: allow 3 requests
			Interval:    30 * time.Second, // closed: reset counters every 30s
			Timeout:     10 * time.Second, // open -> half-open after 10s
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 5 && failureRatio >= 0.6
			},
		}),
	}
}

// Scan submits an image to the scan service and returns the extracted draft.
// Retries with exponential backoff and jitter; each attempt goes through the
// circuit breaker so a dead service trips fast.
func (c *Client) Scan(ctx context.Context, image []byte, contentType string) (*ScanResult, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := c.breaker.Execute(func() (interface{}, error) {
			return c.scanOnce(ctx, image, contentType)
		})
		if err == nil {
			return result.(*ScanResult), nil
		}
		lastErr = err

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			break
		}

		if attempt < maxRetries {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * initialBackoff
			jitter := time.Duration(rand.Int63n(int64(backoff / 2)))

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}
	}

	log.Warn().Err(lastErr).Msg("Receipt scan failed after retries")
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (c *Client) scanOnce(ctx context.Context, image []byte, contentType string) (*ScanResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scan", bytes.NewReader(image))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("scan service returned %d: %s", resp.StatusCode, body)
	}

	var result ScanResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode scan response: %w", err)
	}
	return &result, nil
}
