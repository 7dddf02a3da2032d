package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"arbmonitor-service/internal/domain"

	"github.com/cenkalti/backoff/v4"
)

// Client is the shared JSON GET client for venue adapters. Transient
// failures (network errors, 5xx) are retried with exponential backoff
// within the caller's deadline; 4xx responses and undecodable bodies
// are permanent. Errors carry the venue error taxonomy: unreachable or
// non-success responses unwrap to domain.ErrSourceUnavailable,
// unparseable bodies to domain.ErrSourceProtocol.
type Client struct {
	HTTP *http.Client
}

func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	if c.HTTP == nil {
		c.HTTP = http.DefaultClient
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 1 * time.Second
	exp.MaxElapsedTime = 3 * time.Second

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		resp, err := c.HTTP.Do(req)
		if err != nil {
			return fmt.Errorf("do request: %v: %w", err, domain.ErrSourceUnavailable)
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return fmt.Errorf("status %d: %w", resp.StatusCode, domain.ErrSourceUnavailable)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("status %d: %w", resp.StatusCode, domain.ErrSourceUnavailable))
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %v: %w", err, domain.ErrSourceProtocol))
		}
		return nil
	}
	return backoff.Retry(op, backoff.WithContext(exp, ctx))
}
