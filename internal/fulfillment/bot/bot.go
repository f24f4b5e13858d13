// Package bot talks to the external Fortnite gift bot over HTTP.
package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/perezbrayan/tienda/internal/fulfillment"
	"github.com/perezbrayan/tienda/internal/utils"
)

const sendGiftPath = "/bot2/api/send-gift"

var ErrBotUnavailable = errors.New("gift bot unavailable")

type Client struct {
	BaseURL     string
	HTTPClient  *http.Client
	MaxAttempts int
	Backoff     time.Duration
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		HTTPClient:  utils.NewHTTPClient(timeout),
		MaxAttempts: 3,
		Backoff:     500 * time.Millisecond,
	}
}

// SendGift posts the gift request to the bot. Network errors and 5xx
// responses are retried with exponential backoff; a 4xx response is final
// since retrying the same payload cannot succeed.
func (c *Client) SendGift(ctx context.Context, req fulfillment.GiftRequest) (*fulfillment.GiftResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	backoff := c.Backoff
	var lastErr error
	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		result, retryable, err := c.send(ctx, body)
		if err == nil {
			return result, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: %v", ErrBotUnavailable, lastErr)
}

func (c *Client) send(ctx context.Context, body []byte) (*fulfillment.GiftResult, bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+sendGiftPath, bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("bot returned status %d: %s", resp.StatusCode, respBody)
	case resp.StatusCode >= 400:
		return nil, false, fmt.Errorf("bot rejected gift (status %d): %s", resp.StatusCode, respBody)
	}

	return &fulfillment.GiftResult{Raw: respBody}, false, nil
}
