package hn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pders01/hnstories/internal/config"
	"github.com/pders01/hnstories/internal/debuglog"
)

// ErrStatus is wrapped by Search when the service answers with a non-2xx code.
var ErrStatus = errors.New("unexpected status")

type Client struct {
	client    *http.Client
	userAgent string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		client: &http.Client{
			Timeout: cfg.API.HTTPTimeout,
		},
		userAgent: cfg.API.UserAgent,
	}
}

// Search performs a GET against a fully built search URL and decodes the hits.
func (c *Client) Search(ctx context.Context, rawURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching stories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		debuglog.WithFields(map[string]interface{}{"url": rawURL, "status": resp.StatusCode}).
			Warnf("search request rejected")
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if result.Hits == nil {
		return nil, fmt.Errorf("decoding response: missing hits")
	}

	debuglog.Debugf("search %s: %d hits in %s", rawURL, len(result.Hits), time.Since(start))
	return &result, nil
}
