package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the programmes catalog queried when no override is
// configured.
const DefaultBaseURL = "https://www.bbc.co.uk/programmes"

const fetchTimeout = 10 * time.Second

// Client performs single synchronous lookups against the catalog. One
// failure is final; the enricher falls back to local metadata instead of
// retrying.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{Timeout: fetchTimeout},
		baseURL:    baseURL,
		userAgent:  userAgent,
	}
}

// Fetch retrieves the raw JSON payload for a programme ID.
func (c *Client) Fetch(ctx context.Context, programID string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s.json", c.baseURL, programID)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch programme %s: %w", programID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned HTTP %d for programme %s", resp.StatusCode, programID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}

	return body, nil
}
