package upload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ImportResult mirrors the server's import response without importing the
// history package (which would pull in server-side dependencies).
type ImportResult struct {
	SessionsReceived int   `json:"sessions_received"`
	SessionsInserted int   `json:"sessions_inserted"`
	SessionsSkipped  int   `json:"sessions_skipped"`
	SetsInserted     int64 `json:"sets_inserted"`
	RecordsUpdated   int   `json:"records_updated"`
}

// Client sends CSV exports to the LiftLog server.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new HTTP client for the LiftLog import endpoint.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SendCSV POSTs one CSV body to the server's import endpoint. Retries up
// to 3 times with exponential backoff on transport or server errors; 4xx
// responses fail immediately since a retry would not help.
func (c *Client) SendCSV(data []byte) (*ImportResult, error) {
	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		req, err := http.NewRequest(http.MethodPost, c.serverURL+"/api/v1/import/", bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("creating import request: %w", err)
		}
		req.Header.Set("Content-Type", "text/csv")
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			var result ImportResult
			if err := json.Unmarshal(body, &result); err != nil {
				return nil, fmt.Errorf("decoding import response: %w", err)
			}
			return &result, nil
		}
		lastErr = fmt.Errorf("import failed (status %d): %s", resp.StatusCode, body)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, lastErr
		}
	}

	return nil, fmt.Errorf("after 3 attempts: %w", lastErr)
}
