package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/claude/liftlog/internal/streak"
)

// HTTPClient implements DataSource by calling the LiftLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func dayRange(start, end string) url.Values {
	params := url.Values{}
	params.Set("start", start)
	params.Set("end", end)
	return params
}

// User scoping happens server-side via the Tailscale identity on the
// connection, so the userID arguments are ignored here.

func (c *HTTPClient) ExerciseCatalog(ctx context.Context, _ int) ([]models.Exercise, error) {
	body, err := c.get(ctx, "/api/v1/exercises", nil)
	if err != nil {
		return nil, err
	}
	var exercises []models.Exercise
	if err := json.Unmarshal(body, &exercises); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercises: %w", err)
	}
	return exercises, nil
}

func (c *HTTPClient) Sessions(ctx context.Context, _ int, start, end string) ([]models.WorkoutSession, error) {
	body, err := c.get(ctx, "/api/v1/sessions", dayRange(start, end))
	if err != nil {
		return nil, err
	}
	var sessions []models.WorkoutSession
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, fmt.Errorf("httpclient: decode sessions: %w", err)
	}
	return sessions, nil
}

func (c *HTTPClient) Sets(ctx context.Context, _ int, start, end, exerciseFilter string) ([]models.SetEntry, error) {
	params := dayRange(start, end)
	if exerciseFilter != "" {
		params.Set("exercise", exerciseFilter)
	}
	body, err := c.get(ctx, "/api/v1/sets", params)
	if err != nil {
		return nil, err
	}
	var sets []models.SetEntry
	if err := json.Unmarshal(body, &sets); err != nil {
		return nil, fmt.Errorf("httpclient: decode sets: %w", err)
	}
	return sets, nil
}

func (c *HTTPClient) PersonalRecords(ctx context.Context, _ int) ([]models.PersonalRecord, error) {
	body, err := c.get(ctx, "/api/v1/records", nil)
	if err != nil {
		return nil, err
	}
	var recs []models.PersonalRecord
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fmt.Errorf("httpclient: decode records: %w", err)
	}
	return recs, nil
}

func (c *HTTPClient) Streaks(ctx context.Context, _ int) (*streak.Stats, error) {
	body, err := c.get(ctx, "/api/v1/stats/streaks", nil)
	if err != nil {
		return nil, err
	}
	var stats streak.Stats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode streaks: %w", err)
	}
	return &stats, nil
}

func (c *HTTPClient) TrainingVolume(ctx context.Context, _ int, start, end, bucket string) ([]storage.VolumePeriod, error) {
	params := dayRange(start, end)
	params.Set("bucket", bucket)
	body, err := c.get(ctx, "/api/v1/stats/volume", params)
	if err != nil {
		return nil, err
	}
	var periods []storage.VolumePeriod
	if err := json.Unmarshal(body, &periods); err != nil {
		return nil, fmt.Errorf("httpclient: decode volume: %w", err)
	}
	return periods, nil
}
