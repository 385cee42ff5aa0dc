// Package statsapi is the read-only client for the public MLB StatsAPI.
package statsapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dugoutlabs/dugout/internal/platform/logging"
	"github.com/dugoutlabs/dugout/internal/platform/resilience"
	"github.com/dugoutlabs/dugout/internal/usecase"
)

const (
	defaultBaseURL   = "https://statsapi.mlb.com"
	sportIDBaseball  = "1"
	leagueIDAmerican = "103"
	leagueIDNational = "104"

	maxResponseBytes = 12 << 20
)

var errStatsAPITransient = crerr.New("statsapi transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// ScheduleGames returns the schedule entries for one team on one date.
func (c *Client) ScheduleGames(ctx context.Context, teamID int64, date string) ([]usecase.ScheduledGame, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("team id must be greater than zero")
	}

	var envelope scheduleEnvelope
	query := map[string]string{
		"sportId": sportIDBaseball,
		"teamId":  strconv.FormatInt(teamID, 10),
		"date":    date,
	}
	if _, err := c.doJSON(ctx, "/api/v1/schedule", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch schedule team=%d date=%s: %w", teamID, date, err)
	}

	var out []usecase.ScheduledGame
	for _, d := range envelope.Dates {
		for _, g := range d.Games {
			if g.GamePk <= 0 {
				continue
			}
			official := g.OfficialDate
			if official == "" {
				official = d.Date
			}
			out = append(out, usecase.ScheduledGame{
				GamePk:       g.GamePk,
				OfficialDate: official,
				Status:       g.Status.DetailedState,
			})
		}
	}
	return out, nil
}

// FeedLive fetches one game's live feed and extracts the summary,
// linescore, and per-player box score rows. The raw body rides along for
// archival.
func (c *Client) FeedLive(ctx context.Context, gamePk int64) (usecase.GameFeed, error) {
	if gamePk <= 0 {
		return usecase.GameFeed{}, fmt.Errorf("game pk must be greater than zero")
	}

	var envelope feedEnvelope
	path := fmt.Sprintf("/api/v1.1/game/%d/feed/live", gamePk)
	raw, err := c.doJSON(ctx, path, nil, &envelope)
	if err != nil {
		return usecase.GameFeed{}, fmt.Errorf("fetch live feed game=%d: %w", gamePk, err)
	}

	feed := extractFeed(gamePk, envelope)
	feed.Raw = raw
	return feed, nil
}

// FetchStandings returns the current regular-season standings for both
// leagues as raw records. Each teamRecords entry is enriched with its
// parent league and division so downstream normalization sees a flat,
// self-describing record.
func (c *Client) FetchStandings(ctx context.Context) ([]map[string]any, error) {
	var envelope standingsEnvelope
	query := map[string]string{
		"leagueId":       leagueIDAmerican + "," + leagueIDNational,
		"standingsTypes": "regularSeason",
		"hydrate":        "league,division",
	}
	if _, err := c.doJSON(ctx, "/api/v1/standings", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch standings: %w", err)
	}

	var out []map[string]any
	for _, record := range envelope.Records {
		for _, tr := range record.TeamRecords {
			if tr == nil {
				continue
			}
			if _, ok := tr["league"]; !ok && record.League != nil {
				tr["league"] = record.League
			}
			if _, ok := tr["division"]; !ok && record.Division != nil {
				tr["division"] = record.Division
			}
			out = append(out, tr)
		}
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "statsapi circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isStatsAPICircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode statsapi payload: %w", err)
	}

	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errStatsAPITransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errStatsAPITransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: statsapi status=%d body=%s", errStatsAPITransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("statsapi status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("statsapi request failed")
	}
	c.logger.WarnContext(ctx, "statsapi request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isStatsAPICircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errStatsAPITransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	const limit = 256
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
