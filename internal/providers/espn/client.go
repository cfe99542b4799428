// Package espn fetches league scoreboards from the public site API and maps
// them to normalized game records.
package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sports-scoreboard/internal/domain"
	"sports-scoreboard/internal/extractor"
	"sports-scoreboard/internal/logging"
	"sports-scoreboard/internal/providers"
	"sports-scoreboard/internal/timeutil"
)

const (
	defaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports"
	defaultTimeout = 10 * time.Second
	providerName   = "espn"
)

// Config controls how the client reaches the upstream API. APIPath is the
// sport/league path segment, e.g. "basketball/nba" or "rugby-league/3".
type Config struct {
	BaseURL    string
	APIPath    string
	League     string
	Timezone   string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches one league's scoreboard and normalizes its events.
type Client struct {
	baseURL    string
	apiPath    string
	league     string
	httpClient httpDoer
	loc        *time.Location
	logger     *slog.Logger
	now        func() time.Time
}

// NewClient constructs a scoreboard client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiPath:    strings.Trim(cfg.APIPath, "/"),
		league:     cfg.League,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		loc:        resolveLocation(cfg.Timezone),
		logger:     cfg.Logger,
		now:        time.Now,
	}
}

// FetchGames retrieves the scoreboard for the given day. An empty date means
// today in the configured timezone.
func (c *Client) FetchGames(ctx context.Context, date string) ([]domain.GameRecord, error) {
	req, err := c.buildRequest(ctx, date)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("espn: fetch %s scoreboard: %w", c.league, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("espn: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var sb extractor.Scoreboard
	if err := json.NewDecoder(resp.Body).Decode(&sb); err != nil {
		return nil, fmt.Errorf("espn: decode scoreboard: %w", err)
	}

	games, skipped := extractor.ExtractGames(sb, extractor.Options{League: c.league, Location: c.loc})
	if skipped > 0 {
		logging.Debug(c.logger, "skipped malformed scoreboard events",
			logging.FieldLeague, c.league,
			logging.FieldCount, skipped)
	}
	return games, nil
}

func (c *Client) buildRequest(ctx context.Context, date string) (*http.Request, error) {
	url := fmt.Sprintf("%s/%s/scoreboard", c.baseURL, c.apiPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	if resolved := c.resolveDate(date); resolved != "" {
		q := req.URL.Query()
		q.Set("dates", resolved)
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// resolveDate converts a YYYY-MM-DD date to the compact form the scoreboard
// endpoint expects. Unparseable input falls through to the upstream default.
func (c *Client) resolveDate(date string) string {
	if date == "" {
		return timeutil.FormatScoreboardDate(c.now().In(c.loc))
	}
	parsed, err := timeutil.ParseDate(date)
	if err != nil {
		return ""
	}
	return timeutil.FormatScoreboardDate(parsed)
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(header); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}

func normalizeBaseURL(base string) string {
	if base == "" {
		return defaultBaseURL
	}
	return strings.TrimRight(base, "/")
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultTimeout}
}

func resolveLocation(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}
