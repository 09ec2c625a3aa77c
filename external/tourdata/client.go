package tourdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/djboulia/fantasygolf/internal/domain/game"
	"github.com/djboulia/fantasygolf/internal/domain/scoring"
	"github.com/djboulia/fantasygolf/internal/platform/cache"
	"github.com/djboulia/fantasygolf/internal/platform/logging"
	"github.com/djboulia/fantasygolf/internal/usecase"
)

const (
	defaultBaseURL  = "http://tourdata.mybluemix.net/api"
	defaultTimeout  = 20 * time.Second
	defaultCacheTTL = 5 * time.Minute
)

var errTourDataTransient = crerr.New("tourdata transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	CacheTTL   time.Duration
	Logger     *logging.Logger
}

// Client fetches scoring, schedule, and world-ranking data from the tour
// data feed. Every call routes through one shared URL-keyed TTL cache with
// in-flight de-duplication, so repeated requests for the same tournament
// within the cache window cost nothing.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	logger     *logging.Logger
	store      *cache.Store[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
		store:      cache.NewStore[[]byte](cacheTTL, nil),
	}
}

// Season scopes the client to one (year, tour) pair.
func (c *Client) Season(year int, tour string) *SeasonClient {
	return &SeasonClient{client: c, year: year, tour: tour}
}

type SeasonClient struct {
	client *Client
	year   int
	tour   string
}

// GetEvent fetches live scoring for one tournament of the season.
func (s *SeasonClient) GetEvent(ctx context.Context, eventID string) (*scoring.EventScoring, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, fmt.Errorf("event id is required")
	}

	fullURL := fmt.Sprintf("%s/games/%d/tour/%s/event/%s",
		s.client.baseURL, s.year, url.PathEscape(s.tour), url.PathEscape(eventID))

	var envelope eventEnvelope
	if err := s.client.doJSON(ctx, fullURL, &envelope); err != nil {
		return nil, fmt.Errorf("fetch event %s: %w", eventID, err)
	}

	out := &scoring.EventScoring{
		EventID: firstNonEmpty(envelope.EventID, envelope.ID, eventID),
		Name:    envelope.Name,
		Start:   parseFeedDateTime(firstNonEmpty(envelope.Start, envelope.StartDate)),
		End:     parseFeedDateTime(firstNonEmpty(envelope.End, envelope.EndDate)),
		Scores:  make([]scoring.PlayerScore, 0, len(envelope.Scores)),
	}
	for _, item := range envelope.Scores {
		playerID := firstNonEmpty(item.PlayerID, item.ID)
		if playerID == "" && strings.TrimSpace(item.Name) == "" {
			continue
		}
		out.Scores = append(out.Scores, scoring.PlayerScore{
			PlayerID: playerID,
			Name:     strings.TrimSpace(item.Name),
			Pos:      strings.TrimSpace(item.Pos),
			Total:    intOrZero(item.Total),
			Thru:     intOrZero(item.Thru),
		})
	}

	return out, nil
}

// GetSchedule fetches the season's tournament schedule.
func (s *SeasonClient) GetSchedule(ctx context.Context) ([]game.ScheduleEntry, error) {
	fullURL := fmt.Sprintf("%s/tournaments/search?tour=%s&year=%s",
		s.client.baseURL, url.QueryEscape(s.tour), url.QueryEscape(strconv.Itoa(s.year)))

	var items []tournamentItem
	if err := s.client.doJSON(ctx, fullURL, &items); err != nil {
		return nil, fmt.Errorf("fetch schedule tour=%s year=%d: %w", s.tour, s.year, err)
	}

	out := make([]game.ScheduleEntry, 0, len(items))
	for _, item := range items {
		id := firstNonEmpty(item.TournamentID, item.ID)
		if id == "" {
			continue
		}
		out = append(out, game.ScheduleEntry{
			ID:    id,
			Name:  strings.TrimSpace(item.Name),
			Start: parseFeedDateTime(firstNonEmpty(item.Start, item.StartDate)),
			End:   parseFeedDateTime(firstNonEmpty(item.End, item.EndDate)),
		})
	}

	return out, nil
}

// GetRankings fetches the season's world golf rankings.
func (s *SeasonClient) GetRankings(ctx context.Context) ([]scoring.RankedPlayer, error) {
	fullURL := fmt.Sprintf("%s/rankings/search?tour=%s&year=%s",
		s.client.baseURL, url.QueryEscape(s.tour), url.QueryEscape(strconv.Itoa(s.year)))

	var items []rankingItem
	if err := s.client.doJSON(ctx, fullURL, &items); err != nil {
		return nil, fmt.Errorf("fetch rankings tour=%s year=%d: %w", s.tour, s.year, err)
	}

	out := make([]scoring.RankedPlayer, 0, len(items))
	for _, item := range items {
		playerID := firstNonEmpty(item.PlayerID, item.ID)
		if playerID == "" && strings.TrimSpace(item.Name) == "" {
			continue
		}
		out = append(out, scoring.RankedPlayer{
			PlayerID: playerID,
			Name:     strings.TrimSpace(item.Name),
			Rank:     intOrZero(item.Rank),
		})
	}

	return out, nil
}

func (c *Client) doJSON(ctx context.Context, fullURL string, target any) error {
	raw, err := c.store.GetOrLoad(ctx, fullURL, func(ctx context.Context) ([]byte, error) {
		return c.executeRequest(ctx, fullURL)
	})
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		// an unparsable body is a hard failure; absent fields are not
		return fmt.Errorf("%w: decode feed payload: %v", usecase.ErrUpstreamUnavailable, err)
	}

	return nil
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
			lastErr = crerr.Wrapf(errTourDataTransient, "send request: %v", err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = crerr.Wrapf(errTourDataTransient, "read response body: %v", readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = crerr.Wrapf(errTourDataTransient, "feed status=%d", resp.StatusCode)
			} else {
				return nil, fmt.Errorf("%w: feed status=%d", usecase.ErrUpstreamUnavailable, resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("feed request failed")
	}
	c.logger.WarnContext(ctx, "tourdata request failed", "url", fullURL, "error", lastErr)
	return nil, fmt.Errorf("%w: %v", usecase.ErrUpstreamUnavailable, lastErr)
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
