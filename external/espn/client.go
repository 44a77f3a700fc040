package espn

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/liveticker/internal/domain/fixture"
	"github.com/riskibarqy/liveticker/internal/platform/logging"
	"github.com/riskibarqy/liveticker/internal/platform/resilience"
	"github.com/riskibarqy/liveticker/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports/soccer"
	defaultTimeout = 15 * time.Second
)

var errESPNTransient = crerr.New("espn transient failure")

var defaultLeagues = map[string]string{
	"CL": "uefa.champions",
	"PD": "esp.1",
	"PL": "eng.1",
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Leagues        map[string]string
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads finished matches from the public ESPN scoreboard.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	leagues        map[string]string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         singleflight.Group
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
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	leagues := make(map[string]string, len(defaultLeagues)+len(cfg.Leagues))
	for code, slug := range defaultLeagues {
		leagues[code] = slug
	}
	for code, slug := range cfg.Leagues {
		code = strings.ToUpper(strings.TrimSpace(code))
		slug = strings.TrimSpace(slug)
		if code == "" || slug == "" {
			continue
		}
		leagues[code] = slug
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		leagues:        leagues,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker("espn", breakerCfg, resilience.WithLogger(logger)),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchResults returns the finished matches ESPN lists for one competition and calendar date.
func (c *Client) FetchResults(ctx context.Context, competitionCode, date string) ([]fixture.ExternalResult, error) {
	code := strings.ToUpper(strings.TrimSpace(competitionCode))
	league, ok := c.leagues[code]
	if !ok {
		return nil, fmt.Errorf("%w: no scoreboard league configured for competition=%s", usecase.ErrInvalidInput, code)
	}
	isoDate, ok := fixture.NormalizeDate(date)
	if !ok {
		return nil, fmt.Errorf("%w: invalid date=%q", usecase.ErrInvalidInput, date)
	}

	query := url.Values{}
	query.Set("lang", "de")
	query.Set("region", "de")
	query.Set("dates", strings.ReplaceAll(isoDate, "-", ""))

	raw, err := c.doRequest(ctx, "/"+league+"/scoreboard", query)
	if err != nil {
		return nil, fmt.Errorf("fetch scoreboard competition=%s date=%s: %w", code, isoDate, err)
	}

	board, err := decodeScoreboard(raw)
	if err != nil {
		return nil, err
	}
	return board.completedResults(), nil
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: results provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errESPNTransient) {
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
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "espn request failed", "url", fullURL, "error", err)
		return nil, crerr.Wrapf(errESPNTransient, "send request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
	if err != nil {
		return nil, crerr.Wrapf(errESPNTransient, "read response body: %v", err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	c.logger.WarnContext(ctx, "espn request failed", "url", fullURL, "status", resp.StatusCode)
	if isTransientStatus(resp.StatusCode) {
		return nil, crerr.Wrapf(errESPNTransient, "provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	}
	return nil, crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
}

func isTransientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
