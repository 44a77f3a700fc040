package footballdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/liveticker/internal/platform/logging"
	"github.com/riskibarqy/liveticker/internal/platform/resilience"
	"github.com/riskibarqy/liveticker/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL = "https://api.football-data.org/v4"
	defaultTimeout = 20 * time.Second
)

var errFootballDataTransient = crerr.New("football-data transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
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
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker("football-data", breakerCfg, resilience.WithLogger(logger)),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchMatches(ctx context.Context, competitionCode string, season int) (usecase.ExternalMatchList, error) {
	path := "/competitions/" + url.PathEscape(strings.ToUpper(competitionCode)) + "/matches"

	var payload matchesEnvelope
	if err := c.doJSON(ctx, path, seasonQuery(season), &payload); err != nil {
		return usecase.ExternalMatchList{}, fmt.Errorf("fetch matches competition=%s season=%d: %w", competitionCode, season, err)
	}
	return payload.toExternal(), nil
}

func (c *Client) FetchStandings(ctx context.Context, competitionCode string, season int) ([]usecase.ExternalStandingTable, error) {
	path := "/competitions/" + url.PathEscape(strings.ToUpper(competitionCode)) + "/standings"

	var payload standingsEnvelope
	if err := c.doJSON(ctx, path, seasonQuery(season), &payload); err != nil {
		return nil, fmt.Errorf("fetch standings competition=%s season=%d: %w", competitionCode, season, err)
	}
	return payload.toExternal(), nil
}

func seasonQuery(season int) url.Values {
	query := url.Values{}
	if season > 0 {
		query.Set("season", strconv.Itoa(season))
	}
	return query
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	if c.token == "" {
		return fmt.Errorf("%w: FOOTBALL_DATA_TOKEN is required", usecase.ErrDependencyUnavailable)
	}
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: fixture data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errFootballDataTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	return decodePayload(raw, target)
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Auth-Token", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Wrapf(errFootballDataTransient, "send request: %s", sanitizeSensitiveText(err.Error(), c.token))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
	if err != nil {
		return nil, crerr.Wrapf(errFootballDataTransient, "read response body: %v", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: provider status=%d body=%s", usecase.ErrNotFound, resp.StatusCode, abbreviateBody(raw))
	case isTransientStatus(resp.StatusCode):
		c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "status", resp.StatusCode)
		return nil, crerr.Wrapf(errFootballDataTransient, "provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	default:
		c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "status", resp.StatusCode)
		return nil, crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	}
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return value
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
