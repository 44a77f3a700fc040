package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/liveticker/internal/platform/logging"
)

// Config stores runtime configuration for the CLI and the scheduler.
type Config struct {
	AppEnv                        string
	ServiceName                   string
	ServiceVersion                string
	LogLevel                      logging.Level
	LogFormat                     string
	DataDir                       string
	FootballDataBaseURL           string
	FootballDataToken             string
	FootballDataTimeout           time.Duration
	FootballDataOutputs           map[string]string
	FootballDataLabels            map[string]string
	ESPNBaseURL                   string
	ESPNTimeout                   time.Duration
	ESPNLeagues                   map[string]string
	UpstreamCircuitEnabled        bool
	UpstreamCircuitFailureCount   int
	UpstreamCircuitOpenTimeout    time.Duration
	UpstreamCircuitHalfOpenMaxReq int
	ReconcileFetchConcurrency     int
	NewsOutputFile                string
	NewsArticlesPerCategory       int
	FeedTimeout                   time.Duration
	FeedWorkers                   int
	FeedsFile                     string
	HTTPUserAgent                 string
	HistoryLogFile                string
	HistoryCount                  int
	HistoryLogLimit               int
	HistoryPreModernYear          int
	ScheduleTimezone              string
	ScheduleNewsCron              string
	ScheduleHistoryCron           string
	ScheduleReconcileCron         string
	ScheduleReconcileCompetitions []string
	RunOnce                       bool
	UptraceEnabled                bool
	UptraceDSN                    string
	PyroscopeEnabled              bool
	PyroscopeServerAddress        string
	PyroscopeAppName              string
	PyroscopeAuthToken            string
	PyroscopeUploadRate           time.Duration
}

// LoadDotEnv reads KEY=VALUE files into the process environment. Missing files are
// skipped and variables that are already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logFormatDefault := logging.FormatConsole
	if appEnv == EnvProd {
		logFormatDefault = logging.FormatJSON
	}
	logFormat := strings.ToLower(strings.TrimSpace(getEnv("APP_LOG_FORMAT", logFormatDefault)))
	if logFormat != logging.FormatJSON && logFormat != logging.FormatConsole {
		return Config{}, fmt.Errorf("invalid APP_LOG_FORMAT %q: valid values are %s, %s", logFormat, logging.FormatJSON, logging.FormatConsole)
	}

	footballDataTimeout, err := getEnvAsPositiveDuration("FOOTBALL_DATA_TIMEOUT", "20s")
	if err != nil {
		return Config{}, err
	}
	footballDataOutputs, err := parseStringMap(getEnv("FOOTBALL_DATA_OUTPUT_MAP",
		"CL:cl-football-data.json,PL:pl-football-data.json,PD:laliga-football-data.json"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_OUTPUT_MAP: %w", err)
	}
	footballDataLabels, err := parseStringMap(getEnv("FOOTBALL_DATA_LABEL_MAP", ""))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_LABEL_MAP: %w", err)
	}

	espnTimeout, err := getEnvAsPositiveDuration("ESPN_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	espnLeagues, err := parseStringMap(getEnv("ESPN_LEAGUE_MAP", "CL:uefa.champions,PD:esp.1,PL:eng.1"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_LEAGUE_MAP: %w", err)
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("UPSTREAM_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsMinInt("UPSTREAM_CIRCUIT_FAILURE_COUNT", 5, 1)
	if err != nil {
		return Config{}, err
	}
	circuitOpenTimeout, err := getEnvAsPositiveDuration("UPSTREAM_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	circuitHalfOpenMaxReq, err := getEnvAsMinInt("UPSTREAM_CIRCUIT_HALF_OPEN_MAX_REQ", 2, 1)
	if err != nil {
		return Config{}, err
	}
	reconcileConcurrency, err := getEnvAsMinInt("RECONCILE_FETCH_CONCURRENCY", 4, 1)
	if err != nil {
		return Config{}, err
	}

	articlesPerCategory, err := getEnvAsMinInt("NEWS_ARTICLES_PER_CATEGORY", 30, 1)
	if err != nil {
		return Config{}, err
	}
	feedTimeout, err := getEnvAsPositiveDuration("FEED_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	feedWorkers, err := getEnvAsMinInt("FEED_WORKERS", 8, 1)
	if err != nil {
		return Config{}, err
	}

	historyCount, err := getEnvAsMinInt("HISTORY_COUNT", 5, 1)
	if err != nil {
		return Config{}, err
	}
	historyLogLimit, err := getEnvAsMinInt("HISTORY_LOG_LIMIT", 500, 1)
	if err != nil {
		return Config{}, err
	}
	historyPreModernYear, err := getEnvAsInt("HISTORY_PRE_MODERN_YEAR", 1800)
	if err != nil {
		return Config{}, fmt.Errorf("parse HISTORY_PRE_MODERN_YEAR: %w", err)
	}

	scheduleTimezone := strings.TrimSpace(getEnv("SCHEDULE_TIMEZONE", "Europe/Berlin"))
	if _, err := time.LoadLocation(scheduleTimezone); err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULE_TIMEZONE: %w", err)
	}
	runOnce, err := strconv.ParseBool(getEnv("RUN_ONCE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RUN_ONCE: %w", err)
	}
	reconcileCron := strings.TrimSpace(getEnv("SCHEDULE_RECONCILE_CRON", ""))
	reconcileCompetitions := upperAll(splitCSV(getEnv("SCHEDULE_RECONCILE_COMPETITIONS", "CL")))
	if reconcileCron != "" && len(reconcileCompetitions) == 0 {
		return Config{}, fmt.Errorf("SCHEDULE_RECONCILE_COMPETITIONS cannot be empty when SCHEDULE_RECONCILE_CRON is set")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                        appEnv,
		ServiceName:                   getEnv("APP_SERVICE_NAME", "liveticker"),
		ServiceVersion:                getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:                      logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:                     logFormat,
		DataDir:                       strings.TrimSpace(getEnv("DATA_DIR", "liveticker/public/data")),
		FootballDataBaseURL:           strings.TrimSpace(getEnv("FOOTBALL_DATA_BASE_URL", "https://api.football-data.org/v4")),
		FootballDataToken:             strings.TrimSpace(getEnv("FOOTBALL_DATA_TOKEN", "")),
		FootballDataTimeout:           footballDataTimeout,
		FootballDataOutputs:           footballDataOutputs,
		FootballDataLabels:            footballDataLabels,
		ESPNBaseURL:                   strings.TrimSpace(getEnv("ESPN_BASE_URL", "https://site.api.espn.com/apis/site/v2/sports/soccer")),
		ESPNTimeout:                   espnTimeout,
		ESPNLeagues:                   espnLeagues,
		UpstreamCircuitEnabled:        circuitEnabled,
		UpstreamCircuitFailureCount:   circuitFailureCount,
		UpstreamCircuitOpenTimeout:    circuitOpenTimeout,
		UpstreamCircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,
		ReconcileFetchConcurrency:     reconcileConcurrency,
		NewsOutputFile:                strings.TrimSpace(getEnv("NEWS_OUTPUT_FILE", "news.json")),
		NewsArticlesPerCategory:       articlesPerCategory,
		FeedTimeout:                   feedTimeout,
		FeedWorkers:                   feedWorkers,
		FeedsFile:                     strings.TrimSpace(getEnv("FEEDS_FILE", "")),
		HTTPUserAgent:                 strings.TrimSpace(getEnv("HTTP_USER_AGENT", "liveticker/1.0 (+https://github.com/riskibarqy/liveticker)")),
		HistoryLogFile:                strings.TrimSpace(getEnv("HISTORY_LOG_FILE", "history_log.json")),
		HistoryCount:                  historyCount,
		HistoryLogLimit:               historyLogLimit,
		HistoryPreModernYear:          historyPreModernYear,
		ScheduleTimezone:              scheduleTimezone,
		ScheduleNewsCron:              strings.TrimSpace(getEnv("SCHEDULE_NEWS_CRON", "0 6-22/4 * * *")),
		ScheduleHistoryCron:           strings.TrimSpace(getEnv("SCHEDULE_HISTORY_CRON", "0 10 * * *")),
		ScheduleReconcileCron:         reconcileCron,
		ScheduleReconcileCompetitions: reconcileCompetitions,
		RunOnce:                       runOnce,
		UptraceEnabled:                uptraceEnabled,
		UptraceDSN:                    uptraceDSN,
		PyroscopeEnabled:              pyroscopeEnabled,
		PyroscopeServerAddress:        pyroscopeServerAddress,
		PyroscopeAuthToken:            strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:           pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if cfg.DataDir == "" {
		return Config{}, fmt.Errorf("DATA_DIR cannot be empty")
	}
	if cfg.NewsOutputFile == "" {
		return Config{}, fmt.Errorf("NEWS_OUTPUT_FILE cannot be empty")
	}
	if cfg.HistoryLogFile == "" {
		return Config{}, fmt.Errorf("HISTORY_LOG_FILE cannot be empty")
	}

	return cfg, nil
}

// Location returns the scheduler time zone; Load already rejected unknown zones.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ScheduleTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsMinInt(key string, fallback, minimum int) (int, error) {
	value, err := getEnvAsInt(key, fallback)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value < minimum {
		return 0, fmt.Errorf("%s must be >= %d", key, minimum)
	}
	return value, nil
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func upperAll(values []string) []string {
	for i, value := range values {
		values[i] = strings.ToUpper(value)
	}
	return values
}

// parseStringMap reads "CODE:value" pairs separated by commas. Codes are upper-cased.
func parseStringMap(raw string) (map[string]string, error) {
	out := make(map[string]string)
	for _, item := range splitCSV(raw) {
		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return nil, fmt.Errorf("invalid map item %q, expected code:value", item)
		}

		key := strings.ToUpper(strings.TrimSpace(segments[0]))
		if key == "" {
			return nil, fmt.Errorf("empty competition code in item %q", item)
		}
		value := strings.TrimSpace(segments[1])
		if value == "" {
			return nil, fmt.Errorf("empty value in item %q", item)
		}

		out[key] = value
	}
	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
