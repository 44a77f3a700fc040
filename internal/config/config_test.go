package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/liveticker/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_LOG_FORMAT", "")
	t.Setenv("FOOTBALL_DATA_OUTPUT_MAP", "")
	t.Setenv("ESPN_LEAGUE_MAP", "")
	t.Setenv("SCHEDULE_TIMEZONE", "")
	t.Setenv("SCHEDULE_NEWS_CRON", "")
	t.Setenv("HISTORY_COUNT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogFormat != logging.FormatConsole {
		t.Fatalf("expected console log format in dev, got %q", cfg.LogFormat)
	}
	if cfg.FootballDataOutputs["PD"] != "laliga-football-data.json" {
		t.Fatalf("unexpected default outputs: %v", cfg.FootballDataOutputs)
	}
	if cfg.ESPNLeagues["CL"] != "uefa.champions" {
		t.Fatalf("unexpected default leagues: %v", cfg.ESPNLeagues)
	}
	if cfg.ScheduleNewsCron != "0 6-22/4 * * *" {
		t.Fatalf("unexpected news cron: %q", cfg.ScheduleNewsCron)
	}
	if cfg.HistoryCount != 5 || cfg.HistoryLogLimit != 500 || cfg.HistoryPreModernYear != 1800 {
		t.Fatalf("unexpected history defaults: %d/%d/%d", cfg.HistoryCount, cfg.HistoryLogLimit, cfg.HistoryPreModernYear)
	}
	if cfg.Location().String() != "Europe/Berlin" {
		t.Fatalf("unexpected schedule location: %s", cfg.Location())
	}
}

func TestLoad_ProdUsesJSONLogs(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_LOG_FORMAT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogFormat != logging.FormatJSON {
		t.Fatalf("expected json log format in prod, got %q", cfg.LogFormat)
	}
}

func TestLoad_ParsesMapsAndDurations(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("FOOTBALL_DATA_OUTPUT_MAP", "cl: champions.json , bl1:bundesliga.json")
	t.Setenv("FOOTBALL_DATA_LABEL_MAP", "BL1:Bundesliga")
	t.Setenv("FEED_TIMEOUT", "4s")
	t.Setenv("SCHEDULE_RECONCILE_CRON", "*/15 * * * *")
	t.Setenv("SCHEDULE_RECONCILE_COMPETITIONS", "cl, pd")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FootballDataOutputs["CL"] != "champions.json" || cfg.FootballDataOutputs["BL1"] != "bundesliga.json" {
		t.Fatalf("unexpected outputs: %v", cfg.FootballDataOutputs)
	}
	if cfg.FootballDataLabels["BL1"] != "Bundesliga" {
		t.Fatalf("unexpected labels: %v", cfg.FootballDataLabels)
	}
	if cfg.FeedTimeout != 4*time.Second {
		t.Fatalf("unexpected feed timeout: %s", cfg.FeedTimeout)
	}
	if len(cfg.ScheduleReconcileCompetitions) != 2 || cfg.ScheduleReconcileCompetitions[1] != "PD" {
		t.Fatalf("unexpected reconcile competitions: %v", cfg.ScheduleReconcileCompetitions)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"FOOTBALL_DATA_OUTPUT_MAP":       "CL",
		"ESPN_LEAGUE_MAP":                "CL:",
		"UPSTREAM_CIRCUIT_FAILURE_COUNT": "0",
		"FEED_TIMEOUT":                   "-1s",
		"SCHEDULE_TIMEZONE":              "Mars/Olympus",
		"APP_LOG_FORMAT":                 "xml",
		"RUN_ONCE":                       "sometimes",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("UPTRACE_ENABLED", "false")
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn=\"https://token@api.uptrace.dev?grpc=4317\"")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("LIVETICKER_DOTENV_PROBE=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("LIVETICKER_DOTENV_PROBE", "")
	if err := os.Unsetenv("LIVETICKER_DOTENV_PROBE"); err != nil {
		t.Fatalf("unset probe: %v", err)
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("LIVETICKER_DOTENV_PROBE"); got != "from-file" {
		t.Fatalf("expected value from .env, got %q", got)
	}
}
