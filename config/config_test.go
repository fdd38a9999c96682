package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	key := "TEST_ENV_STRING"
	t.Setenv(key, "test_value")

	if got := getEnvString(key, "default"); got != "test_value" {
		t.Errorf("getEnvString() = %q, want %q", got, "test_value")
	}
	if got := getEnvString("NON_EXISTENT_DIET_KEY", "default"); got != "default" {
		t.Errorf("getEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_ENV_DURATION"

	tests := []struct {
		name       string
		envVal     string
		defaultVal time.Duration
		want       time.Duration
	}{
		{"ValidDuration", "168h", time.Second, 168 * time.Hour},
		{"ValidSeconds", "60", time.Second, 60 * time.Second},
		{"Invalid", "invalid", time.Second, time.Second},
		{"Empty", "", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(key, tt.envVal)
			if got := getEnvDuration(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvList(t *testing.T) {
	key := "TEST_ENV_LIST"

	t.Setenv(key, " http://a.test , ,http://b.test")
	got := getEnvList(key, []string{"*"})
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Errorf("getEnvList() = %v", got)
	}

	t.Setenv(key, " , ")
	if got := getEnvList(key, []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Errorf("getEnvList() = %v, want default", got)
	}
}

func TestGetEnvLevel(t *testing.T) {
	key := "TEST_ENV_LEVEL"

	t.Setenv(key, "debug")
	if got := getEnvLevel(key, slog.LevelInfo); got != slog.LevelDebug {
		t.Errorf("getEnvLevel() = %v, want DEBUG", got)
	}

	t.Setenv(key, "loud")
	if got := getEnvLevel(key, slog.LevelInfo); got != slog.LevelInfo {
		t.Errorf("getEnvLevel() = %v, want INFO", got)
	}
}

// chdirTemp moves into an empty directory so no stray .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func clearEnv(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_CLIENT", "DATABASE_URL", "SESSION_TTL",
		"CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Errorf("Port = %q, want %q", cfg.Port, defaultPort)
	}
	if cfg.Addr() != ":"+defaultPort {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if cfg.DatabaseClient != ClientSQLite || cfg.DatabaseURL != defaultSQLitePath {
		t.Errorf("unexpected database config: %s %s", cfg.DatabaseClient, cfg.DatabaseURL)
	}
	if cfg.SessionTTL != 7*24*time.Hour {
		t.Errorf("SessionTTL = %v, want 7 days", cfg.SessionTTL)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)
	os.Unsetenv("PORT")
	os.Unsetenv("DATABASE_URL")

	content := "PORT=4000\nDATABASE_URL=" + filepath.Join(dir, "x.db") + "\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "4000" {
		t.Errorf("Port = %q, want 4000", cfg.Port)
	}
	if cfg.DatabaseURL != filepath.Join(dir, "x.db") {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
}

func TestLoad_PostgresRequiresURL(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("DATABASE_CLIENT", ClientPostgres)

	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is missing for pg")
	}
}

func TestLoad_UnknownClient(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("DATABASE_CLIENT", "mysql")

	if _, err := Load(); err == nil {
		t.Error("expected error for unsupported client")
	}
}
