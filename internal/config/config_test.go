package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/username/vacation-calendar/internal/holidays"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:8000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Upstream.Type != UpstreamCalendarific {
		t.Errorf("Upstream.Type = %q", cfg.Upstream.Type)
	}
	if cfg.Upstream.CacheSize != 10 {
		t.Errorf("Upstream.CacheSize = %d, want 10", cfg.Upstream.CacheSize)
	}
	if cfg.Client.BaseURL != "http://127.0.0.1:8000/api/v1" {
		t.Errorf("Client.BaseURL = %q", cfg.Client.BaseURL)
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Errorf("Server.AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.UI.DefaultCountry != "IN" || cfg.UI.DefaultView != "monthly" {
		t.Errorf("UI = %+v", cfg.UI)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  allowed_origins: ["https://calendar.example.com"]
upstream:
  type: builtin
  cache_size: 4
  cache_ttl: 1h
client:
  merge_policy: join
  separator: " / "
ui:
  default_country: GB
  default_view: quarterly
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Upstream.Type != UpstreamBuiltin || cfg.Upstream.CacheSize != 4 {
		t.Errorf("Upstream = %+v", cfg.Upstream)
	}
	if cfg.Upstream.GetCacheTTL() != time.Hour {
		t.Errorf("GetCacheTTL() = %v, want 1h", cfg.Upstream.GetCacheTTL())
	}

	folder := cfg.Client.Folder()
	if folder.Policy != holidays.MergeJoin || folder.Separator != " / " {
		t.Errorf("Folder() = %+v", folder)
	}
	if cfg.UI.DefaultCountry != "GB" || cfg.UI.DefaultView != "quarterly" {
		t.Errorf("UI = %+v", cfg.UI)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CALENDARIFIC_API_KEY", "from-env")
	t.Setenv("VACATION_CALENDAR_SERVER_ADDR", ":7000")

	cfg, err := Load(writeConfig(t, "upstream:\n  type: calendarific\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Upstream.APIKey != "from-env" {
		t.Errorf("Upstream.APIKey = %q, want from-env", cfg.Upstream.APIKey)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("Server.Addr = %q, want :7000", cfg.Server.Addr)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown upstream", "upstream:\n  type: ftp\n", "upstream.type"},
		{"file without path", "upstream:\n  type: file\n", "upstream.fallback_file"},
		{"bad merge policy", "client:\n  merge_policy: first\n", "client.merge_policy"},
		{"bad view", "ui:\n  default_view: weekly\n", "ui.default_view"},
		{"bad country", "ui:\n  default_country: XX\n", "ui.default_country"},
		{"negative cache", "upstream:\n  cache_size: -1\n", "upstream.cache_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		value    string
		fallback time.Duration
		want     time.Duration
	}{
		{"", time.Minute, time.Minute},
		{"garbage", time.Minute, time.Minute},
		{"5s", time.Minute, 5 * time.Second},
	}

	for _, tt := range tests {
		if got := parseDuration(tt.value, tt.fallback); got != tt.want {
			t.Errorf("parseDuration(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
