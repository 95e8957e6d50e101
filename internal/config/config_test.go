package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"REELS_API_BASE_URL", "REELS_TOKEN", "REELS_SOURCE", "REELS_ORIGIN", "REELS_VIEWER_ID",
		"REELS_DB_PATH", "REELS_PAGE_LIMIT", "REELS_SETTLE_DELAY", "REELS_LOG_PATH",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_UsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}

	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("unexpected API base URL: %s", cfg.APIBaseURL)
	}
	if cfg.DBPath != "reels.db" {
		t.Fatalf("unexpected DB path: %s", cfg.DBPath)
	}
	if cfg.Source != "category:general" {
		t.Fatalf("unexpected source: %s", cfg.Source)
	}
	if cfg.Origin != "http://localhost:8080" {
		t.Fatalf("unexpected origin: %s", cfg.Origin)
	}
	if cfg.PageLimit != 10 || cfg.SettleDelay != 180*time.Millisecond {
		t.Fatalf("unexpected paging defaults: %+v", cfg)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("REELS_API_BASE_URL", "https://social.example.com/api")
	t.Setenv("REELS_SOURCE", "hashtag:#Cats")
	t.Setenv("REELS_PAGE_LIMIT", "5")
	t.Setenv("REELS_SETTLE_DELAY", "150ms")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}
	if cfg.Origin != "https://social.example.com" {
		t.Fatalf("unexpected origin: %s", cfg.Origin)
	}
	mode, err := cfg.Mode()
	if err != nil {
		t.Fatalf("Mode returned error: %v", err)
	}
	if mode.Value != "cats" {
		t.Fatalf("unexpected hashtag: %s", mode.Value)
	}
	if cfg.PageLimit != 5 || cfg.SettleDelay != 150*time.Millisecond {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
}

func TestLoadFromEnv_InvalidNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("REELS_PAGE_LIMIT", "ten")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("expected error for invalid page limit")
	}

	t.Setenv("REELS_PAGE_LIMIT", "")
	t.Setenv("REELS_SETTLE_DELAY", "soon")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("expected error for invalid settle delay")
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "reels.yaml")
	content := "api_base_url: https://file.example.com/api\nsource: trending\nsettle_delay: 200ms\ntoken: from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("REELS_TOKEN", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "https://file.example.com/api" || cfg.Source != "trending" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.SettleDelay != 200*time.Millisecond {
		t.Fatalf("unexpected settle delay: %s", cfg.SettleDelay)
	}
	if cfg.Token != "from-env" {
		t.Fatalf("env must override file, got token %q", cfg.Token)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate_APIBaseURLTrailingSlash(t *testing.T) {
	cfg := Config{
		APIBaseURL:  "https://social.example.com/api/",
		DBPath:      "reels.db",
		Source:      "trending",
		PageLimit:   10,
		SettleDelay: defaultSettleDelay,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidate_Source(t *testing.T) {
	cfg := Config{
		APIBaseURL:  "https://social.example.com/api",
		DBPath:      "reels.db",
		Source:      "album:1",
		PageLimit:   10,
		SettleDelay: defaultSettleDelay,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for source")
	}
}

func TestValidate_PageLimitRange(t *testing.T) {
	cfg := Config{
		APIBaseURL:  "https://social.example.com/api",
		DBPath:      "reels.db",
		Source:      "trending",
		PageLimit:   500,
		SettleDelay: defaultSettleDelay,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for page limit")
	}
}
