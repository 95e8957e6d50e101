package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/glabrego/reels-cli/internal/reels"
)

const (
	defaultAPIBaseURL  = "http://localhost:8080/api"
	defaultSource      = "category:general"
	defaultDBPath      = "reels.db"
	defaultPageLimit   = 10
	defaultSettleDelay = 180 * time.Millisecond
)

// Config holds runtime settings for the CLI app.
type Config struct {
	APIBaseURL  string        `yaml:"api_base_url"`
	Token       string        `yaml:"token"`
	Source      string        `yaml:"source"`
	Origin      string        `yaml:"origin"`
	ViewerID    string        `yaml:"viewer_id"`
	DBPath      string        `yaml:"db_path"`
	PageLimit   int           `yaml:"page_limit"`
	SettleDelay time.Duration `yaml:"settle_delay"`
	LogPath     string        `yaml:"log_path"`
}

func LoadFromEnv() (Config, error) {
	return Load("")
}

// Load reads the optional YAML file at path, then applies environment
// overrides and defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.APIBaseURL, "REELS_API_BASE_URL")
	setString(&c.Token, "REELS_TOKEN")
	setString(&c.Source, "REELS_SOURCE")
	setString(&c.Origin, "REELS_ORIGIN")
	setString(&c.ViewerID, "REELS_VIEWER_ID")
	setString(&c.DBPath, "REELS_DB_PATH")
	setString(&c.LogPath, "REELS_LOG_PATH")

	if v := os.Getenv("REELS_PAGE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REELS_PAGE_LIMIT must be an integer: %s", v)
		}
		c.PageLimit = n
	}
	if v := os.Getenv("REELS_SETTLE_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REELS_SETTLE_DELAY must be a duration: %s", v)
		}
		c.SettleDelay = d
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
	if c.Source == "" {
		c.Source = defaultSource
	}
	if c.DBPath == "" {
		c.DBPath = defaultDBPath
	}
	if c.PageLimit == 0 {
		c.PageLimit = defaultPageLimit
	}
	if c.SettleDelay == 0 {
		c.SettleDelay = defaultSettleDelay
	}
	if c.Origin == "" {
		c.Origin = OriginOf(c.APIBaseURL)
	}
}

// Mode parses Source.
func (c Config) Mode() (reels.Mode, error) {
	return reels.ParseMode(c.Source)
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("APIBaseURL is required")
	}
	if c.APIBaseURL[len(c.APIBaseURL)-1] == '/' {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	if u, err := url.Parse(c.APIBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("APIBaseURL must be an absolute http(s) URL: %s", c.APIBaseURL)
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if _, err := c.Mode(); err != nil {
		return fmt.Errorf("Source: %w", err)
	}
	if c.PageLimit < 1 || c.PageLimit > 100 {
		return fmt.Errorf("PageLimit must be between 1 and 100: %d", c.PageLimit)
	}
	if c.SettleDelay < 0 || c.SettleDelay > 2*time.Second {
		return fmt.Errorf("SettleDelay must be between 0 and 2s: %s", c.SettleDelay)
	}
	return nil
}

// OriginOf returns scheme://host of baseURL, or "" when it has no host.
func OriginOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
