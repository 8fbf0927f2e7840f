package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"github.com/username/vacation-calendar/internal/holidays"
)

// Upstream provider types
const (
	UpstreamCalendarific = "calendarific"
	UpstreamBuiltin      = "builtin"
	UpstreamFile         = "file"
)

// Config represents application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Client   ClientConfig   `mapstructure:"client"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	ReadTimeout    string   `mapstructure:"read_timeout"`
	WriteTimeout   string   `mapstructure:"write_timeout"`
}

// UpstreamConfig represents the holiday data source behind the API
type UpstreamConfig struct {
	Type         string `mapstructure:"type"` // "calendarific", "builtin" or "file"
	APIURL       string `mapstructure:"api_url"`
	APIKey       string `mapstructure:"api_key"`
	Timeout      string `mapstructure:"timeout"`
	CacheSize    int    `mapstructure:"cache_size"`
	CacheTTL     string `mapstructure:"cache_ttl"`
	FallbackFile string `mapstructure:"fallback_file"` // Optional, used when the primary source fails
}

// ClientConfig represents the holiday client configuration
type ClientConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	Timeout     string `mapstructure:"timeout"`
	MergePolicy string `mapstructure:"merge_policy"` // "last" or "join"
	Separator   string `mapstructure:"separator"`
}

// UIConfig represents initial view settings
type UIConfig struct {
	DefaultCountry string `mapstructure:"default_country"`
	DefaultView    string `mapstructure:"default_view"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "127.0.0.1:8000")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")

	v.SetDefault("upstream.type", UpstreamCalendarific)
	v.SetDefault("upstream.api_url", "https://calendarific.com/api/v2/holidays")
	v.SetDefault("upstream.timeout", "10s")
	v.SetDefault("upstream.cache_size", 10)
	v.SetDefault("upstream.cache_ttl", "24h")
	v.SetDefault("upstream.fallback_file", "")

	v.SetDefault("client.base_url", "http://127.0.0.1:8000/api/v1")
	v.SetDefault("client.timeout", "10s")
	v.SetDefault("client.merge_policy", string(holidays.MergeLastWins))
	v.SetDefault("client.separator", holidays.DefaultSeparator)

	v.SetDefault("ui.default_country", holidays.DefaultCountry)
	v.SetDefault("ui.default_view", "monthly")

	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Load loads configuration from file, .env and environment.
// A missing config file is not an error; defaults and environment apply.
func Load(configPath string) (*Config, error) {
	// .env is optional
	if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.vacation-calendar")
		v.AddConfigPath("/etc/vacation-calendar")
	}

	// Read environment variables: VACATION_CALENDAR_SERVER_ADDR etc.
	v.SetEnvPrefix("VACATION_CALENDAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("upstream.api_key", "VACATION_CALENDAR_UPSTREAM_API_KEY", "CALENDARIFIC_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key env: %w", err)
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	switch c.Upstream.Type {
	case UpstreamCalendarific:
		if c.Upstream.APIURL == "" {
			return fmt.Errorf("upstream.api_url is required for calendarific type")
		}
		// A missing api_key is reported per request as "API key not configured"
	case UpstreamBuiltin:
	case UpstreamFile:
		if c.Upstream.FallbackFile == "" {
			return fmt.Errorf("upstream.fallback_file is required for file type")
		}
	default:
		return fmt.Errorf("upstream.type must be 'calendarific', 'builtin' or 'file', got '%s'", c.Upstream.Type)
	}

	if c.Upstream.CacheSize < 0 {
		return fmt.Errorf("upstream.cache_size must not be negative")
	}

	switch holidays.MergePolicy(c.Client.MergePolicy) {
	case holidays.MergeLastWins, holidays.MergeJoin:
	default:
		return fmt.Errorf("client.merge_policy must be 'last' or 'join', got '%s'", c.Client.MergePolicy)
	}

	switch c.UI.DefaultView {
	case "monthly", "quarterly":
	default:
		return fmt.Errorf("ui.default_view must be 'monthly' or 'quarterly', got '%s'", c.UI.DefaultView)
	}

	if !holidays.IsSupported(c.UI.DefaultCountry) {
		return fmt.Errorf("ui.default_country '%s' is not a supported country", c.UI.DefaultCountry)
	}

	return nil
}

// Folder returns the holiday folder configured by the client section
func (c *ClientConfig) Folder() holidays.Folder {
	return holidays.Folder{
		Policy:    holidays.MergePolicy(c.MergePolicy),
		Separator: c.Separator,
	}
}

// GetTimeout returns the client request timeout
func (c *ClientConfig) GetTimeout() time.Duration {
	return parseDuration(c.Timeout, 10*time.Second)
}

// GetTimeout returns the upstream request timeout
func (c *UpstreamConfig) GetTimeout() time.Duration {
	return parseDuration(c.Timeout, 10*time.Second)
}

// GetCacheTTL returns cache TTL duration
func (c *UpstreamConfig) GetCacheTTL() time.Duration {
	return parseDuration(c.CacheTTL, 24*time.Hour)
}

// GetReadTimeout returns the server read timeout
func (c *ServerConfig) GetReadTimeout() time.Duration {
	return parseDuration(c.ReadTimeout, 10*time.Second)
}

// GetWriteTimeout returns the server write timeout
func (c *ServerConfig) GetWriteTimeout() time.Duration {
	return parseDuration(c.WriteTimeout, 30*time.Second)
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Upstream.APIKey = os.ExpandEnv(c.Upstream.APIKey)
	c.Upstream.FallbackFile = os.ExpandEnv(c.Upstream.FallbackFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}
