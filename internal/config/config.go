package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"

	"github.com/sells-group/targets-navigator/internal/ranking"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Fetch   FetchConfig   `yaml:"fetch" mapstructure:"fetch"`
	List    ListConfig    `yaml:"list" mapstructure:"list"`
	Sort    SortConfig    `yaml:"sort" mapstructure:"sort"`
	Chart   ChartConfig   `yaml:"chart" mapstructure:"chart"`
	Filters FiltersConfig `yaml:"filters" mapstructure:"filters"`
	Report  ReportConfig  `yaml:"report" mapstructure:"report"`
	Prefs   PrefsConfig   `yaml:"prefs" mapstructure:"prefs"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`

	// RequestTimeoutSecs caps each API request. Zero derives it from the
	// fetch settings.
	RequestTimeoutSecs int `yaml:"request_timeout_secs" mapstructure:"request_timeout_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// FetchConfig bounds each backend read.
type FetchConfig struct {
	TimeoutSecs             int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxAttempts             int `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMs        int `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	CircuitFailureThreshold int `yaml:"circuit_failure_threshold" mapstructure:"circuit_failure_threshold"`
	CircuitResetSecs        int `yaml:"circuit_reset_secs" mapstructure:"circuit_reset_secs"`
}

// Timeout is the per-attempt read timeout.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSecs) * time.Second
}

// InitialBackoff is the delay before the first retry.
func (f FetchConfig) InitialBackoff() time.Duration {
	return time.Duration(f.InitialBackoffMs) * time.Millisecond
}

// CircuitReset is how long an open breaker waits before a probe.
func (f FetchConfig) CircuitReset() time.Duration {
	return time.Duration(f.CircuitResetSecs) * time.Second
}

// ListConfig bounds company list reads.
type ListConfig struct {
	MaxRows      int `yaml:"max_rows" mapstructure:"max_rows"`
	DefaultLimit int `yaml:"default_limit" mapstructure:"default_limit"`
}

// SortConfig configures name ordering.
type SortConfig struct {
	Locale string `yaml:"locale" mapstructure:"locale"`
}

// Tag parses the configured locale.
func (s SortConfig) Tag() (language.Tag, error) {
	tag, err := language.Parse(s.Locale)
	if err != nil {
		return language.Und, eris.Wrapf(err, "config: parse locale %q", s.Locale)
	}
	return tag, nil
}

// ChartConfig configures chart shaping.
type ChartConfig struct {
	MinBubble        float64 `yaml:"min_bubble" mapstructure:"min_bubble"`
	MaxBubble        float64 `yaml:"max_bubble" mapstructure:"max_bubble"`
	OverviewSentinel float64 `yaml:"overview_sentinel" mapstructure:"overview_sentinel"`
}

// FiltersConfig configures the filter dimensions.
type FiltersConfig struct {
	RevenueBands []ranking.Band `yaml:"revenue_bands" mapstructure:"revenue_bands"`
}

// Bands returns the configured revenue bands, or the stock bands when none
// are configured.
func (f FiltersConfig) Bands() ranking.Bands {
	if len(f.RevenueBands) == 0 {
		return ranking.DefaultBands()
	}
	return ranking.Bands(f.RevenueBands)
}

// ReportConfig configures report rendering.
type ReportConfig struct {
	Brand     string `yaml:"brand" mapstructure:"brand"`
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
}

// PrefsConfig configures preference persistence. An empty Dir keeps
// preferences in memory.
type PrefsConfig struct {
	TTLDays int    `yaml:"ttl_days" mapstructure:"ttl_days"`
	Dir     string `yaml:"dir" mapstructure:"dir"`
}

// TTL is the preference lifetime.
func (p PrefsConfig) TTL() time.Duration {
	return time.Duration(p.TTLDays) * 24 * time.Hour
}

// requestHeadroom is added to the derived request timeout for backoff
// sleeps and response encoding.
const requestHeadroom = 5 * time.Second

// RequestTimeout bounds one API request. Unless set explicitly it covers a
// company read followed by the pillar reads, each with every retry attempt.
func (c *Config) RequestTimeout() time.Duration {
	if c.Server.RequestTimeoutSecs > 0 {
		return time.Duration(c.Server.RequestTimeoutSecs) * time.Second
	}
	attempts := max(c.Fetch.MaxAttempts, 1)
	return 2*time.Duration(attempts)*c.Fetch.Timeout() + requestHeadroom
}

// Load reads configuration from ./config.yaml (if present) and environment.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches the
// working directory for config.yaml; a named file must exist.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("TARGETS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit_rps", 20)
	v.SetDefault("server.rate_limit_burst", 40)
	v.SetDefault("server.request_timeout_secs", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("fetch.timeout_secs", 10)
	v.SetDefault("fetch.max_attempts", 2)
	v.SetDefault("fetch.initial_backoff_ms", 200)
	v.SetDefault("fetch.circuit_failure_threshold", 5)
	v.SetDefault("fetch.circuit_reset_secs", 30)
	v.SetDefault("list.max_rows", 1000)
	v.SetDefault("list.default_limit", 50)
	v.SetDefault("sort.locale", "en")
	v.SetDefault("chart.min_bubble", 10)
	v.SetDefault("chart.max_bubble", 50)
	v.SetDefault("chart.overview_sentinel", 0.1)
	v.SetDefault("report.brand", "Targets Navigator")
	v.SetDefault("report.output_dir", ".")
	v.SetDefault("prefs.ttl_days", 30)
	v.SetDefault("prefs.dir", "")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on. Modes are
// "serve", "cli" and "seed". All problems are reported together.
func (c *Config) Validate(mode string) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	switch mode {
	case "serve", "cli", "seed":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	switch c.Store.Driver {
	case "postgres", "sqlite":
	default:
		add("store.driver must be postgres or sqlite, got %q", c.Store.Driver)
	}
	if c.Store.DatabaseURL == "" {
		add("store.database_url is required")
	}

	if mode == "serve" {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			add("server.port must be between 1 and 65535")
		}
		if c.Server.RateLimitRPS <= 0 {
			add("server.rate_limit_rps must be > 0")
		}
		if c.Server.RateLimitBurst < 1 {
			add("server.rate_limit_burst must be >= 1")
		}
		if c.Server.RequestTimeoutSecs < 0 {
			add("server.request_timeout_secs must be >= 0")
		}
		if c.Prefs.TTLDays <= 0 {
			add("prefs.ttl_days must be > 0")
		}
	}

	if mode != "seed" {
		if c.Fetch.TimeoutSecs <= 0 {
			add("fetch.timeout_secs must be > 0")
		}
		if c.Fetch.MaxAttempts < 1 {
			add("fetch.max_attempts must be >= 1")
		}
		if c.Fetch.CircuitFailureThreshold < 1 {
			add("fetch.circuit_failure_threshold must be >= 1")
		}
		if c.List.MaxRows <= 0 {
			add("list.max_rows must be > 0")
		}
		if c.List.DefaultLimit <= 0 || c.List.DefaultLimit > c.List.MaxRows {
			add("list.default_limit must be between 1 and list.max_rows")
		}
		if _, err := c.Sort.Tag(); err != nil {
			add("sort.locale %q is not a valid language tag", c.Sort.Locale)
		}
		if c.Chart.MinBubble <= 0 || c.Chart.MaxBubble < c.Chart.MinBubble {
			add("chart bubble sizes must satisfy 0 < min_bubble <= max_bubble")
		}
		if c.Chart.OverviewSentinel <= 0 {
			add("chart.overview_sentinel must be > 0")
		}
		seen := make(map[string]bool)
		for _, b := range c.Filters.RevenueBands {
			if b.Label == "" {
				add("filters.revenue_bands: label is required")
				continue
			}
			if seen[b.Label] {
				add("filters.revenue_bands: duplicate label %q", b.Label)
			}
			seen[b.Label] = true
			if b.Min != nil && b.Max != nil && *b.Min > *b.Max {
				add("filters.revenue_bands: %q has min > max", b.Label)
			}
		}
	}

	if len(problems) > 0 {
		return eris.Errorf("config: invalid for %s: %s", mode, strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	switch cfg.Format {
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	case "json", "":
		zapCfg = zap.NewProductionConfig()
	default:
		return eris.Errorf("config: unknown log format %q (want json or console)", cfg.Format)
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
