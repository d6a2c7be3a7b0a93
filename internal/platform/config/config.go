package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full service configuration. Values come from defaults, then an
// optional YAML file named by ASTRO_CONFIG, then environment variables.
type Config struct {
	Server    Server          `yaml:"server"`
	Ephemeris EphemerisConfig `yaml:"ephemeris"`
	Geocoder  GeocoderConfig  `yaml:"geocoder"`
	Cache     CacheConfig     `yaml:"cache"`
	Redis     RedisConfig     `yaml:"redis"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
	// CORSOriginPatterns are regular expressions matched against the whole
	// origin.
	CORSOriginPatterns []string      `yaml:"cors_origin_patterns"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
}

// EphemerisConfig points at the ephemeris computation service.
type EphemerisConfig struct {
	URL              string        `yaml:"url"`
	Timeout          time.Duration `yaml:"timeout"`
	FailureThreshold int           `yaml:"failure_threshold"`
}

// GeocoderConfig configures remote place resolution.
type GeocoderConfig struct {
	NominatimURL string        `yaml:"nominatim_url"`
	TimezoneURL  string        `yaml:"timezone_url"`
	UserAgent    string        `yaml:"user_agent"`
	Timeout      time.Duration `yaml:"timeout"`
	// RequestsPerSecond throttles Nominatim; its public policy allows one.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// CacheBackend selects the geocode cache implementation.
type CacheBackend string

const (
	CacheMemory   CacheBackend = "memory"
	CacheRedis    CacheBackend = "redis"
	CachePostgres CacheBackend = "postgres"
)

// CacheConfig configures the geocode cache.
type CacheConfig struct {
	Backend    CacheBackend  `yaml:"backend"`
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"`
}

// RedisConfig configures the shared Redis client.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// PostgresConfig configures the database connection pool.
type PostgresConfig struct {
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// KafkaConfig configures chart event publishing. Empty brokers disable it.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File enables rotated file output instead of stdout.
	File string `yaml:"file"`
}

// Default returns the development configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:               ":8000",
			CORSOrigins:        []string{"http://localhost:3000", "http://localhost:5173"},
			CORSOriginPatterns: []string{`https://.*\.vercel\.app`},
			ShutdownTimeout:    10 * time.Second,
		},
		Ephemeris: EphemerisConfig{
			URL:              "http://localhost:8090",
			Timeout:          5 * time.Second,
			FailureThreshold: 5,
		},
		Geocoder: GeocoderConfig{
			NominatimURL:      "https://nominatim.openstreetmap.org",
			TimezoneURL:       "https://timeapi.io",
			UserAgent:         "astro_engine",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 1,
		},
		Cache: CacheConfig{
			Backend:    CacheMemory,
			TTL:        24 * time.Hour,
			MaxEntries: 1024,
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Postgres: PostgresConfig{
			MaxOpenConns: 10,
			MaxIdleConns: 5,
		},
		Kafka: KafkaConfig{
			Topic: "chart.computed",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// FromEnv builds the configuration so main stays lean.
func FromEnv() (Config, error) {
	return Load(os.Getenv("ASTRO_CONFIG"))
}

// Load applies the YAML file at path (if any) and then environment overrides
// on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheMemory:
	case CacheRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("cache backend redis requires REDIS_URL")
		}
	case CachePostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("cache backend postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache max entries must be positive")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive")
	}
	for _, p := range c.Server.CORSOriginPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("cors origin pattern %q: %w", p, err)
		}
	}
	if c.Geocoder.RequestsPerSecond <= 0 {
		return fmt.Errorf("geocoder requests per second must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Addr, "ASTRO_ADDR")
	setList(&cfg.Server.CORSOrigins, "CORS_ORIGINS")
	setList(&cfg.Server.CORSOriginPatterns, "CORS_ORIGIN_PATTERNS")
	setString(&cfg.Ephemeris.URL, "EPHEMERIS_URL")
	setString(&cfg.Geocoder.NominatimURL, "NOMINATIM_URL")
	setString(&cfg.Geocoder.TimezoneURL, "TIMEZONE_URL")
	setString(&cfg.Geocoder.UserAgent, "GEOCODER_USER_AGENT")
	setString(&cfg.Redis.URL, "REDIS_URL")
	setString(&cfg.Postgres.URL, "DATABASE_URL")
	setList(&cfg.Kafka.Brokers, "KAFKA_BROKERS")
	setString(&cfg.Kafka.Topic, "KAFKA_TOPIC")
	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")
	setString(&cfg.Logging.File, "LOG_FILE")
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = CacheBackend(strings.ToLower(v))
	}

	if err := setDuration(&cfg.Ephemeris.Timeout, "EPHEMERIS_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Cache.TTL, "CACHE_TTL"); err != nil {
		return err
	}
	if err := setInt(&cfg.Cache.MaxEntries, "CACHE_MAX_ENTRIES"); err != nil {
		return err
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = d
	return nil
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = n
	return nil
}
