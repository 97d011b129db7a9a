package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/InstaSync_Go/internal/domain"
)

// Config holds the application configuration
type Config struct {
	Port        int    `env:"PORT" validate:"min=1,max=65535"`
	Environment string `env:"ENVIRONMENT" validate:"required"`
	Version     string `env:"APP_VERSION"`
	LogLevel    string `env:"LOG_LEVEL"`
	LogFormat   string `env:"LOG_FORMAT" validate:"oneof=text json"`
	LogDir      string `env:"LOG_DIR" validate:"required"`
	APIKey      string `env:"API_KEY" validate:"required"` // API key for /api/v1

	// Comma separated proxy addresses whose X-Forwarded-For header is trusted
	TrustedProxies []string `env:"TRUSTED_PROXIES" validate:"dive,ip"`

	// Instagram application
	InstagramAppID       string        `env:"INSTAGRAM_APP_ID"`
	InstagramAppSecret   string        `env:"INSTAGRAM_APP_SECRET"`
	InstagramRedirectURI string        `env:"INSTAGRAM_REDIRECT_URI" validate:"required,url"`
	InstagramAuthURL     string        `env:"INSTAGRAM_AUTH_URL" validate:"required,url"`
	InstagramAPIURL      string        `env:"INSTAGRAM_API_URL" validate:"required,url"`
	InstagramGraphURL    string        `env:"INSTAGRAM_GRAPH_URL" validate:"required,url"`
	HTTPTimeout          time.Duration `env:"HTTP_TIMEOUT" validate:"gt=0"`

	// Synchronization
	Feeds                []domain.Feed `env:"FEEDS" validate:"dive"`
	SyncSchedule         string        `env:"SYNC_SCHEDULE" validate:"required"`
	TokenRefreshInterval time.Duration `env:"TOKEN_REFRESH_INTERVAL" validate:"gt=0"`
	WorkerCount          int           `env:"WORKER_COUNT" validate:"min=1"`
	WorkerQueueSize      int           `env:"WORKER_QUEUE_SIZE" validate:"min=1"`
	JobTimeout           time.Duration `env:"JOB_TIMEOUT" validate:"gt=0"`
	PostCacheSize        int           `env:"POST_CACHE_SIZE" validate:"min=1"`

	// Storage
	StateDriver string `env:"STATE_DRIVER" validate:"oneof=memory postgres"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBHost      string `env:"DB_HOST"`
	DBPort      string `env:"DB_PORT"`
	DBName      string `env:"DB_NAME"`
	DBMaxConns  int    `env:"DB_MAX_CONNS" validate:"min=1"`

	// Thumbnails
	ThumbnailStore string `env:"THUMBNAIL_STORE" validate:"oneof=none dir s3"`
	ThumbnailDir   string `env:"THUMBNAIL_DIR" validate:"required_if=ThumbnailStore dir"`
	S3Bucket       string `env:"S3_BUCKET" validate:"required_if=ThumbnailStore s3"`
	S3Region       string `env:"S3_REGION"`
	S3Endpoint     string `env:"S3_ENDPOINT" validate:"omitempty,url"`
	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`
	S3PublicURL    string `env:"S3_PUBLIC_URL" validate:"omitempty,url"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:     getEnv("APP_VERSION", DefaultVersion),
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		APIKey:      getEnv("API_KEY", ""),

		InstagramAppID:       getEnv("INSTAGRAM_APP_ID", ""),
		InstagramAppSecret:   getEnv("INSTAGRAM_APP_SECRET", ""),
		InstagramRedirectURI: getEnv("INSTAGRAM_REDIRECT_URI", DefaultInstagramRedirect),
		InstagramAuthURL:     getEnv("INSTAGRAM_AUTH_URL", DefaultInstagramAuthURL),
		InstagramAPIURL:      getEnv("INSTAGRAM_API_URL", DefaultInstagramAPIURL),
		InstagramGraphURL:    getEnv("INSTAGRAM_GRAPH_URL", DefaultInstagramGraphURL),
		HTTPTimeout:          getEnvAsDuration("HTTP_TIMEOUT", DefaultHTTPTimeout),

		SyncSchedule:         getEnv("SYNC_SCHEDULE", DefaultSyncSchedule),
		TokenRefreshInterval: getEnvAsDuration("TOKEN_REFRESH_INTERVAL", DefaultTokenRefreshInterval),
		WorkerCount:          getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize:      getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),
		JobTimeout:           getEnvAsDuration("JOB_TIMEOUT", DefaultJobTimeout),
		PostCacheSize:        getEnvAsInt("POST_CACHE_SIZE", DefaultPostCacheSize),

		StateDriver: strings.ToLower(getEnv("STATE_DRIVER", StateDriverMemory)),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "instasync"),
		DBMaxConns:  getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),

		ThumbnailStore: strings.ToLower(getEnv("THUMBNAIL_STORE", ThumbnailStoreNone)),
		ThumbnailDir:   getEnv("THUMBNAIL_DIR", DefaultThumbnailDirectory),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "auto"),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("S3_SECRET_KEY", ""),
		S3PublicURL:    getEnv("S3_PUBLIC_URL", ""),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPortFormat, err)
	}
	cfg.Port = port

	cfg.TrustedProxies = splitList(getEnv("TRUSTED_PROXIES", ""))

	feeds, err := ParseFeeds(getEnv("FEEDS", DefaultFeeds))
	if err != nil {
		return nil, err
	}
	cfg.Feeds = feeds

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ParseFeeds parses a list like "instagram:5,stories:0".
// An entry without a count uses the default fetch count.
func ParseFeeds(raw string) ([]domain.Feed, error) {
	var feeds []domain.Feed
	seen := make(map[string]bool)

	for _, entry := range strings.Split(raw, FeedSeparator) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		id, countStr, hasCount := strings.Cut(entry, FeedCountSeparator)
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%s %q: empty feed id", ErrMsgInvalidFeed, entry)
		}
		if seen[id] {
			return nil, fmt.Errorf("%s %q: duplicate feed id", ErrMsgInvalidFeed, entry)
		}
		seen[id] = true

		count := domain.DefaultFetchCount
		if hasCount {
			n, err := strconv.Atoi(strings.TrimSpace(countStr))
			if err != nil {
				return nil, fmt.Errorf("%s %q: %w", ErrMsgInvalidFeed, entry, err)
			}
			count = n
		}

		feeds = append(feeds, domain.Feed{ID: id, FetchCount: count})
	}

	return feeds, nil
}

// Feed returns the configured feed with the given id
func (c *Config) Feed(id string) (domain.Feed, bool) {
	for _, f := range c.Feeds {
		if f.ID == id {
			return f, true
		}
	}
	return domain.Feed{}, false
}

// InstagramConfigured reports whether app credentials are present
func (c *Config) InstagramConfigured() bool {
	return c.InstagramAppID != "" && c.InstagramAppSecret != ""
}

// splitList splits a comma separated value, dropping empty entries
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable, falling back on parse errors
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration retrieves a duration such as "30s" or "10m", falling back on parse errors
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return d
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
