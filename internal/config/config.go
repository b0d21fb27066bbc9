// Package config loads golf-league settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values; command-line
// flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends
const (
	StorageFile  = "file"
	StorageGist  = "gist"
	StorageRedis = "redis"
)

// Config holds all application configuration
type Config struct {
	DataDir string
	Storage string

	// Gist storage
	GistID        string
	GitHubToken   string
	EncryptionKey string

	// Redis storage
	RedisURL string
	RedisKey string

	ScoreboardURL  string
	LeaderboardURL string
	ArticleTimeout time.Duration
	FeedTimeout    time.Duration

	LogLevel    string
	LogFormat   string
	MetricsFile string

	TelegramBotToken string
	TelegramChatID   string
	Twitter          TwitterConfig
}

// TwitterConfig holds OAuth1 credentials for posting digests
type TwitterConfig struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// Complete reports whether every credential is set
func (t TwitterConfig) Complete() bool {
	return t.APIKey != "" && t.APISecret != "" && t.AccessToken != "" && t.AccessSecret != ""
}

// Load reads configuration from envFile (".env" when empty; a missing file is fine)
// and then from environment variables.
func Load(envFile string) (*Config, error) {
	v, err := newViper(envFile)
	if err != nil {
		return nil, err
	}

	v.SetDefault("GOLF_DATA_DIR", "~/.local/share/golf-league")
	v.SetDefault("GOLF_STORAGE", StorageFile)
	v.SetDefault("GOLF_REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("GOLF_REDIS_KEY", "golf-league:league")
	v.SetDefault("GOLF_SCOREBOARD_URL", "https://site.api.espn.com/apis/site/v2/sports/golf/pga/scoreboard")
	v.SetDefault("GOLF_LEADERBOARD_URL", "https://site.api.espn.com/apis/site/v2/sports/golf/pga/leaderboard")
	v.SetDefault("GOLF_ARTICLE_TIMEOUT", "15s")
	v.SetDefault("GOLF_FEED_TIMEOUT", "10s")
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("LOG_FORMAT", "json")

	cfg := &Config{
		DataDir:          v.GetString("GOLF_DATA_DIR"),
		Storage:          strings.ToLower(strings.TrimSpace(v.GetString("GOLF_STORAGE"))),
		GistID:           v.GetString("GOLF_GIST_ID"),
		GitHubToken:      v.GetString("GOLF_GITHUB_TOKEN"),
		EncryptionKey:    v.GetString("GOLF_ENCRYPTION_KEY"),
		RedisURL:         v.GetString("GOLF_REDIS_URL"),
		RedisKey:         v.GetString("GOLF_REDIS_KEY"),
		ScoreboardURL:    v.GetString("GOLF_SCOREBOARD_URL"),
		LeaderboardURL:   v.GetString("GOLF_LEADERBOARD_URL"),
		ArticleTimeout:   v.GetDuration("GOLF_ARTICLE_TIMEOUT"),
		FeedTimeout:      v.GetDuration("GOLF_FEED_TIMEOUT"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        strings.ToLower(v.GetString("LOG_FORMAT")),
		MetricsFile:      v.GetString("GOLF_METRICS_FILE"),
		TelegramBotToken: v.GetString("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   v.GetString("TELEGRAM_CHAT_ID"),
		Twitter: TwitterConfig{
			APIKey:       v.GetString("TWITTER_API_KEY"),
			APISecret:    v.GetString("TWITTER_API_SECRET"),
			AccessToken:  v.GetString("TWITTER_ACCESS_TOKEN"),
			AccessSecret: v.GetString("TWITTER_ACCESS_SECRET"),
		},
	}
	return cfg, nil
}

// Validate checks that the selected storage backend has what it needs
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageFile:
		if c.DataDir == "" {
			return errors.New("config: GOLF_DATA_DIR must be set for file storage")
		}
	case StorageGist:
		if c.GistID == "" || c.GitHubToken == "" {
			return errors.New("config: GOLF_GIST_ID and GOLF_GITHUB_TOKEN must be set for gist storage")
		}
	case StorageRedis:
		if c.RedisURL == "" {
			return errors.New("config: GOLF_REDIS_URL must be set for redis storage")
		}
	default:
		return fmt.Errorf("config: unknown storage %q (must be file, gist or redis)", c.Storage)
	}
	if c.ArticleTimeout <= 0 || c.FeedTimeout <= 0 {
		return errors.New("config: timeouts must be positive durations such as 15s")
	}
	return nil
}

func newViper(envFile string) (*viper.Viper, error) {
	if envFile == "" {
		envFile = ".env"
	}
	// A missing .env is normal; real environment variables are enough
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: reading %s: %w", envFile, err)
	}

	v := viper.New()
	v.AutomaticEnv()
	return v, nil
}
