package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// unsetenv clears key for the duration of the test
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"GOLF_STORAGE", "GOLF_DATA_DIR", "GOLF_ARTICLE_TIMEOUT", "GOLF_FEED_TIMEOUT", "LOG_FORMAT"} {
		unsetenv(t, key)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage != StorageFile {
		t.Errorf("Storage = %q, want %q", cfg.Storage, StorageFile)
	}
	if cfg.ArticleTimeout != 15*time.Second || cfg.FeedTimeout != 10*time.Second {
		t.Errorf("timeouts = %v/%v", cfg.ArticleTimeout, cfg.FeedTimeout)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q", cfg.LogFormat)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_EnvFileAndEnvironment(t *testing.T) {
	unsetenv(t, "GOLF_GIST_ID")
	unsetenv(t, "GOLF_FEED_TIMEOUT")
	t.Setenv("GOLF_STORAGE", "Gist")
	t.Setenv("GOLF_GITHUB_TOKEN", "from-env")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "GOLF_GIST_ID=abc123\nGOLF_GITHUB_TOKEN=from-file\nGOLF_FEED_TIMEOUT=3s\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage != StorageGist {
		t.Errorf("Storage = %q, want gist", cfg.Storage)
	}
	if cfg.GistID != "abc123" {
		t.Errorf("GistID = %q, want value from .env", cfg.GistID)
	}
	if cfg.GitHubToken != "from-env" {
		t.Errorf("GitHubToken = %q, environment should win over .env", cfg.GitHubToken)
	}
	if cfg.FeedTimeout != 3*time.Second {
		t.Errorf("FeedTimeout = %v, want 3s", cfg.FeedTimeout)
	}
}

func TestValidate(t *testing.T) {
	base := Config{DataDir: "/tmp/golf", ArticleTimeout: time.Second, FeedTimeout: time.Second}

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{"file", func(c *Config) { c.Storage = StorageFile }, false},
		{"file without dir", func(c *Config) { c.Storage = StorageFile; c.DataDir = "" }, true},
		{"gist", func(c *Config) { c.Storage = StorageGist; c.GistID = "id"; c.GitHubToken = "tok" }, false},
		{"gist without token", func(c *Config) { c.Storage = StorageGist; c.GistID = "id" }, true},
		{"redis", func(c *Config) { c.Storage = StorageRedis; c.RedisURL = "redis://localhost:6379/0" }, false},
		{"unknown", func(c *Config) { c.Storage = "s3" }, true},
		{"zero timeout", func(c *Config) { c.Storage = StorageFile; c.FeedTimeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.modify(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTwitterConfig_Complete(t *testing.T) {
	full := TwitterConfig{APIKey: "k", APISecret: "s", AccessToken: "t", AccessSecret: "a"}
	if !full.Complete() {
		t.Error("expected complete credentials")
	}
	full.AccessSecret = ""
	if full.Complete() {
		t.Error("expected incomplete credentials")
	}
}
