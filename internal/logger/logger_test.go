package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelInfo, FormatJSON, &buf)

	tests := []struct {
		name    string
		logFn   func()
		message string
		want    bool // should log
	}{
		{
			name:    "info message",
			logFn:   func() { log.Info("test message", Fields{"key": "value"}) },
			message: "test message",
			want:    true,
		},
		{
			name:    "debug below threshold",
			logFn:   func() { log.Debug("debug message", nil) },
			message: "debug message",
			want:    false,
		},
		{
			name:    "error with err",
			logFn:   func() { log.Error("error occurred", nil, errors.New("test error")) },
			message: "error occurred",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFn()

			logged := buf.Len() > 0
			if logged != tt.want {
				t.Fatalf("logged = %v, want %v", logged, tt.want)
			}
			if logged && !strings.Contains(buf.String(), tt.message) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.message)
			}
		})
	}
}

func TestLogEntry_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelDebug, FormatJSON, &buf)

	log.Error("fetch failed", Fields{"url": "https://example.com", "attempt": 1}, errors.New("timeout"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}

	if entry["msg"] != "fetch failed" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["level"] != "error" {
		t.Errorf("level = %v", entry["level"])
	}
	if entry["url"] != "https://example.com" {
		t.Errorf("url field = %v", entry["url"])
	}
	if entry["error"] != "timeout" {
		t.Errorf("error field = %v", entry["error"])
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelInfo, FormatText, &buf)

	log.Info("standings computed", Fields{"teams": 8})

	out := buf.String()
	if !strings.Contains(out, "standings computed") || !strings.Contains(out, "teams=8") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"Error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	original := defaultLogger
	defer SetDefault(original)

	SetDefault(New(LevelWarn, FormatJSON, &buf))

	Info("hidden", nil)
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at WARN level, got %q", buf.String())
	}

	Warn("visible", Fields{"tournament": "Masters"})
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected warn output, got %q", buf.String())
	}
}
