package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type logRecord struct {
	Level string `json:"level"`
	Msg   string `json:"msg"`
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer

	// Use JSON handler for easier parsing in tests
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	testLogger := slog.New(handler)

	originalLogger := Logger
	Logger = testLogger
	defer func() { Logger = originalLogger }()

	tests := []struct {
		name  string
		fn    func(msg string, args ...any)
		level string
		msg   string
	}{
		{
			name:  "Info",
			fn:    Info,
			level: "INFO",
			msg:   "info message",
		},
		{
			name:  "Error",
			fn:    Error,
			level: "ERROR",
			msg:   "error message",
		},
		{
			name:  "Warn",
			fn:    Warn,
			level: "WARN",
			msg:   "warn message",
		},
		{
			name:  "Debug",
			fn:    Debug,
			level: "DEBUG",
			msg:   "debug message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn(tt.msg)

			var rec logRecord
			if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
				t.Fatalf("failed to unmarshal log output: %v", err)
			}

			if rec.Msg != tt.msg {
				t.Errorf("expected msg %q, got %q", tt.msg, rec.Msg)
			}
			if rec.Level != tt.level {
				t.Errorf("expected level %q, got %q", tt.level, rec.Level)
			}
		})
	}
}

func TestDefaultLogger(t *testing.T) {
	if Logger == nil {
		t.Error("Logger should be initialized")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetup_File(t *testing.T) {
	originalLogger := Logger
	defer func() { Logger = originalLogger }()

	path := filepath.Join(t.TempDir(), "logs", "app.log")
	closer, err := Setup(path, "debug")
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	Debug("written to file", "key", "value")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file missing message, got %q", string(data))
	}
}

func TestSetup_Discard(t *testing.T) {
	originalLogger := Logger
	defer func() { Logger = originalLogger }()

	closer, err := Setup("", "info")
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	defer closer.Close()

	Info("dropped")
}
