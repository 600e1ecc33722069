package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", FormatText)

	log.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "msg=hello") {
		t.Errorf("Expected text output to contain msg=hello, got %q", out)
	}
	if !strings.Contains(out, "service=notetaker") {
		t.Errorf("Expected service attribute in output, got %q", out)
	}
	if !strings.Contains(out, "key=value") {
		t.Errorf("Expected key=value in output, got %q", out)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", FormatJSON)

	log.Info("hello", "key", "value")

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("Failed to parse JSON log record: %v", err)
	}
	if record["msg"] != "hello" {
		t.Errorf("Expected msg 'hello', got %v", record["msg"])
	}
	if record["service"] != "notetaker" {
		t.Errorf("Expected service 'notetaker', got %v", record["service"])
	}
	if record["key"] != "value" {
		t.Errorf("Expected key 'value', got %v", record["key"])
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", FormatText)

	log.Info("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("Expected info record to be dropped at warn level, got %q", buf.String())
	}

	log.Warn("should be kept")
	if buf.Len() == 0 {
		t.Error("Expected warn record to be written at warn level")
	}
}
