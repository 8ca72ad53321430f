package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	// Given a production logger writing to a buffer
	var buf bytes.Buffer
	log, err := New("production", "info", &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// When an info entry is written
	log.Info("contact added")
	_ = log.Sync()

	// Then the output is a JSON object carrying the message
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output %q is not JSON: %v", buf.String(), err)
	}
	if entry["msg"] != "contact added" {
		t.Errorf("msg = %v, want %q", entry["msg"], "contact added")
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("development", "warn", &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Debug("hidden")
	log.Warn("shown")
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output %q contains debug entry below warn level", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("output %q missing warn entry", out)
	}
}

func TestNew_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		mode  string
		level string
	}{
		{name: "unknown mode", mode: "verbose", level: "info"},
		{name: "unknown level", mode: "development", level: "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.mode, tt.level, &bytes.Buffer{}); err == nil {
				t.Errorf("New(%q, %q) should return error", tt.mode, tt.level)
			}
		})
	}
}
