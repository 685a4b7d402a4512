package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewDefaultsToErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New unexpected error: %v", err)
	}
	if log.Level() != zapcore.ErrorLevel {
		t.Fatalf("Level = %v; want error", log.Level())
	}

	log.Infow("ignoré")
	log.Errorw("échec de modification du presse-papier", "error", "boom")
	_ = log.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["level"] != "error" || entry["error"] != "boom" {
		t.Fatalf("entry = %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("entry has no timestamp: %v", entry)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "error", Output: &buf})
	if err != nil {
		t.Fatalf("New unexpected error: %v", err)
	}
	if err := log.SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel unexpected error: %v", err)
	}
	log.Debugw("visible")
	_ = log.Sync()
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("debug line missing after SetLevel: %q", buf.String())
	}

	if err := log.SetLevel("bavard"); err == nil {
		t.Fatalf("SetLevel(bavard) expected error, got nil")
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New(Options{Level: "bavard"}); err == nil {
		t.Fatalf("New with invalid level expected error, got nil")
	}
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subclip.log")
	var buf bytes.Buffer
	log, err := New(Options{File: path, Color: true, Output: &buf})
	if err != nil {
		t.Fatalf("New unexpected error: %v", err)
	}
	log.Errorw("dans le fichier")
	if err := log.Close(); err != nil {
		t.Fatalf("Close unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "dans le fichier") {
		t.Fatalf("log file content = %q", data)
	}
	if strings.Contains(string(data), "\x1b[") {
		t.Fatalf("log file contains color codes: %q", data)
	}
}
