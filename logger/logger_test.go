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

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn", "json")
	l.Info("hidden")
	l.Warn("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record should be filtered at warn level")
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &rec); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", out, err)
	}
	if rec["msg"] != "shown" || rec["k"] != "v" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitLogsClearsJSON(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "old.json"), []byte("{}"), 0o644)
	os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0o644)

	if err := InitLogs(dir); err != nil {
		t.Fatalf("InitLogs() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "old.json")); !os.IsNotExist(err) {
		t.Error("expected old.json removed")
	}
	if _, err := os.Stat(filepath.Join(dir, "keep.txt")); err != nil {
		t.Error("expected keep.txt kept")
	}

	nested := filepath.Join(dir, "a", "b")
	if err := InitLogs(nested); err != nil {
		t.Fatalf("InitLogs(nested) error = %v", err)
	}
}

func TestLogJSON(t *testing.T) {
	dir := t.TempDir()
	data := map[string]string{"text": "漢字"}
	if err := LogJSON(dir, "req_document", data); err != nil {
		t.Fatalf("LogJSON() error = %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "req_document.json"))
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(b, &got); err != nil || got["text"] != "漢字" {
		t.Errorf("dump = %s (%v)", b, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "req_document.json.tmp")); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestLogJSONUnmarshalable(t *testing.T) {
	if err := LogJSON(t.TempDir(), "bad", make(chan int)); err == nil {
		t.Error("expected marshal error")
	}
}
