package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"debug":  logrus.DebugLevel,
		" WARN ": logrus.WarnLevel,
		"":       logrus.InfoLevel,
		"chatty": logrus.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")

	log.WithField("recipe_id", "3").Info("favorite toggled")
	log.Debug("dropped")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not a single JSON line: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "favorite toggled" || entry["level"] != "info" || entry["recipe_id"] != "3" {
		t.Fatalf("entry = %#v", entry)
	}
	if _, ok := entry["time"].(string); !ok {
		t.Fatalf("entry has no time field: %#v", entry)
	}
}

func TestSetup_CreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log, closer, err := Setup(dir, "debug")
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	log.Debug("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Contains(data, []byte(`"msg":"hello"`)) {
		t.Fatalf("log file = %q, want hello entry", data)
	}
}

func TestSetup_EmptyDirFails(t *testing.T) {
	if _, _, err := Setup("  ", "info"); err == nil {
		t.Fatalf("Setup returned nil error for empty dir")
	}
}
