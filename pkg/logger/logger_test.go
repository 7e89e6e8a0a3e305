package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "todo", "debug")
	log.WithField("task_id", 7).Debug("task toggled")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Unmarshal(%q): %v", buf.String(), err)
	}
	if entry["service"] != "todo" {
		t.Fatalf("expected service field, got %v", entry)
	}
	if entry["message"] != "task toggled" || entry["level"] != "debug" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts field, got %v", entry)
	}
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "todo", "loud")
	if log.Logger.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %v", log.Logger.GetLevel())
	}
	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug entry must be filtered, got %q", buf.String())
	}
}
