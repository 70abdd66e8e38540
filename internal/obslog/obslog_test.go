package obslog

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/rs/zerolog"
)

func TestHandler_WritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf)
	l := New(zl)

	l.With(slog.String("conn", "abc")).Info("connected", slog.Int("attempt", 2))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if record["message"] != "connected" {
		t.Errorf("message = %v, want connected", record["message"])
	}
	if record["conn"] != "abc" {
		t.Errorf("conn = %v, want abc", record["conn"])
	}
	if record["attempt"] != float64(2) {
		t.Errorf("attempt = %v, want 2", record["attempt"])
	}
}

func TestHandler_EnabledRespectsZerologLevel(t *testing.T) {
	zl := zerolog.New(nil).Level(zerolog.WarnLevel)
	l := New(zl)

	if l.Enabled(nil, slog.LevelInfo) {
		t.Error("Info should be disabled when zerolog level is Warn")
	}
	if !l.Enabled(nil, slog.LevelError) {
		t.Error("Error should be enabled when zerolog level is Warn")
	}
}
