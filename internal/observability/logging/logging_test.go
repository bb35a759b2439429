package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"keyshare/internal/observability/logging"
)

func TestNewLogger_LevelAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewLogger(logging.Config{
		ServiceName: "trustctl",
		Environment: "test",
		Level:       "WARN",
		Output:      &buf,
	})

	log.Info("dropped")
	log.Warn("kept", "k", "v")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("want 1 line, got %d: %s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal(lines[0], &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec["msg"] != "kept" || rec["service"] != "trustctl" || rec["env"] != "test" || rec["k"] != "v" {
		t.Fatalf("unexpected record: %v", rec)
	}
}
