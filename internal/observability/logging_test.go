package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: "debug", Format: "json", Writer: &buf})
	log.With(String("component", "engine")).Info(context.Background(), "engine started",
		Int("points", 40), Float("seed", 40), Err(errors.New("boom")))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decoding log line %q: %v", buf.String(), err)
	}
	if rec["msg"] != "engine started" {
		t.Errorf("msg = %v", rec["msg"])
	}
	if rec["component"] != "engine" {
		t.Errorf("component = %v", rec["component"])
	}
	if rec["points"] != float64(40) {
		t.Errorf("points = %v", rec["points"])
	}
	if rec["error"] != "boom" {
		t.Errorf("error = %v", rec["error"])
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: "warn", Writer: &buf})
	ctx := context.Background()
	log.Debug(ctx, "hidden debug")
	log.Info(ctx, "hidden info")
	log.Warn(ctx, "visible warn")
	log.Error(ctx, "visible error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("below-level records written:\n%s", out)
	}
	if !strings.Contains(out, "visible warn") || !strings.Contains(out, "visible error") {
		t.Errorf("expected warn and error records:\n%s", out)
	}
}

func TestNoopLogger(t *testing.T) {
	log := NoopLogger().With(String("k", "v"))
	log.Info(context.Background(), "dropped")
}

func TestWithRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(LoggerConfig{Format: "json", Writer: &buf})

	ctx, log := WithRequestLogger(context.Background(), base)
	id := RequestIDFromContext(ctx)
	if id == "" {
		t.Fatal("expected request id on context")
	}
	log.Info(ctx, "handled")
	if !strings.Contains(buf.String(), id) {
		t.Errorf("log line missing request id %s:\n%s", id, buf.String())
	}

	ctx2, _ := WithRequestLogger(ctx, nil)
	if RequestIDFromContext(ctx2) != id {
		t.Error("existing request id was replaced")
	}
}
