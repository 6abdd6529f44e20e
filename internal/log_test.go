package internal

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func capture(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)
	fn()
	return buf.String()
}

func TestLoggerLevelGating(t *testing.T) {
	l := NewLogger(LogLevelWarn)

	out := capture(t, func() {
		l.Error("boom")
		l.Warn("degraded")
		l.Info("ignored")
		l.Debug("ignored")
	})

	if !strings.Contains(out, "[ERROR] boom") {
		t.Error("error line missing at WARN level")
	}
	if !strings.Contains(out, "[WARN] degraded") {
		t.Error("warn line missing at WARN level")
	}
	if strings.Contains(out, "[INFO]") || strings.Contains(out, "[DEBUG]") {
		t.Errorf("levels above WARN should be suppressed, got: %q", out)
	}
}

func TestLoggerDebugLevel(t *testing.T) {
	l := NewLogger(LogLevelDebug)

	out := capture(t, func() {
		l.Debug("metric %s score=%.3f", "demographic_parity", 0.914)
	})

	if !strings.Contains(out, "[DEBUG] metric demographic_parity score=0.914") {
		t.Errorf("debug line missing: %q", out)
	}
}
