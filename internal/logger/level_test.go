package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevelFiltering(t *testing.T) {
	levels := []string{"trace", "debug", "info", "warn", "error"}

	for ci, configured := range levels {
		for mi, message := range levels {
			name := configured + " logger, " + message + " message"
			t.Run(name, func(t *testing.T) {
				buf := &bytes.Buffer{}
				cl := NewConsoleLogger(buf, configured)

				switch message {
				case "trace":
					cl.LogTrace("msg")
				case "debug":
					cl.LogDebug("msg")
				case "info":
					cl.LogInfo("msg")
				case "warn":
					cl.LogWarn("msg")
				case "error":
					cl.LogError("msg")
				}

				shouldAppear := mi >= ci
				appeared := strings.Contains(buf.String(), "msg")
				if shouldAppear != appeared {
					t.Errorf("appeared = %v, want %v; output %q", appeared, shouldAppear, buf.String())
				}
			})
		}
	}
}

func TestNormalizeLogLevel(t *testing.T) {
	tests := map[string]string{
		"DEBUG":   "debug",
		" warn ":  "warn",
		"":        "info",
		"verbose": "info",
		"Error":   "error",
	}

	for input, want := range tests {
		if got := normalizeLogLevel(input); got != want {
			t.Errorf("normalizeLogLevel(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestLevelPrefix(t *testing.T) {
	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "trace").LogWarn("careful")

	out := buf.String()
	if !strings.Contains(out, "[WARN] careful") {
		t.Errorf("expected level prefix, got %q", out)
	}
	if !strings.HasPrefix(out, "[") || out[9] != ']' {
		t.Errorf("expected [HH:MM:SS] timestamp, got %q", out)
	}
}
