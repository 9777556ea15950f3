package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNew_JSONWithServiceAndComponent(t *testing.T) {
	var buf bytes.Buffer
	l := Component(New(Options{Level: "info", Output: &buf, Service: "registro-eventos"}), "auth")

	l.Debug().Msg("hidden")
	l.Info().Str("email", "ana@mail.com").Msg("login")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line above debug level, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry["service"] != "registro-eventos" || entry["component"] != "auth" || entry["message"] != "login" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestInitGet(t *testing.T) {
	Reset()
	defer Reset()

	defer func() {
		if recover() == nil {
			t.Fatal("Get before Init must panic")
		}
		var buf bytes.Buffer
		first := Init(Options{Output: &buf})
		Init(Options{Output: &bytes.Buffer{}, Level: "error"})
		got := Get()
		got.Info().Msg("x")
		first.Info().Msg("y")
		if strings.Count(buf.String(), "\n") != 2 {
			t.Fatalf("second Init must be ignored, got %q", buf.String())
		}
	}()
	Get()
}
