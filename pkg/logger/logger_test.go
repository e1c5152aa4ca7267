package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitFirstCallWins(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	buf := &bytes.Buffer{}
	log := Init(Options{Level: "debug", Output: buf})
	log.Debug().Msg("first")

	other := &bytes.Buffer{}
	Init(Options{Level: "error", Output: other})
	got := Get()
	got.Debug().Msg("second")

	out := buf.String()
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Fatalf("output = %q", out)
	}
	if other.Len() != 0 {
		t.Fatalf("second Init must not rewire the sink: %q", other.String())
	}
}

func TestGetPanicsBeforeInit(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Get()
}

func TestParseLevelDefaults(t *testing.T) {
	cases := map[string]string{
		"debug":   "debug",
		"WARN":    "warn",
		"warning": "warn",
		"bogus":   "info",
		"":        "info",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
