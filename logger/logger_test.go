package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tranvictor/circles-groups/logger"
)

func TestQuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, false)
	log.Debug().Msg("hidden detail")
	log.Warn().Msg("visible warning")

	out := buf.String()
	if strings.Contains(out, "hidden detail") {
		t.Fatalf("debug line leaked without verbose: %q", out)
	}
	if !strings.Contains(out, "visible warning") {
		t.Fatalf("warning missing: %q", out)
	}
}

func TestVerboseShowsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, true)
	log.Debug().Str("group", "0xabc").Msg("source failed")
	if !strings.Contains(buf.String(), "source failed") {
		t.Fatalf("debug line missing: %q", buf.String())
	}
}
