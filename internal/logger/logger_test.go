package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"trace", zerolog.TraceLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestNewDevelopmentWritesShortLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewDevelopment(&buf)
	log.Info().Msg("hello")

	out := buf.String()
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "hello")
}

func TestNewProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewProduction(&buf)
	log.Warn().Str("path", "/tmp/x").Msg("careful")

	out := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(out, "{"), "expected JSON line, got %q", out)
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"path":"/tmp/x"`)
}
