package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesStructuredJSON(t *testing.T) {
	t.Cleanup(Reset)
	var buf bytes.Buffer

	Init(Options{Level: "debug", Output: &buf})
	log := Component("posts")
	log.Info().Str("post_id", "p1").Msg("post created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "forum", entry["service"])
	assert.Equal(t, "posts", entry["component"])
	assert.Equal(t, "p1", entry["post_id"])
	assert.Equal(t, "post created", entry["message"])
}

func TestInit_OnlyFirstCallCounts(t *testing.T) {
	t.Cleanup(Reset)
	var first, second bytes.Buffer

	Init(Options{Output: &first, Service: "one"})
	Init(Options{Output: &second, Service: "two"})
	log := Get()
	log.Info().Msg("hello")

	assert.Contains(t, first.String(), `"service":"one"`)
	assert.Zero(t, second.Len())
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	assert.Panics(t, func() { Get() })
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}
