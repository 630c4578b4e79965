package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesJSONWithService(t *testing.T) {
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Init(Options{Level: "debug", Output: &buf, Service: "todo-api"})

	l := Component("store")
	l.Debug().Str("driver", "sqlite").Msg("connected")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "todo-api", event["service"])
	assert.Equal(t, "store", event["component"])
	assert.Equal(t, "sqlite", event["driver"])
	assert.Equal(t, "connected", event["message"])
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})

	l := Get()
	l.Info().Msg("hello")
	assert.NotZero(t, first.Len())
	assert.Zero(t, second.Len())
}

func TestInit_LevelFiltersDebug(t *testing.T) {
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Init(Options{Level: "warn", Output: &buf})

	l := Get()
	l.Info().Msg("dropped")
	assert.Zero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.TraceLevel, ParseLevel("TRACE"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warning "))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}
