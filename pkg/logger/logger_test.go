package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":      zerolog.DebugLevel,
		"info":       zerolog.InfoLevel,
		"warn":       zerolog.WarnLevel,
		"error":      zerolog.ErrorLevel,
		"":           zerolog.InfoLevel,
		"cualquiera": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "nivel %q", in)
	}
}

func TestNew_NivelYServicio(t *testing.T) {
	l := New(Config{Env: "production", Level: "warn", Service: "almacen-api"})
	require.NotNil(t, l)
	assert.Equal(t, zerolog.WarnLevel, l.Zerolog().GetLevel())
}
