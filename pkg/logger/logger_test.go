package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONEnProduccion(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Output: &buf})

	l.Debug().Msg("oculto")
	l.Info().Str("code", "001").Msg("stock actualizado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "001", entry["code"])
	assert.Equal(t, "stock actualizado", entry["message"])
}

func TestNew_ConsolaEnDesarrollo(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "development", Level: "debug", Output: &buf})

	l.Debug().Msg("planilla cargada")

	assert.Contains(t, buf.String(), "planilla cargada")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("desconocido"))
}
