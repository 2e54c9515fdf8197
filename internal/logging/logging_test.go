package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "folio.log")

	logger, closer, err := New("info", file)
	require.NoError(t, err)
	logger.Debug().Msg("hidden")
	logger.Info().Str("page", "1").Msg("shown")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"shown"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, closer, err := New("loud", "")
	assert.Error(t, err)
	assert.NotNil(t, closer)
}

func TestNewWriterLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(zerolog.WarnLevel, &buf)

	logger.Info().Msg("skipped")
	assert.Zero(t, buf.Len())
	logger.Warn().Msg("kept")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}
