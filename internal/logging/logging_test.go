package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "debug", Format: "json"}, &buf)

	logger.Debug().Str("component", "web").Msg("hola")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "web", entry["component"])
	assert.Equal(t, "hola", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNew_Level(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug", true, true},
		{"INFO", false, true},
		{"warn", false, false},
		{"", false, true},
		{"nonsense", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tt.level, Format: "json"}, &buf)

			logger.Debug().Msg("debug-line")
			logger.Info().Msg("info-line")

			assert.Equal(t, tt.wantDebug, strings.Contains(buf.String(), "debug-line"))
			assert.Equal(t, tt.wantInfo, strings.Contains(buf.String(), "info-line"))
		})
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "console"}, &buf)

	logger.Info().Str("request_id", "abc").Msg("plan ready")

	out := buf.String()
	assert.Contains(t, out, "plan ready")
	assert.Contains(t, out, "request_id=abc")
	assert.NotContains(t, out, "\x1b[", "non-terminal writers get no colors")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lessonplan.log")

	f, err := OpenFile(path)
	require.NoError(t, err)
	logger := New(Config{Format: "json"}, f)
	logger.Info().Msg("first")
	require.NoError(t, f.Close())

	f, err = OpenFile(path)
	require.NoError(t, err)
	New(Config{Format: "json"}, f).Info().Msg("second")
	require.NoError(t, f.Close())

	data, err := readFile(path)
	require.NoError(t, err)
	assert.Contains(t, data, "first")
	assert.Contains(t, data, "second")
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	return string(data), err
}
