package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	JSON(map[string]any{"event": "db_migration_failed", "status": "error"})
	JSON(map[string]any{"event": "db_migration_step", "status": "success"})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))

	assert.Equal(t, "error", first["level"])
	assert.Equal(t, "info", second["level"])
	assert.NotEmpty(t, first["ts"])
}

func TestInfoAndError(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	Error("store_connect_failed", errors.New("boom"), map[string]any{"driver": "mongodb"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "store_connect_failed", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "mongodb", entry["driver"])

	buf.Reset()
	Info("server_starting", map[string]any{"addr": ":8080"})
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, ":8080", entry["addr"])
}
