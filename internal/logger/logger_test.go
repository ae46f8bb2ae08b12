package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Run("development logs text at debug", func(t *testing.T) {
		var buf bytes.Buffer
		flush := Init(Options{Dev: true, Out: &buf})
		defer flush()

		slog.Debug("fetched goals", "user_id", "u1")

		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "user_id=u1")
	})

	t.Run("production logs json at info", func(t *testing.T) {
		var buf bytes.Buffer
		flush := Init(Options{Out: &buf})
		defer flush()

		slog.Debug("hidden")
		slog.Info("saved goal", "goal_id", "g1")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "saved goal", entry["msg"])
		assert.Equal(t, "g1", entry["goal_id"])
		assert.Same(t, Log, slog.Default())
	})
}
