package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/dining-sim/internal/logger"
)

func TestFormatLineIsSingleLine(t *testing.T) {
	line := FormatLine(SimulationCompletedEvent{RunID: "r1", Seed: 4, ServedPatrons: 12, MeanWait: 3.25})
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Equal(t, 1, strings.Count(line, "\n"))
	assert.Contains(t, line, "run_id=r1")
	assert.Contains(t, line, "served=12")
	assert.Contains(t, line, "mean_wait=3.25")
}

func TestHandleMessageAppendsToLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	c := &Consumer{LogDir: dir, Log: logger.Discard()}
	for _, id := range []string{"a", "b"} {
		body, err := json.Marshal(SimulationCompletedEvent{RunID: id})
		require.NoError(t, err)
		require.NoError(t, c.HandleMessage(body))
	}
	data, err := os.ReadFile(filepath.Join(dir, "simulation.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "run_id=a")
	assert.Contains(t, lines[1], "run_id=b")
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	c := &Consumer{LogDir: t.TempDir(), Log: logger.Discard()}
	err := c.HandleMessage([]byte("not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
	var syntax *json.SyntaxError
	assert.True(t, errors.As(err, &syntax))
}

func TestHandleMessageReportsUnwritableLogDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	c := &Consumer{LogDir: file, Log: logger.Discard()}
	body, err := json.Marshal(SimulationCompletedEvent{RunID: "a"})
	require.NoError(t, err)
	err = c.HandleMessage(body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mkdir logs")
}
