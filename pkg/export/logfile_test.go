package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLog_WithDerogations(t *testing.T) {
	out := RenderLog(sampleSchedule(), sampleRoster())

	assert.Contains(t, out, "Duty schedule 2026")
	assert.Contains(t, out, "Seed: 42")
	assert.Contains(t, out, "Personnel: 3 (1 drivers, 2 firefighters)")
	assert.Contains(t, out, "Slots planned: 2")
	assert.Contains(t, out, "Derogation register (1 entries):")
	assert.Contains(t, out, "[2026-02-07] [weekend-day] [seat-unfilled] f1 on vacation; f2 on vacation (f1, f2)")
}

func TestRenderLog_Clean(t *testing.T) {
	sched := sampleSchedule()
	sched.Derogations = nil

	out := RenderLog(sched, sampleRoster())

	assert.Contains(t, out, "no derogations")
	assert.NotContains(t, out, "Derogation register")
}

func TestWriteLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log_2026.txt")

	require.NoError(t, WriteLog(sampleSchedule(), sampleRoster(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Duty schedule 2026")
}
