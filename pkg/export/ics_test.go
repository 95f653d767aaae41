package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendar_Events(t *testing.T) {
	cal := Calendar(sampleSchedule(), sampleRoster())
	serialized := cal.Serialize()

	assert.Contains(t, serialized, "BEGIN:VCALENDAR")
	assert.Contains(t, serialized, "X-WR-CALNAME:Duty shifts 2026")

	// one event per seated person, with deterministic UIDs
	assert.Equal(t, 3, strings.Count(serialized, "BEGIN:VEVENT"))
	assert.Contains(t, serialized, "UID:2026-01-03-weekend-day-d1@turnivvf")
	assert.Contains(t, serialized, "UID:2026-01-03-weekend-day-f2@turnivvf")
	assert.Contains(t, serialized, "UID:2026-02-07-weekend-day-d1@turnivvf")

	assert.Contains(t, serialized, "SUMMARY:Anna (driver)")
	assert.Contains(t, serialized, "Covering for f1")

	// driver starts an hour before the crew
	assert.Contains(t, serialized, "DTSTART:20260103T110000Z")
	assert.Contains(t, serialized, "DTSTART:20260103T120000Z")
}

func TestCalendar_DeterministicOutput(t *testing.T) {
	a := Calendar(sampleSchedule(), sampleRoster()).Serialize()
	b := Calendar(sampleSchedule(), sampleRoster()).Serialize()

	assert.Equal(t, a, b)
}

func TestWriteCalendar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turni_2026.ics")

	require.NoError(t, WriteCalendar(sampleSchedule(), sampleRoster(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "END:VCALENDAR")
}
