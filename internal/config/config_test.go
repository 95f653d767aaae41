package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfigYAML = `
year: 2026
seed: 42
rosterFile: roster.yaml
specialRuleActive: true
months: [1, 2, 3]
relaxationOrder: [weekly-limit, seniority-floor]
slotRules:
  - rrule: FREQ=WEEKLY;BYDAY=SA,SU
    kind: weekend-day
    requiredDrivers: 1
    requiredFirefighters: 2
    minSeniors: 1
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "turni_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromPath_OK(t *testing.T) {
	cfg, err := LoadFromPath(writeConfig(t, sampleConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, 2026, cfg.Year)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "roster.yaml", cfg.RosterFile)
	assert.True(t, cfg.SpecialRuleActive)
	assert.Equal(t, []int{1, 2, 3}, cfg.Months)
	assert.Equal(t, []string{"weekly-limit", "seniority-floor"}, cfg.RelaxationOrder)
	require.Len(t, cfg.SlotRules, 1)
	assert.Equal(t, "weekend-day", cfg.SlotRules[0].Kind)

	// unset outputDir falls back
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config file")
}

func TestLoadFromPath_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "missing year",
			yaml: `
rosterFile: roster.yaml
slotRules:
  - rrule: FREQ=DAILY
    kind: duty
`,
			wantErr: "validation failed",
		},
		{
			name: "missing roster file",
			yaml: `
year: 2026
slotRules:
  - rrule: FREQ=DAILY
    kind: duty
`,
			wantErr: "validation failed",
		},
		{
			name: "no slot rules",
			yaml: `
year: 2026
rosterFile: roster.yaml
slotRules: []
`,
			wantErr: "validation failed",
		},
		{
			name: "bad rrule",
			yaml: `
year: 2026
rosterFile: roster.yaml
slotRules:
  - rrule: EVERY=SATURDAY
    kind: duty
`,
			wantErr: "invalid rrule",
		},
		{
			name: "month out of range",
			yaml: `
year: 2026
rosterFile: roster.yaml
months: [0]
slotRules:
  - rrule: FREQ=DAILY
    kind: duty
`,
			wantErr: "validation failed",
		},
		{
			name: "unknown relaxation rule",
			yaml: `
year: 2026
rosterFile: roster.yaml
relaxationOrder: [seat-unfilled]
slotRules:
  - rrule: FREQ=DAILY
    kind: duty
`,
			wantErr: "validation failed",
		},
		{
			name: "duplicate relaxation rule",
			yaml: `
year: 2026
rosterFile: roster.yaml
relaxationOrder: [weekly-limit, weekly-limit]
slotRules:
  - rrule: FREQ=DAILY
    kind: duty
`,
			wantErr: "twice",
		},
		{
			name: "floor exceeds seats",
			yaml: `
year: 2026
rosterFile: roster.yaml
slotRules:
  - rrule: FREQ=DAILY
    kind: duty
    requiredDrivers: 1
    minSeniors: 3
`,
			wantErr: "exceeds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromPath(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
