package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/caserma-ovest/turnivvf/internal/config"
	"github.com/caserma-ovest/turnivvf/pkg/core/roster"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Year:       2026,
		Seed:       42,
		RosterFile: "roster.yaml",
		OutputDir:  t.TempDir(),
		Months:     []int{1},
		SlotRules: []config.SlotRuleConfig{
			{
				RRule:                "FREQ=WEEKLY;BYDAY=SA",
				Kind:                 "weekend-day",
				RequiredDrivers:      1,
				RequiredFirefighters: 1,
			},
		},
	}
}

func testRoster() *roster.Roster {
	return &roster.Roster{
		Personnel: []roster.Person{
			{ID: "d1", Name: "Anna", Role: roster.RoleDriver, Rank: roster.RankSenior, WeeklyLimit: 2},
			{ID: "d2", Name: "Marco", Role: roster.RoleDriver, Rank: roster.RankJunior, WeeklyLimit: 2},
			{ID: "f1", Name: "Bruno", Role: roster.RoleFirefighter, Rank: roster.RankJunior, WeeklyLimit: 2},
			{ID: "f2", Name: "Carla", Role: roster.RoleFirefighter, Rank: roster.RankSenior, WeeklyLimit: 3},
		},
	}
}

func TestGenerateSchedule_DryRun(t *testing.T) {
	result, err := GenerateSchedule(context.Background(), testConfig(t), testRoster(), zap.NewNop(), true)
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Empty(t, result.Files)
	require.NotNil(t, result.Schedule)

	// January 2026 has 5 Saturdays
	assert.Len(t, result.Schedule.Assignments, 5)
	assert.True(t, result.Schedule.Clean())
}

func TestGenerateSchedule_WritesArtifacts(t *testing.T) {
	cfg := testConfig(t)

	result, err := GenerateSchedule(context.Background(), cfg, testRoster(), zap.NewNop(), false)
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "turni_2026.xlsx"), result.Files[0])
	assert.Equal(t, filepath.Join(cfg.OutputDir, "turni_2026.ics"), result.Files[1])
	assert.Equal(t, filepath.Join(cfg.OutputDir, "log_2026.txt"), result.Files[2])
	for _, f := range result.Files {
		assert.FileExists(t, f)
	}
}

func TestGenerateSchedule_Deterministic(t *testing.T) {
	first, err := GenerateSchedule(context.Background(), testConfig(t), testRoster(), zap.NewNop(), true)
	require.NoError(t, err)
	second, err := GenerateSchedule(context.Background(), testConfig(t), testRoster(), zap.NewNop(), true)
	require.NoError(t, err)

	assert.Equal(t, first.Schedule, second.Schedule)
}

func TestGenerateSchedule_BadCalendar(t *testing.T) {
	cfg := testConfig(t)
	cfg.SlotRules[0].RRule = "EVERY=SATURDAY"

	_, err := GenerateSchedule(context.Background(), cfg, testRoster(), zap.NewNop(), true)
	assert.ErrorContains(t, err, "calendar")
}
