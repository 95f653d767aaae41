package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRoster() *Roster {
	return &Roster{
		Personnel: []Person{
			{ID: "d1", Name: "Anna", Role: RoleDriver, Rank: RankSenior, WeeklyLimit: 2},
			{ID: "f1", Name: "Bruno", Role: RoleFirefighter, Rank: RankJunior, WeeklyLimit: 2},
			{ID: "f2", Name: "Carla", Role: RoleFirefighter, Rank: RankSenior, WeeklyLimit: 3},
		},
		Vacations: []VacationPeriod{
			{PersonID: "f1", Start: date(2026, 8, 1), End: date(2026, 8, 15)},
		},
		PreferredPairs: []PreferredPair{
			{FirstID: "f1", SecondID: "f2", Weight: 1.5},
		},
		SpecialRule: &SpecialRule{NominalID: "f1", AlternateID: "f2"},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validRoster().Validate())
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Roster)
		wantErr string
	}{
		{
			name:    "empty roster",
			mutate:  func(r *Roster) { r.Personnel = nil },
			wantErr: "no personnel",
		},
		{
			name:    "duplicate id",
			mutate:  func(r *Roster) { r.Personnel[1].ID = "d1" },
			wantErr: "duplicate",
		},
		{
			name:    "missing id",
			mutate:  func(r *Roster) { r.Personnel[0].ID = "" },
			wantErr: "no id",
		},
		{
			name:    "bad role",
			mutate:  func(r *Roster) { r.Personnel[0].Role = "pilot" },
			wantErr: "invalid role",
		},
		{
			name:    "bad rank",
			mutate:  func(r *Roster) { r.Personnel[0].Rank = "cadet" },
			wantErr: "invalid rank",
		},
		{
			name:    "negative weekly limit",
			mutate:  func(r *Roster) { r.Personnel[0].WeeklyLimit = -1 },
			wantErr: "negative weekly limit",
		},
		{
			name:    "vacation for unknown person",
			mutate:  func(r *Roster) { r.Vacations[0].PersonID = "ghost" },
			wantErr: "unknown person",
		},
		{
			name:    "inverted vacation",
			mutate:  func(r *Roster) { r.Vacations[0].End = date(2026, 7, 1) },
			wantErr: "before it starts",
		},
		{
			name:    "pair with itself",
			mutate:  func(r *Roster) { r.PreferredPairs[0].SecondID = "f1" },
			wantErr: "twice",
		},
		{
			name:    "pair with unknown person",
			mutate:  func(r *Roster) { r.PreferredPairs[0].SecondID = "ghost" },
			wantErr: "unknown person",
		},
		{
			name:    "pair without weight",
			mutate:  func(r *Roster) { r.PreferredPairs[0].Weight = 0 },
			wantErr: "non-positive weight",
		},
		{
			name:    "special rule self-reference",
			mutate:  func(r *Roster) { r.SpecialRule.AlternateID = "f1" },
			wantErr: "same person",
		},
		{
			name:    "special rule unknown alternate",
			mutate:  func(r *Roster) { r.SpecialRule.AlternateID = "ghost" },
			wantErr: "unknown alternate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRoster()
			tt.mutate(r)
			err := r.Validate()
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestVacationPeriod_Contains(t *testing.T) {
	v := VacationPeriod{PersonID: "f1", Start: date(2026, 8, 1), End: date(2026, 8, 15)}

	assert.True(t, v.Contains(date(2026, 8, 1)))
	assert.True(t, v.Contains(date(2026, 8, 15)))
	assert.True(t, v.Contains(time.Date(2026, 8, 15, 23, 30, 0, 0, time.UTC)))
	assert.False(t, v.Contains(date(2026, 7, 31)))
	assert.False(t, v.Contains(date(2026, 8, 16)))
}

func TestRoster_Lookups(t *testing.T) {
	r := validRoster()

	require.NotNil(t, r.ByID("f2"))
	assert.Equal(t, "Carla", r.ByID("f2").Name)
	assert.Nil(t, r.ByID("ghost"))

	drivers := r.WithRole(RoleDriver)
	require.Len(t, drivers, 1)
	assert.Equal(t, "d1", drivers[0].ID)
	assert.Len(t, r.WithRole(RoleFirefighter), 2)

	assert.True(t, r.OnVacation("f1", date(2026, 8, 10)))
	assert.False(t, r.OnVacation("f1", date(2026, 9, 1)))
	assert.False(t, r.OnVacation("f2", date(2026, 8, 10)))

	pairs := r.PairsInvolving("f2")
	require.Len(t, pairs, 1)
	assert.Equal(t, "f1", pairs[0].PartnerOf("f2"))
	assert.Equal(t, "", pairs[0].PartnerOf("d1"))
}
