package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCalendar_WeeklyRule(t *testing.T) {
	rules := []SlotRule{{
		RRule:                "FREQ=WEEKLY;BYDAY=SA",
		Kind:                 "weekend-day",
		RequiredDrivers:      1,
		RequiredFirefighters: 2,
		MinSeniors:           1,
	}}

	slots, err := BuildCalendar(2026, rules, nil)
	require.NoError(t, err)

	// 2026 has 52 Saturdays
	assert.Len(t, slots, 52)
	for _, s := range slots {
		assert.Equal(t, time.Saturday, s.Date.Weekday())
		assert.Equal(t, SlotKind("weekend-day"), s.Kind)
		assert.Equal(t, 1, s.RequiredDrivers)
		assert.Equal(t, 2, s.RequiredFirefighters)
		assert.Equal(t, 1, s.MinSeniors)
	}
}

func TestBuildCalendar_MonthFilter(t *testing.T) {
	rules := []SlotRule{{RRule: "FREQ=WEEKLY;BYDAY=SA,SU", Kind: "weekend-day", RequiredFirefighters: 1}}

	slots, err := BuildCalendar(2026, rules, []int{7})
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.Equal(t, time.July, s.Date.Month())
	}
	// July 2026 has 4 Saturdays and 4 Sundays
	assert.Len(t, slots, 8)
}

func TestBuildCalendar_SortedAcrossRules(t *testing.T) {
	rules := []SlotRule{
		{RRule: "FREQ=WEEKLY;BYDAY=SU", Kind: "sunday", RequiredFirefighters: 1},
		{RRule: "FREQ=WEEKLY;BYDAY=SA", Kind: "saturday", RequiredFirefighters: 1},
	}

	slots, err := BuildCalendar(2026, rules, []int{1})
	require.NoError(t, err)

	for i := 1; i < len(slots); i++ {
		assert.False(t, slots[i].Date.Before(slots[i-1].Date))
	}
}

func TestBuildCalendar_DuplicateSlot(t *testing.T) {
	rules := []SlotRule{
		{RRule: "FREQ=WEEKLY;BYDAY=SA", Kind: "duty", RequiredFirefighters: 1},
		{RRule: "FREQ=WEEKLY;BYDAY=SA", Kind: "duty", RequiredFirefighters: 2},
	}

	_, err := BuildCalendar(2026, rules, nil)
	assert.ErrorContains(t, err, "duplicate")
}

func TestBuildCalendar_Errors(t *testing.T) {
	_, err := BuildCalendar(0, []SlotRule{{RRule: "FREQ=DAILY", Kind: "duty"}}, nil)
	assert.ErrorContains(t, err, "year")

	_, err = BuildCalendar(2026, nil, nil)
	assert.ErrorContains(t, err, "no slot rules")

	_, err = BuildCalendar(2026, []SlotRule{{RRule: "FREQ=NOPE", Kind: "duty"}}, nil)
	assert.ErrorContains(t, err, "rrule")

	_, err = BuildCalendar(2026, []SlotRule{{RRule: "FREQ=DAILY", Kind: ""}}, nil)
	assert.ErrorContains(t, err, "kind")

	_, err = BuildCalendar(2026, []SlotRule{{RRule: "FREQ=DAILY", Kind: "duty"}}, []int{13})
	assert.ErrorContains(t, err, "month")
}
