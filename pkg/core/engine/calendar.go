package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"
)

// SlotRule is a recurring slot pattern, expanded over the target year to
// produce the planned calendar. The recurrence is an RFC 5545 RRULE
// string, e.g. "FREQ=WEEKLY;BYDAY=FR,SA,SU".
type SlotRule struct {
	RRule                string
	Kind                 SlotKind
	RequiredDrivers      int
	RequiredFirefighters int
	MinSeniors           int
}

// BuildCalendar expands the slot rules over the year. months, when
// non-empty, restricts the calendar to those months (1-12); the original
// planning tool supports generating a partial year the same way. The
// result is sorted chronologically, slots of different kinds on the same
// date ordered by kind.
func BuildCalendar(year int, rules []SlotRule, months []int) ([]ShiftSlot, error) {
	if year <= 0 {
		return nil, fmt.Errorf("invalid year %d", year)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("no slot rules configured")
	}

	active := make(map[time.Month]bool)
	for _, m := range months {
		if m < 1 || m > 12 {
			return nil, fmt.Errorf("invalid month %d", m)
		}
		active[time.Month(m)] = true
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	var slots []ShiftSlot
	seen := make(map[string]bool)
	for i, rule := range rules {
		if rule.Kind == "" {
			return nil, fmt.Errorf("slot rule %d has no kind", i)
		}
		r, err := rrule.StrToRRule(rule.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in slot rule %q: %w", rule.Kind, err)
		}
		r.DTStart(start)

		for _, day := range r.Between(start, end, true) {
			if len(active) > 0 && !active[day.Month()] {
				continue
			}
			key := dateKey(day) + "/" + string(rule.Kind)
			if seen[key] {
				return nil, fmt.Errorf("slot rules produce duplicate slot %s", key)
			}
			seen[key] = true
			slots = append(slots, ShiftSlot{
				Date:                 time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
				Kind:                 rule.Kind,
				RequiredDrivers:      rule.RequiredDrivers,
				RequiredFirefighters: rule.RequiredFirefighters,
				MinSeniors:           rule.MinSeniors,
			})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		return slots[i].Kind < slots[j].Kind
	})

	return slots, nil
}
