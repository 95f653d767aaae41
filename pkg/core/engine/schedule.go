package engine

import (
	"sort"
	"time"
)

// Schedule is the finished, ordered assignment table for a run plus its
// derogation log. It is a value object: exporters read it, nothing
// mutates it after Run returns.
type Schedule struct {
	Year        int
	Seed        int64
	Assignments []Assignment
	Derogations []Derogation
}

// Clean reports whether the run completed without any derogation.
func (s *Schedule) Clean() bool {
	return len(s.Derogations) == 0
}

// CreditedTotals returns the number of shifts credited to each person.
// Under the alternate-coverage rule this counts against the nominal
// person, not the one physically present.
func (s *Schedule) CreditedTotals() map[string]int {
	totals := make(map[string]int)
	for _, a := range s.Assignments {
		for _, seat := range a.Seats {
			totals[seat.CreditedID]++
		}
	}
	return totals
}

// PhysicalTotals returns the number of shifts each person physically
// worked.
func (s *Schedule) PhysicalTotals() map[string]int {
	totals := make(map[string]int)
	for _, a := range s.Assignments {
		for _, seat := range a.Seats {
			totals[seat.PersonID]++
		}
	}
	return totals
}

// RosterFor returns the assignments on the given calendar day, in slot
// order.
func (s *Schedule) RosterFor(day time.Time) []Assignment {
	key := dateKey(day)
	var out []Assignment
	for _, a := range s.Assignments {
		if dateKey(a.Slot.Date) == key {
			out = append(out, a)
		}
	}
	return out
}

// DerogationsFor returns the derogation entries recorded for the given
// calendar day.
func (s *Schedule) DerogationsFor(day time.Time) []Derogation {
	key := dateKey(day)
	var out []Derogation
	for _, d := range s.Derogations {
		if dateKey(d.Date) == key {
			out = append(out, d)
		}
	}
	return out
}

// Event is one person's presence on one slot, for calendar export.
type Event struct {
	Date       time.Time
	Kind       SlotKind
	PersonID   string
	CreditedID string
	Role       string
}

// Events flattens the schedule into a chronological per-person event
// list. Order is deterministic: assignment order, then seat order.
func (s *Schedule) Events() []Event {
	var events []Event
	for _, a := range s.Assignments {
		for _, seat := range a.Seats {
			events = append(events, Event{
				Date:       a.Slot.Date,
				Kind:       a.Slot.Kind,
				PersonID:   seat.PersonID,
				CreditedID: seat.CreditedID,
				Role:       string(seat.Role),
			})
		}
	}
	return events
}

// PersonIDs returns every person appearing in the schedule (physically
// or as credit), sorted.
func (s *Schedule) PersonIDs() []string {
	seen := make(map[string]bool)
	for _, a := range s.Assignments {
		for _, seat := range a.Seats {
			seen[seat.PersonID] = true
			seen[seat.CreditedID] = true
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
