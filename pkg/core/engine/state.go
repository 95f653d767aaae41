package engine

import (
	"time"

	"github.com/caserma-ovest/turnivvf/pkg/core/roster"
)

// windowDays is the span of the rolling weekly-limit window.
const windowDays = 7

// runState holds the counters mutated while slots are processed. Slot N's
// candidate pool depends on the counters of slots 1..N-1, which is why the
// engine is strictly sequential.
type runState struct {
	// creditedTotal counts shifts per credited person over the whole run.
	creditedTotal map[string]int

	// creditedDates lists the dates credited to each person, in the
	// order they were assigned (chronological, since slots are).
	creditedDates map[string][]time.Time

	// physical records who is physically present on each date, keyed by
	// "2006-01-02". Used for the no-double-booking rule.
	physical map[string]map[string]bool
}

func newRunState() *runState {
	return &runState{
		creditedTotal: make(map[string]int),
		creditedDates: make(map[string][]time.Time),
		physical:      make(map[string]map[string]bool),
	}
}

// creditedInWindow counts the shifts credited to the person within the
// trailing window [day-6, day]. Slots are processed chronologically, so
// bounding the trailing window bounds every 7-day window.
func (s *runState) creditedInWindow(personID string, day time.Time) int {
	day = roster.DateOnly(day)
	from := day.AddDate(0, 0, -(windowDays - 1))
	n := 0
	for _, d := range s.creditedDates[personID] {
		if !d.Before(from) && !d.After(day) {
			n++
		}
	}
	return n
}

// physicallyAssigned reports whether the person already holds a seat on
// the given date, in any slot.
func (s *runState) physicallyAssigned(personID string, day time.Time) bool {
	return s.physical[dateKey(day)][personID]
}

// record registers a filled seat: physical presence for the person on the
// slot date, and workload against the credited person.
func (s *runState) record(seat Seat, day time.Time) {
	key := dateKey(day)
	if s.physical[key] == nil {
		s.physical[key] = make(map[string]bool)
	}
	s.physical[key][seat.PersonID] = true

	s.creditedTotal[seat.CreditedID]++
	s.creditedDates[seat.CreditedID] = append(s.creditedDates[seat.CreditedID], roster.DateOnly(day))
}

func dateKey(day time.Time) string {
	return day.Format(roster.DateLayout)
}
