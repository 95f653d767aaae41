package export

import (
	"fmt"
	"os"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/caserma-ovest/turnivvf/pkg/core/engine"
	"github.com/caserma-ovest/turnivvf/pkg/core/roster"
)

// Driver shifts start an hour before the crew so the vehicle is checked
// and ready; each entry is blocked out as a one-hour reminder, not the
// full duty window.
const (
	driverStartHour      = 11
	firefighterStartHour = 12
)

// Calendar renders the schedule as an iCalendar feed with one event per
// seated person per slot. Event UIDs are deterministic so re-importing a
// regenerated schedule updates entries instead of duplicating them.
func Calendar(sched *engine.Schedule, r *roster.Roster) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//caserma-ovest//turnivvf//EN")
	cal.SetXWRCalName(fmt.Sprintf("Duty shifts %d", sched.Year))

	for _, a := range sched.Assignments {
		firefighterIdx := 0
		for _, seat := range a.Seats {
			start := seatStart(a.Slot.Date, seat.Role, firefighterIdx)
			if seat.Role == roster.RoleFirefighter {
				firefighterIdx++
			}

			uid := fmt.Sprintf("%s-%s-%s@turnivvf", a.Slot.Date.Format(roster.DateLayout), a.Slot.Kind, seat.PersonID)
			event := cal.AddEvent(uid)
			event.SetDtStampTime(a.Slot.Date)
			event.SetStartAt(start)
			event.SetEndAt(start.Add(time.Hour))
			event.SetSummary(fmt.Sprintf("%s (%s)", displayName(r, seat), seat.Role))
			if seat.Substituted() {
				event.SetDescription(fmt.Sprintf("Covering for %s", seat.CreditedID))
			}
		}
	}

	return cal
}

// WriteCalendar renders the schedule and saves the serialized feed at
// path.
func WriteCalendar(sched *engine.Schedule, r *roster.Roster, path string) error {
	cal := Calendar(sched, r)
	if err := os.WriteFile(path, []byte(cal.Serialize()), 0644); err != nil {
		return fmt.Errorf("failed to write calendar file: %w", err)
	}
	return nil
}

func seatStart(day time.Time, role roster.Role, firefighterIdx int) time.Time {
	hour := driverStartHour
	if role == roster.RoleFirefighter {
		hour = firefighterStartHour + firefighterIdx
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
}
