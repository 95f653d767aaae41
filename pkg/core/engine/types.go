package engine

import (
	"time"

	"github.com/caserma-ovest/turnivvf/pkg/core/roster"
)

// SlotKind labels the duty pattern a slot belongs to (e.g. "weekend-day").
type SlotKind string

// ShiftSlot is a single duty shift requiring a fixed quota of drivers and
// firefighters on a specific date.
type ShiftSlot struct {
	Date                 time.Time
	Kind                 SlotKind
	RequiredDrivers      int
	RequiredFirefighters int
	MinSeniors           int
}

// Seats returns the total number of positions on the slot.
func (s ShiftSlot) Seats() int {
	return s.RequiredDrivers + s.RequiredFirefighters
}

// SlotStatus tracks a slot through the engine's state machine.
type SlotStatus string

const (
	SlotPending   SlotStatus = "pending"
	SlotFilling   SlotStatus = "filling"
	SlotFilled    SlotStatus = "filled"
	SlotDerogated SlotStatus = "derogated"
)

// Seat is one filled position. CreditedID differs from PersonID only when
// the alternate-coverage rule substituted the physically present person;
// the workload then counts against CreditedID.
type Seat struct {
	PersonID   string
	CreditedID string
	Role       roster.Role
}

// Substituted reports whether the seat is covered under the
// alternate-coverage rule.
func (s Seat) Substituted() bool {
	return s.PersonID != s.CreditedID
}

// Assignment is the outcome for one slot: the seats that were filled and
// the terminal status. Seats holds drivers first, then firefighters, each
// in pick order. Open seats are simply absent from Seats.
type Assignment struct {
	Slot   ShiftSlot
	Seats  []Seat
	Status SlotStatus
	Notes  []string
}

// OpenSeats returns how many positions were left unfilled.
func (a Assignment) OpenSeats() int {
	return a.Slot.Seats() - len(a.Seats)
}

// SeniorCount returns how many physically assigned people hold senior rank.
func (a Assignment) SeniorCount(r *roster.Roster) int {
	n := 0
	for _, seat := range a.Seats {
		if p := r.ByID(seat.PersonID); p != nil && p.Rank == roster.RankSenior {
			n++
		}
	}
	return n
}

// RelaxedRule identifies which hard constraint a derogation relaxed.
type RelaxedRule string

const (
	RelaxWeeklyLimit    RelaxedRule = "weekly-limit"
	RelaxSeniorityFloor RelaxedRule = "seniority-floor"
	RelaxSeatUnfilled   RelaxedRule = "seat-unfilled"
)

// IsValid reports whether the rule names a known relaxation.
func (r RelaxedRule) IsValid() bool {
	switch r {
	case RelaxWeeklyLimit, RelaxSeniorityFloor, RelaxSeatUnfilled:
		return true
	}
	return false
}

// Derogation records one deliberate relaxation of a hard constraint. The
// engine never relaxes silently: every entry here is user-visible.
type Derogation struct {
	Date      time.Time
	Kind      SlotKind
	Rule      RelaxedRule
	PersonIDs []string
	Detail    string
}

// Params are the run parameters supplied alongside the roster. The zero
// value is not usable; use DefaultParams.
type Params struct {
	Year              int
	Seed              int64
	SpecialRuleActive bool

	// RelaxationOrder controls which hard constraints may be relaxed when
	// a slot cannot be filled, and in what order. RelaxSeatUnfilled is
	// implicit and always last.
	RelaxationOrder []RelaxedRule
}

// DefaultParams returns the standard parameters for a year: weekly limit
// is relaxed before the seniority floor.
func DefaultParams(year int, seed int64) Params {
	return Params{
		Year:              year,
		Seed:              seed,
		SpecialRuleActive: false,
		RelaxationOrder:   []RelaxedRule{RelaxWeeklyLimit, RelaxSeniorityFloor},
	}
}
