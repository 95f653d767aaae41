package engine

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/caserma-ovest/turnivvf/pkg/core/roster"
)

// Engine assigns personnel to a calendar of shift slots. Slots are
// processed strictly in chronological order: each slot's candidate pool
// depends on the counters accumulated by the slots before it. A single
// seeded generator is threaded through the run and consumed only for
// tie-breaking, so identical inputs produce byte-identical schedules.
type Engine struct {
	roster *roster.Roster
	params Params
	eval   *evaluator

	rng         *rand.Rand
	state       *runState
	derogations []Derogation
}

// New validates the roster and parameters and returns a ready engine.
// Validation failures are fatal configuration errors: no slot is
// processed.
func New(r *roster.Roster, params Params) (*Engine, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid roster: %w", err)
	}
	if len(params.RelaxationOrder) == 0 {
		params.RelaxationOrder = []RelaxedRule{RelaxWeeklyLimit, RelaxSeniorityFloor}
	}
	seen := make(map[RelaxedRule]bool)
	for _, rule := range params.RelaxationOrder {
		if rule != RelaxWeeklyLimit && rule != RelaxSeniorityFloor {
			return nil, fmt.Errorf("relaxation order may only contain %q and %q, got %q",
				RelaxWeeklyLimit, RelaxSeniorityFloor, rule)
		}
		if seen[rule] {
			return nil, fmt.Errorf("relaxation order lists %q twice", rule)
		}
		seen[rule] = true
	}
	if params.SpecialRuleActive && r.SpecialRule == nil {
		return nil, fmt.Errorf("special rule is active but the roster defines none")
	}

	return &Engine{
		roster: r,
		params: params,
		eval:   &evaluator{roster: r, params: params},
	}, nil
}

// Run processes the planned calendar and returns the finished schedule
// plus its derogation log. The calendar is validated up front; any
// malformed slot aborts the run before the first assignment.
func (e *Engine) Run(calendar []ShiftSlot) (*Schedule, error) {
	slots := make([]ShiftSlot, len(calendar))
	copy(slots, calendar)
	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		return slots[i].Kind < slots[j].Kind
	})

	for _, slot := range slots {
		if slot.RequiredDrivers < 0 || slot.RequiredFirefighters < 0 {
			return nil, fmt.Errorf("slot %s has negative seat requirements", dateKey(slot.Date))
		}
		if slot.MinSeniors < 0 {
			return nil, fmt.Errorf("slot %s has negative seniority floor", dateKey(slot.Date))
		}
		if slot.MinSeniors > slot.Seats() {
			return nil, fmt.Errorf("slot %s requires %d seniors but only has %d seats",
				dateKey(slot.Date), slot.MinSeniors, slot.Seats())
		}
	}

	e.rng = rand.New(rand.NewSource(e.params.Seed))
	e.state = newRunState()
	e.derogations = nil

	assignments := make([]Assignment, 0, len(slots))
	for _, slot := range slots {
		assignments = append(assignments, e.fillSlot(slot))
	}

	return &Schedule{
		Year:        e.params.Year,
		Seed:        e.params.Seed,
		Assignments: assignments,
		Derogations: e.derogations,
	}, nil
}

// seatDemand tracks the open seats of one category while a slot fills.
// Drivers come first so their picks are visible to firefighter scoring.
type seatDemand struct {
	role roster.Role
	open int
}

// rankMode selects the ordering of a ranked pool.
type rankMode int

const (
	// rankByScore orders by soft score, tie-broken by the seeded stream.
	rankByScore rankMode = iota
	// rankByLoad orders by credited load ascending (least-loaded first),
	// used when the weekly limit has been relaxed.
	rankByLoad
)

// fillSlot runs the per-slot state machine: Pending -> Filling ->
// Filled | Derogated.
func (e *Engine) fillSlot(slot ShiftSlot) Assignment {
	demand := []*seatDemand{
		{role: roster.RoleDriver, open: slot.RequiredDrivers},
		{role: roster.RoleFirefighter, open: slot.RequiredFirefighters},
	}
	var seated []Seat
	var notes []string
	taken := make(map[string]bool)
	floor := slot.MinSeniors
	slack := 0

	openSeats := func() int {
		n := 0
		for _, d := range demand {
			n += d.open
		}
		return n
	}

	// pass walks both categories and greedily fills seats until the pools
	// are exhausted or every feasible pick would strand the seniority
	// floor. Picks made while the weekly limit is relaxed get their own
	// derogation entries.
	pass := func(mode rankMode) {
		for _, d := range demand {
			for d.open > 0 {
				cand, ok := e.pickBest(slot, d.role, demand, seated, taken, slack, floor, mode)
				if !ok {
					break
				}
				seat := cand.seat(d.role)

				if slack > 0 && e.eval.overWeeklyLimit(cand, slot, e.state) {
					e.derogations = append(e.derogations, Derogation{
						Date:      slot.Date,
						Kind:      slot.Kind,
						Rule:      RelaxWeeklyLimit,
						PersonIDs: []string{seat.CreditedID},
						Detail: fmt.Sprintf("weekly limit relaxed: %s already has %d shifts in window (limit %d)",
							seat.CreditedID, e.state.creditedInWindow(seat.CreditedID, slot.Date), cand.credited.WeeklyLimit),
					})
				}
				if seat.Substituted() {
					notes = append(notes, fmt.Sprintf("%s covers for %s (workload credited to %s)",
						seat.PersonID, seat.CreditedID, seat.CreditedID))
				}

				e.state.record(seat, slot.Date)
				seated = append(seated, seat)
				taken[seat.PersonID] = true
				taken[seat.CreditedID] = true
				d.open--
			}
		}
	}

	pass(rankByScore)

	if openSeats() > 0 {
		for _, rule := range e.params.RelaxationOrder {
			if openSeats() == 0 {
				break
			}
			switch rule {
			case RelaxWeeklyLimit:
				slack = 1
				pass(rankByLoad)
			case RelaxSeniorityFloor:
				if floor == 0 {
					continue
				}
				floor--
				before := len(seated)
				pass(rankByScore)
				if len(seated) > before {
					e.derogations = append(e.derogations, Derogation{
						Date: slot.Date,
						Kind: slot.Kind,
						Rule: RelaxSeniorityFloor,
						Detail: fmt.Sprintf("seniority floor relaxed from %d to %d",
							floor+1, floor),
					})
					notes = append(notes, fmt.Sprintf("seniority floor relaxed to %d", floor))
				} else {
					floor++
				}
			}
		}
	}

	status := SlotFilled
	for _, d := range demand {
		if d.open == 0 {
			continue
		}
		status = SlotDerogated
		_, excluded := e.eval.buildPool(d.role, slot, e.state, slack, taken)
		ids := make([]string, 0, len(excluded))
		for _, ex := range excluded {
			ids = append(ids, ex.personID)
		}
		for i := 0; i < d.open; i++ {
			e.derogations = append(e.derogations, Derogation{
				Date:      slot.Date,
				Kind:      slot.Kind,
				Rule:      RelaxSeatUnfilled,
				PersonIDs: ids,
				Detail:    fmt.Sprintf("%s seat left unfilled: %s", d.role, describeExclusions(excluded)),
			})
		}
		notes = append(notes, fmt.Sprintf("%d %s seat(s) left open", d.open, d.role))
	}

	return Assignment{
		Slot:   slot,
		Seats:  seated,
		Status: status,
		Notes:  notes,
	}
}

// pickBest builds the pool for one seat, ranks it and returns the best
// candidate that keeps the seniority floor reachable. The tie-break
// stream is consumed once per pooled candidate, in deterministic order.
func (e *Engine) pickBest(slot ShiftSlot, role roster.Role, demand []*seatDemand, seated []Seat, taken map[string]bool, slack, floor int, mode rankMode) (candidate, bool) {
	pool, _ := e.eval.buildPool(role, slot, e.state, slack, taken)
	if len(pool) == 0 {
		return candidate{}, false
	}

	remaining := make(map[roster.Role]int, len(demand))
	for _, d := range demand {
		remaining[d.role] = d.open
	}

	type ranked struct {
		cand    candidate
		primary float64
		second  float64
		jitter  float64
	}
	list := make([]ranked, len(pool))
	for i, c := range pool {
		score := e.eval.score(c, slot, seated, e.state, remaining, taken)
		jitter := e.rng.Float64()
		switch mode {
		case rankByLoad:
			list[i] = ranked{cand: c, primary: -float64(e.state.creditedTotal[c.credited.ID]), second: score, jitter: jitter}
		default:
			list[i] = ranked{cand: c, primary: score, jitter: jitter}
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].primary != list[j].primary {
			return list[i].primary > list[j].primary
		}
		if list[i].second != list[j].second {
			return list[i].second > list[j].second
		}
		return list[i].jitter > list[j].jitter
	})

	for _, r := range list {
		if e.floorReachable(slot, r.cand, role, demand, seated, taken, slack, floor) {
			return r.cand, true
		}
	}
	return candidate{}, false
}

// floorReachable checks rule 5: after picking cand, can the slot still
// reach its seniority floor? Roles are exclusive, so the bound sums, per
// category, the smaller of open seats and available senior candidates.
func (e *Engine) floorReachable(slot ShiftSlot, cand candidate, role roster.Role, demand []*seatDemand, seated []Seat, taken map[string]bool, slack, floor int) bool {
	if floor <= 0 {
		return true
	}
	seniors := countSeniors(e.roster, seated)
	if cand.person.Rank == roster.RankSenior {
		seniors++
	}
	if seniors >= floor {
		return true
	}

	takenPlus := make(map[string]bool, len(taken)+2)
	for id := range taken {
		takenPlus[id] = true
	}
	takenPlus[cand.person.ID] = true
	takenPlus[cand.credited.ID] = true

	possible := 0
	for _, d := range demand {
		open := d.open
		if d.role == role {
			open--
		}
		if open <= 0 {
			continue
		}
		pool, _ := e.eval.buildPool(d.role, slot, e.state, slack, takenPlus)
		avail := 0
		for _, c := range pool {
			if c.person.Rank == roster.RankSenior {
				avail++
			}
		}
		if avail < open {
			possible += avail
		} else {
			possible += open
		}
	}

	return seniors+possible >= floor
}
