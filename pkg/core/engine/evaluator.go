package engine

import (
	"fmt"

	"github.com/caserma-ovest/turnivvf/pkg/core/roster"
)

// candidate pairs the person who would physically take a seat with the
// person the workload is credited to. They differ only for
// alternate-coverage substitutions.
type candidate struct {
	person   *roster.Person
	credited *roster.Person
}

func (c candidate) seat(role roster.Role) Seat {
	return Seat{PersonID: c.person.ID, CreditedID: c.credited.ID, Role: role}
}

// exclusion explains why a person did not make it into a candidate pool.
// Used verbatim in seat-unfilled derogation details.
type exclusion struct {
	personID string
	reason   string
}

// evaluator answers "eligible?" and "how good?" for one (person, slot)
// combination against the running state.
type evaluator struct {
	roster *roster.Roster
	params Params
}

// ineligibility reasons, also surfaced in derogation details.
const (
	reasonVacation     = "on vacation"
	reasonWeeklyLimit  = "weekly limit reached"
	reasonDoubleBooked = "already assigned that day"
)

// eligible checks hard rules 2-4 for a physical person whose workload is
// credited to credited. Rule 1 (role match) is enforced by pool building
// and rule 5 (seniority floor) by the engine's feasibility check.
// weeklySlack > 0 relaxes the weekly limit by that many shifts.
func (e *evaluator) eligible(person, credited *roster.Person, slot ShiftSlot, st *runState, weeklySlack int) (bool, string) {
	if e.roster.OnVacation(person.ID, slot.Date) {
		return false, reasonVacation
	}
	if st.physicallyAssigned(person.ID, slot.Date) {
		return false, reasonDoubleBooked
	}
	if st.creditedInWindow(credited.ID, slot.Date) >= credited.WeeklyLimit+weeklySlack {
		return false, reasonWeeklyLimit
	}
	return true, ""
}

// overWeeklyLimit reports whether assigning now exceeds the credited
// person's unrelaxed limit. Used to decide whether a pick made under
// slack needs a weekly-limit derogation.
func (e *evaluator) overWeeklyLimit(c candidate, slot ShiftSlot, st *runState) bool {
	return st.creditedInWindow(c.credited.ID, slot.Date) >= c.credited.WeeklyLimit
}

// buildPool collects the eligible candidates of the given role for a
// slot, in roster order, along with the exclusion reasons for everyone
// who was ruled out. taken holds person ids already seated (physically or
// as credit) on this slot.
func (e *evaluator) buildPool(role roster.Role, slot ShiftSlot, st *runState, weeklySlack int, taken map[string]bool) ([]candidate, []exclusion) {
	var pool []candidate
	var excluded []exclusion

	rule := e.roster.SpecialRule
	for _, p := range e.roster.WithRole(role) {
		if taken[p.ID] {
			continue
		}
		ok, reason := e.eligible(p, p, slot, st, weeklySlack)
		if ok {
			pool = append(pool, candidate{person: p, credited: p})
			continue
		}

		// Alternate coverage: the nominal person is ruled out by
		// vacation or the weekly limit, but a designated alternate may
		// physically take the seat with the workload still credited to
		// the nominal person. The alternate's own hard exclusions apply,
		// and the credited weekly limit stays the nominal person's.
		if e.params.SpecialRuleActive &&
			rule != nil &&
			p.SpecialRuleSubject &&
			rule.NominalID == p.ID &&
			(reason == reasonVacation || reason == reasonWeeklyLimit) {
			if alt := e.alternateFor(p, role, slot, st, weeklySlack, taken); alt != nil {
				pool = append(pool, candidate{person: alt, credited: p})
				continue
			}
		}

		excluded = append(excluded, exclusion{personID: p.ID, reason: reason})
	}

	return pool, excluded
}

// alternateFor returns the rule's alternate if they can physically cover
// a seat of the given role credited to nominal, or nil.
func (e *evaluator) alternateFor(nominal *roster.Person, role roster.Role, slot ShiftSlot, st *runState, weeklySlack int, taken map[string]bool) *roster.Person {
	alt := e.roster.ByID(e.roster.SpecialRule.AlternateID)
	if alt == nil || alt.Role != role || taken[alt.ID] {
		return nil
	}
	if ok, _ := e.eligible(alt, nominal, slot, st, weeklySlack); !ok {
		return nil
	}
	return alt
}

// score ranks an eligible candidate. Higher is better. Fairness follows
// the credited person (the workload is theirs); the pairing bonus follows
// the physical person (the one actually on the slot with the partner).
// A reduced bonus is granted while the partner is merely still assignable
// to one of the slot's open seats, so pairs are steered onto the same
// slot instead of depending on pick order. remaining counts the open
// seats per role including the one being ranked for.
func (e *evaluator) score(c candidate, slot ShiftSlot, seated []Seat, st *runState, remaining map[roster.Role]int, taken map[string]bool) float64 {
	s := WeightFairnessBase / float64(1+st.creditedTotal[c.credited.ID])

	for _, pair := range e.roster.PairsInvolving(c.person.ID) {
		partnerID := pair.PartnerOf(c.person.ID)

		onSlot := false
		for _, seat := range seated {
			if seat.PersonID == partnerID {
				onSlot = true
				break
			}
		}
		if onSlot {
			s += pair.Weight * WeightPreferredPair
			continue
		}

		partner := e.roster.ByID(partnerID)
		if partner == nil || taken[partnerID] {
			continue
		}
		if ok, _ := e.eligible(partner, partner, slot, st, 0); !ok {
			continue
		}
		need := 1
		if partner.Role == c.person.Role {
			need = 2 // one seat for the candidate, one for the partner
		}
		if remaining[partner.Role] >= need {
			s += pair.Weight * WeightPreferredPair * WeightPairAnticipation
		}
	}

	if c.person.Rank == roster.RankSenior && countSeniors(e.roster, seated) < slot.MinSeniors {
		s += WeightSeniorNeed
	}

	return s
}

func countSeniors(r *roster.Roster, seated []Seat) int {
	n := 0
	for _, seat := range seated {
		if p := r.ByID(seat.PersonID); p != nil && p.Rank == roster.RankSenior {
			n++
		}
	}
	return n
}

// describeExclusions renders exclusion reasons for derogation details.
func describeExclusions(excluded []exclusion) string {
	if len(excluded) == 0 {
		return "no candidates of this role"
	}
	out := ""
	for i, ex := range excluded {
		if i > 0 {
			out += "; "
		}
		out += fmt.Sprintf("%s %s", ex.personID, ex.reason)
	}
	return out
}
