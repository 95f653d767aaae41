package roster

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleDriver      Role = "driver"
	RoleFirefighter Role = "firefighter"
)

func (r Role) IsValid() bool {
	return r == RoleDriver || r == RoleFirefighter
}

type Rank string

const (
	RankSenior Rank = "senior"
	RankJunior Rank = "junior"
)

func (r Rank) IsValid() bool {
	return r == RankSenior || r == RankJunior
}

// Person represents one member of the brigade roster
type Person struct {
	ID                 string
	Name               string
	Role               Role
	Rank               Rank
	Phone              string
	Email              string
	WeeklyLimit        int
	SpecialRuleSubject bool
}

// VacationPeriod marks a person as unavailable for every date in
// [Start, End], inclusive on both ends.
type VacationPeriod struct {
	PersonID string
	Start    time.Time
	End      time.Time
}

// Contains reports whether the given date falls inside the period.
// Comparison is by calendar day.
func (v VacationPeriod) Contains(day time.Time) bool {
	d := DateOnly(day)
	return !d.Before(DateOnly(v.Start)) && !d.After(DateOnly(v.End))
}

// PreferredPair is an unordered pair of people who work well together.
// Weight is the soft bonus applied when both end up on the same slot.
type PreferredPair struct {
	FirstID  string
	SecondID string
	Weight   float64
}

// Involves reports whether the pair references the given person.
func (p PreferredPair) Involves(personID string) bool {
	return p.FirstID == personID || p.SecondID == personID
}

// PartnerOf returns the other member of the pair, or "" if personID is
// not part of it.
func (p PreferredPair) PartnerOf(personID string) string {
	switch personID {
	case p.FirstID:
		return p.SecondID
	case p.SecondID:
		return p.FirstID
	}
	return ""
}

// SpecialRule is the alternate-coverage exception: when the nominal
// person cannot take a slot, the alternate may physically cover it while
// the workload stays credited to the nominal person. Activation is a run
// parameter, not part of the roster.
type SpecialRule struct {
	NominalID   string
	AlternateID string
}

// Roster is the full set of input records for a scheduling run. It is
// loaded once, validated, and held immutable for the duration of the run.
type Roster struct {
	Personnel      []Person
	Vacations      []VacationPeriod
	PreferredPairs []PreferredPair
	SpecialRule    *SpecialRule
}

// ByID returns the person with the given id, or nil.
func (r *Roster) ByID(id string) *Person {
	for i := range r.Personnel {
		if r.Personnel[i].ID == id {
			return &r.Personnel[i]
		}
	}
	return nil
}

// WithRole returns the people holding the given role, in roster order.
func (r *Roster) WithRole(role Role) []*Person {
	var out []*Person
	for i := range r.Personnel {
		if r.Personnel[i].Role == role {
			out = append(out, &r.Personnel[i])
		}
	}
	return out
}

// OnVacation reports whether the person is on vacation on the given date.
func (r *Roster) OnVacation(personID string, day time.Time) bool {
	for _, v := range r.Vacations {
		if v.PersonID == personID && v.Contains(day) {
			return true
		}
	}
	return false
}

// PairsInvolving returns every preferred pair that references the person.
func (r *Roster) PairsInvolving(personID string) []PreferredPair {
	var out []PreferredPair
	for _, p := range r.PreferredPairs {
		if p.Involves(personID) {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks every roster invariant. A non-nil error is a fatal
// configuration error: the run must not start.
func (r *Roster) Validate() error {
	if len(r.Personnel) == 0 {
		return fmt.Errorf("roster has no personnel")
	}

	seen := make(map[string]bool, len(r.Personnel))
	for _, p := range r.Personnel {
		if p.ID == "" {
			return fmt.Errorf("person %q has no id", p.Name)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate person id %q", p.ID)
		}
		seen[p.ID] = true
		if !p.Role.IsValid() {
			return fmt.Errorf("person %q has invalid role %q", p.ID, p.Role)
		}
		if !p.Rank.IsValid() {
			return fmt.Errorf("person %q has invalid rank %q", p.ID, p.Rank)
		}
		if p.WeeklyLimit < 0 {
			return fmt.Errorf("person %q has negative weekly limit %d", p.ID, p.WeeklyLimit)
		}
	}

	for _, v := range r.Vacations {
		if !seen[v.PersonID] {
			return fmt.Errorf("vacation references unknown person %q", v.PersonID)
		}
		if v.End.Before(v.Start) {
			return fmt.Errorf("vacation for %q ends (%s) before it starts (%s)",
				v.PersonID, v.End.Format(DateLayout), v.Start.Format(DateLayout))
		}
	}

	for _, p := range r.PreferredPairs {
		if p.FirstID == p.SecondID {
			return fmt.Errorf("preferred pair references %q twice", p.FirstID)
		}
		if !seen[p.FirstID] {
			return fmt.Errorf("preferred pair references unknown person %q", p.FirstID)
		}
		if !seen[p.SecondID] {
			return fmt.Errorf("preferred pair references unknown person %q", p.SecondID)
		}
		if p.Weight <= 0 {
			return fmt.Errorf("preferred pair (%s, %s) has non-positive weight %g",
				p.FirstID, p.SecondID, p.Weight)
		}
	}

	if sr := r.SpecialRule; sr != nil {
		if sr.NominalID == sr.AlternateID {
			return fmt.Errorf("special rule nominal and alternate are the same person %q", sr.NominalID)
		}
		if !seen[sr.NominalID] {
			return fmt.Errorf("special rule references unknown nominal person %q", sr.NominalID)
		}
		if !seen[sr.AlternateID] {
			return fmt.Errorf("special rule references unknown alternate person %q", sr.AlternateID)
		}
	}

	return nil
}

// DateLayout is the calendar-day format used across roster and config files.
const DateLayout = "2006-01-02"

// DateOnly truncates a time to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
