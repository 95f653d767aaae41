package roster

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// rosterFile is the on-disk YAML schema. Dates are "2006-01-02" strings
// so hand-edited files stay readable.
type rosterFile struct {
	Personnel []personEntry   `yaml:"personnel" validate:"required,min=1,dive"`
	Vacations []vacationEntry `yaml:"vacations,omitempty" validate:"dive"`
	Pairs     []pairEntry     `yaml:"preferredPairs,omitempty" validate:"dive"`
	Special   *specialEntry   `yaml:"specialRule,omitempty"`
}

type personEntry struct {
	ID                 string `yaml:"id" validate:"required"`
	Name               string `yaml:"name" validate:"required"`
	Role               string `yaml:"role" validate:"required,oneof=driver firefighter"`
	Rank               string `yaml:"rank" validate:"required,oneof=senior junior"`
	Phone              string `yaml:"phone,omitempty"`
	Email              string `yaml:"email,omitempty" validate:"omitempty,email"`
	WeeklyLimit        int    `yaml:"weeklyLimit" validate:"min=0"`
	SpecialRuleSubject bool   `yaml:"specialRuleSubject,omitempty"`
}

type vacationEntry struct {
	PersonID string `yaml:"personId" validate:"required"`
	Start    string `yaml:"start" validate:"required"`
	End      string `yaml:"end" validate:"required"`
}

type pairEntry struct {
	First  string  `yaml:"first" validate:"required"`
	Second string  `yaml:"second" validate:"required"`
	Weight float64 `yaml:"weight" validate:"gt=0"`
}

type specialEntry struct {
	Nominal   string `yaml:"nominal" validate:"required"`
	Alternate string `yaml:"alternate" validate:"required"`
}

// LoadFile reads, parses and validates a roster YAML file. The returned
// roster has passed Validate and is safe to hand to the engine.
func LoadFile(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}
	return Parse(data)
}

// Parse builds a validated Roster from YAML bytes.
func Parse(data []byte) (*Roster, error) {
	var file rosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}

	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("roster validation failed: %w", err)
	}

	r := &Roster{}
	for _, p := range file.Personnel {
		r.Personnel = append(r.Personnel, Person{
			ID:                 p.ID,
			Name:               p.Name,
			Role:               Role(p.Role),
			Rank:               Rank(p.Rank),
			Phone:              p.Phone,
			Email:              p.Email,
			WeeklyLimit:        p.WeeklyLimit,
			SpecialRuleSubject: p.SpecialRuleSubject,
		})
	}

	for _, v := range file.Vacations {
		start, err := parseDay(v.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid vacation start for %q: %w", v.PersonID, err)
		}
		end, err := parseDay(v.End)
		if err != nil {
			return nil, fmt.Errorf("invalid vacation end for %q: %w", v.PersonID, err)
		}
		r.Vacations = append(r.Vacations, VacationPeriod{
			PersonID: v.PersonID,
			Start:    start,
			End:      end,
		})
	}

	for _, p := range file.Pairs {
		r.PreferredPairs = append(r.PreferredPairs, PreferredPair{
			FirstID:  p.First,
			SecondID: p.Second,
			Weight:   p.Weight,
		})
	}

	if file.Special != nil {
		r.SpecialRule = &SpecialRule{
			NominalID:   file.Special.Nominal,
			AlternateID: file.Special.Alternate,
		}
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

func parseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %s date, got %q", DateLayout, s)
	}
	return t, nil
}
