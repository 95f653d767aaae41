package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/caserma-ovest/turnivvf/pkg/core/engine"
	"github.com/caserma-ovest/turnivvf/pkg/core/roster"
)

// RenderLog produces the human-readable run report: a summary header
// followed by the derogation register. Collaborators read this file to
// see which rules had to bend and where.
func RenderLog(sched *engine.Schedule, r *roster.Roster) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Duty schedule %d\n", sched.Year)
	fmt.Fprintf(&b, "Seed: %d\n", sched.Seed)
	fmt.Fprintf(&b, "Personnel: %d (%d drivers, %d firefighters)\n",
		len(r.Personnel), len(r.WithRole(roster.RoleDriver)), len(r.WithRole(roster.RoleFirefighter)))
	fmt.Fprintf(&b, "Slots planned: %d\n", len(sched.Assignments))
	b.WriteString("\n")

	if sched.Clean() {
		b.WriteString("All slots filled within the rules, no derogations.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Derogation register (%d entries):\n", len(sched.Derogations))
	for _, d := range sched.Derogations {
		fmt.Fprintf(&b, "[%s] [%s] [%s] %s",
			d.Date.Format(roster.DateLayout), d.Kind, d.Rule, d.Detail)
		if len(d.PersonIDs) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(d.PersonIDs, ", "))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// WriteLog renders the run report and saves it at path.
func WriteLog(sched *engine.Schedule, r *roster.Roster, path string) error {
	if err := os.WriteFile(path, []byte(RenderLog(sched, r)), 0644); err != nil {
		return fmt.Errorf("failed to write run report: %w", err)
	}
	return nil
}
