package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caserma-ovest/turnivvf/pkg/core/roster"
)

// ValidateRosterCmd creates the validateRoster command
func ValidateRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validateRoster [file]",
		Short: "Validate a roster file (defaults to the configured one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.Cfg.RosterFile
			if len(args) > 0 {
				path = args[0]
			}

			app.Logger.Debug("validateRoster command")

			r, err := roster.LoadFile(path)
			if err != nil {
				fmt.Printf("\n❌ Roster is invalid:\n  %v\n\n", err)
				return fmt.Errorf("roster validation failed")
			}

			drivers := len(r.WithRole(roster.RoleDriver))
			firefighters := len(r.WithRole(roster.RoleFirefighter))
			pairs := len(r.PreferredPairs)

			fmt.Printf("\n✅ Roster is valid: %s\n\n", path)
			fmt.Printf("Personnel:       %d (%d drivers, %d firefighters)\n", len(r.Personnel), drivers, firefighters)
			fmt.Printf("Preferred pairs: %d\n", pairs)
			if r.SpecialRule != nil {
				fmt.Printf("Special rule:    %s covered by %s\n", r.SpecialRule.NominalID, r.SpecialRule.AlternateID)
			}
			fmt.Println()

			return nil
		},
	}
}
