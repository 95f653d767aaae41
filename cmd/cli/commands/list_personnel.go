package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ListPersonnelCmd creates the listPersonnel command
func ListPersonnelCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listPersonnel",
		Short: "List all personnel from the roster file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("listPersonnel command")

			r, err := app.LoadRoster()
			if err != nil {
				return err
			}

			app.Logger.Debug("Roster loaded", zap.Int("count", len(r.Personnel)))

			fmt.Printf("\nFound %d people:\n\n", len(r.Personnel))
			for _, p := range r.Personnel {
				limitInfo := ""
				if p.WeeklyLimit > 0 {
					limitInfo = fmt.Sprintf(" [max %d/week]", p.WeeklyLimit)
				}
				vacations := 0
				for _, v := range r.Vacations {
					if v.PersonID == p.ID {
						vacations++
					}
				}
				vacationInfo := ""
				if vacations > 0 {
					vacationInfo = fmt.Sprintf(" [%d vacation period(s)]", vacations)
				}
				fmt.Printf("- %s (%s) - %s, %s%s%s\n",
					p.Name,
					p.ID,
					p.Role,
					p.Rank,
					limitInfo,
					vacationInfo,
				)
			}
			fmt.Println()

			if len(r.PreferredPairs) > 0 {
				fmt.Printf("Preferred pairs:\n")
				for _, pair := range r.PreferredPairs {
					fmt.Printf("- %s + %s (weight %g)\n", pair.FirstID, pair.SecondID, pair.Weight)
				}
				fmt.Println()
			}
			if sr := r.SpecialRule; sr != nil {
				fmt.Printf("Special rule: %s covered by %s when unavailable\n\n", sr.NominalID, sr.AlternateID)
			}

			return nil
		},
	}
}
