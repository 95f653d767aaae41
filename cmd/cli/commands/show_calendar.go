package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/caserma-ovest/turnivvf/pkg/core/engine"
	"github.com/caserma-ovest/turnivvf/pkg/core/roster"
)

// ShowCalendarCmd creates the showCalendar command
func ShowCalendarCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "showCalendar",
		Short: "Show the planned slot calendar without assigning anyone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year := app.Cfg.Year
			if cmd.Flags().Changed("year") {
				year, _ = cmd.Flags().GetInt("year")
			}
			months := app.Cfg.Months
			if cmd.Flags().Changed("month") {
				m, _ := cmd.Flags().GetInt("month")
				months = []int{m}
			}

			app.Logger.Debug("showCalendar command",
				zap.Int("year", year),
				zap.Ints("months", months))

			rules := make([]engine.SlotRule, 0, len(app.Cfg.SlotRules))
			for _, rc := range app.Cfg.SlotRules {
				rules = append(rules, engine.SlotRule{
					RRule:                rc.RRule,
					Kind:                 engine.SlotKind(rc.Kind),
					RequiredDrivers:      rc.RequiredDrivers,
					RequiredFirefighters: rc.RequiredFirefighters,
					MinSeniors:           rc.MinSeniors,
				})
			}

			calendar, err := engine.BuildCalendar(year, rules, months)
			if err != nil {
				return fmt.Errorf("failed to build calendar: %w", err)
			}

			fmt.Printf("\n📅 Planned calendar %d (%d slots):\n\n", year, len(calendar))
			for _, slot := range calendar {
				seniors := ""
				if slot.MinSeniors > 0 {
					seniors = fmt.Sprintf(", min %d senior(s)", slot.MinSeniors)
				}
				fmt.Printf("  %s (%s)  %-14s  %d driver(s) + %d firefighter(s)%s\n",
					slot.Date.Format(roster.DateLayout),
					slot.Date.Weekday().String()[:3],
					slot.Kind,
					slot.RequiredDrivers,
					slot.RequiredFirefighters,
					seniors,
				)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int("year", 0, "Override the configured target year")
	cmd.Flags().Int("month", 0, "Show a single month (1-12)")

	return cmd
}
