package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/caserma-ovest/turnivvf/pkg/core/roster"
	"github.com/caserma-ovest/turnivvf/pkg/core/services"
)

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the yearly duty schedule",
		Long:  "Expand the configured slot rules into the year's calendar, assign personnel and write the export files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetInt64("seed")
				app.Cfg.Seed = seed
			}
			if cmd.Flags().Changed("year") {
				year, _ := cmd.Flags().GetInt("year")
				app.Cfg.Year = year
			}
			if cmd.Flags().Changed("out") {
				out, _ := cmd.Flags().GetString("out")
				app.Cfg.OutputDir = out
			}

			app.Logger.Debug("generate command",
				zap.Int("year", app.Cfg.Year),
				zap.Int64("seed", app.Cfg.Seed),
				zap.Bool("dry_run", dryRun))

			r, err := app.LoadRoster()
			if err != nil {
				return err
			}

			// Call the service
			result, err := services.GenerateSchedule(app.Ctx, app.Cfg, r, app.Logger, dryRun)
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}
			sched := result.Schedule

			// Display header
			fmt.Printf("\n🎯 Duty Schedule %d\n\n", sched.Year)
			fmt.Printf("Run ID: %s\n", result.RunID)
			fmt.Printf("Seed:   %d\n", sched.Seed)
			fmt.Printf("Slots:  %d\n", len(sched.Assignments))
			if dryRun {
				fmt.Printf("Mode:   🧪 DRY RUN (nothing written)\n")
			} else if sched.Clean() {
				fmt.Printf("Status: ✅ CLEAN (no derogations)\n")
			} else {
				fmt.Printf("Status: ⚠️  %d derogation(s)\n", len(sched.Derogations))
			}
			fmt.Println()

			// Display assignments in a table
			fmt.Printf("📅 Assignments:\n\n")

			// ANSI color codes
			const (
				colorReset  = "\033[0m"
				colorGreen  = "\033[32m"
				colorYellow = "\033[33m"
				colorBold   = "\033[1m"
			)

			// Calculate column widths
			maxCrewLen := 30
			rows := make([]struct {
				date, kind, crew, fill string
				clean                  bool
			}, 0, len(sched.Assignments))
			for _, a := range sched.Assignments {
				names := make([]string, 0, len(a.Seats))
				for _, seat := range a.Seats {
					name := seat.PersonID
					if p := r.ByID(seat.PersonID); p != nil {
						name = p.Name
					}
					if seat.Role == roster.RoleDriver {
						name += " 🚒"
					}
					if seat.Substituted() {
						name = fmt.Sprintf("%s[%s]%s", colorYellow, name, colorReset)
					}
					names = append(names, name)
				}
				crew := "—"
				if len(names) > 0 {
					crew = strings.Join(names, ", ")
				}
				if len(crew) > maxCrewLen {
					maxCrewLen = len(crew)
				}
				rows = append(rows, struct {
					date, kind, crew, fill string
					clean                  bool
				}{
					date:  a.Slot.Date.Format(roster.DateLayout),
					kind:  string(a.Slot.Kind),
					crew:  crew,
					fill:  fmt.Sprintf("%d/%d", len(a.Seats), a.Slot.Seats()),
					clean: a.OpenSeats() == 0,
				})
			}

			dateColWidth := 12
			kindColWidth := 14
			crewColWidth := maxCrewLen + 2

			// Print header
			fmt.Printf("%s%-*s  %-*s  %-*s  %s%s\n",
				colorBold,
				dateColWidth, "Date",
				kindColWidth, "Kind",
				crewColWidth, "Crew",
				"Fill",
				colorReset)

			// Print separator
			fmt.Print(strings.Repeat("-", dateColWidth))
			fmt.Print("  ")
			fmt.Print(strings.Repeat("-", kindColWidth))
			fmt.Print("  ")
			fmt.Print(strings.Repeat("-", crewColWidth))
			fmt.Print("  ")
			fmt.Println("----")

			// Print each slot
			for _, row := range rows {
				fillStr := row.fill
				if row.clean {
					fillStr = fmt.Sprintf("%s%s%s", colorGreen, fillStr, colorReset)
				}
				fmt.Printf("%-*s  %-*s  %-*s  %s\n",
					dateColWidth, row.date,
					kindColWidth, row.kind,
					crewColWidth, row.crew,
					fillStr)
			}
			fmt.Println()

			// Display derogations if any
			if len(sched.Derogations) > 0 {
				fmt.Printf("⚠️  Derogations (%d):\n", len(sched.Derogations))
				for _, d := range sched.Derogations {
					fmt.Printf("  • %s (%s) - %s: %s\n",
						d.Date.Format(roster.DateLayout),
						d.Kind,
						d.Rule,
						d.Detail)
				}
				fmt.Println()
			}

			// Summary message
			if dryRun {
				fmt.Println("💡 This was a dry run. Use without --dry-run to write the export files.")
			} else {
				fmt.Println("✅ Export files written:")
				for _, f := range result.Files {
					fmt.Printf("  • %s\n", f)
				}
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run without writing export files")
	cmd.Flags().Int64("seed", 0, "Override the configured seed for tie-break decisions")
	cmd.Flags().Int("year", 0, "Override the configured target year")
	cmd.Flags().String("out", "", "Override the configured output directory")

	return cmd
}
