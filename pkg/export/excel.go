package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/caserma-ovest/turnivvf/pkg/core/engine"
	"github.com/caserma-ovest/turnivvf/pkg/core/roster"
)

// Workbook renders the schedule as an Excel workbook: one sheet per month
// that contains slots, plus a final report sheet with per-person totals.
// The caller owns the returned file and must Close it.
func Workbook(sched *engine.Schedule, r *roster.Roster) (*excelize.File, error) {
	f := excelize.NewFile()

	months := activeMonths(sched)
	if len(months) == 0 {
		f.Close()
		return nil, fmt.Errorf("schedule has no assignments to export")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#C0392B"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	maxDrivers, maxFirefighters := seatColumns(sched)

	for i, month := range months {
		sheet := month.String()
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to rename first sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
			}
		}

		headers := []string{"Date", "Day", "Kind"}
		for d := 1; d <= maxDrivers; d++ {
			headers = append(headers, fmt.Sprintf("Driver %d", d))
		}
		for v := 1; v <= maxFirefighters; v++ {
			headers = append(headers, fmt.Sprintf("Firefighter %d", v))
		}
		headers = append(headers, "Status", "Notes")

		for col, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sheet, cell, h)
			f.SetCellStyle(sheet, cell, cell, headerStyle)
		}

		row := 2
		for _, a := range sched.Assignments {
			if a.Slot.Date.Month() != month {
				continue
			}
			writeRow(f, sheet, row, a, r, maxDrivers, maxFirefighters)
			row++
		}
	}

	if err := writeReport(f, sched, r); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// WriteWorkbook renders the schedule and saves it at path.
func WriteWorkbook(sched *engine.Schedule, r *roster.Roster, path string) error {
	f, err := Workbook(sched, r)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, a engine.Assignment, r *roster.Roster, maxDrivers, maxFirefighters int) {
	set := func(col int, v interface{}) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		f.SetCellValue(sheet, cell, v)
	}

	set(1, a.Slot.Date.Format(roster.DateLayout))
	set(2, a.Slot.Date.Weekday().String())
	set(3, string(a.Slot.Kind))

	col := 4
	names := func(role roster.Role, width int) {
		n := 0
		for _, seat := range a.Seats {
			if seat.Role != role {
				continue
			}
			set(col, displayName(r, seat))
			col++
			n++
		}
		for ; n < width; n++ {
			set(col, "")
			col++
		}
	}
	names(roster.RoleDriver, maxDrivers)
	names(roster.RoleFirefighter, maxFirefighters)

	set(col, string(a.Status))
	col++
	notes := ""
	for i, note := range a.Notes {
		if i > 0 {
			notes += "; "
		}
		notes += note
	}
	set(col, notes)
}

// writeReport appends the totals sheet: credited and physical counts per
// person, roster order.
func writeReport(f *excelize.File, sched *engine.Schedule, r *roster.Roster) error {
	const sheet = "Report"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create report sheet: %w", err)
	}

	headers := []string{"ID", "Name", "Role", "Rank", "Credited shifts", "Worked shifts"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	credited := sched.CreditedTotals()
	physical := sched.PhysicalTotals()
	for i, p := range r.Personnel {
		row := i + 2
		values := []interface{}{p.ID, p.Name, string(p.Role), string(p.Rank), credited[p.ID], physical[p.ID]}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return nil
}

func displayName(r *roster.Roster, seat engine.Seat) string {
	name := seat.PersonID
	if p := r.ByID(seat.PersonID); p != nil {
		name = p.Name
	}
	if seat.Substituted() {
		creditName := seat.CreditedID
		if p := r.ByID(seat.CreditedID); p != nil {
			creditName = p.Name
		}
		return fmt.Sprintf("%s (for %s)", name, creditName)
	}
	return name
}

func activeMonths(sched *engine.Schedule) []time.Month {
	seen := make(map[time.Month]bool)
	for _, a := range sched.Assignments {
		seen[a.Slot.Date.Month()] = true
	}
	months := make([]time.Month, 0, len(seen))
	for m := time.January; m <= time.December; m++ {
		if seen[m] {
			months = append(months, m)
		}
	}
	return months
}

func seatColumns(sched *engine.Schedule) (drivers, firefighters int) {
	for _, a := range sched.Assignments {
		if a.Slot.RequiredDrivers > drivers {
			drivers = a.Slot.RequiredDrivers
		}
		if a.Slot.RequiredFirefighters > firefighters {
			firefighters = a.Slot.RequiredFirefighters
		}
	}
	return drivers, firefighters
}
