package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caserma-ovest/turnivvf/internal/config"
	"github.com/caserma-ovest/turnivvf/pkg/core/engine"
	"github.com/caserma-ovest/turnivvf/pkg/core/roster"
	"github.com/caserma-ovest/turnivvf/pkg/export"
)

// GenerateScheduleResult contains the outcome of one planning run.
type GenerateScheduleResult struct {
	RunID    string
	Schedule *engine.Schedule
	// Files written under the output directory; empty on a dry run.
	Files []string
}

// GenerateSchedule expands the configured slot rules into the year's
// calendar, runs the assignment engine and writes the export artifacts.
// If dryRun is true nothing is written to disk.
func GenerateSchedule(
	ctx context.Context,
	cfg *config.Config,
	r *roster.Roster,
	logger *zap.Logger,
	dryRun bool,
) (*GenerateScheduleResult, error) {
	runID := uuid.New().String()
	logger.Debug("Starting generateSchedule",
		zap.String("run_id", runID),
		zap.Int("year", cfg.Year),
		zap.Int64("seed", cfg.Seed),
		zap.Bool("dry_run", dryRun))

	// Step 1: expand slot rules into the planned calendar
	rules := make([]engine.SlotRule, 0, len(cfg.SlotRules))
	for _, rc := range cfg.SlotRules {
		rules = append(rules, engine.SlotRule{
			RRule:                rc.RRule,
			Kind:                 engine.SlotKind(rc.Kind),
			RequiredDrivers:      rc.RequiredDrivers,
			RequiredFirefighters: rc.RequiredFirefighters,
			MinSeniors:           rc.MinSeniors,
		})
	}
	calendar, err := engine.BuildCalendar(cfg.Year, rules, cfg.Months)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar: %w", err)
	}
	logger.Debug("Calendar built", zap.Int("slot_count", len(calendar)))

	// Step 2: run the assignment engine
	params := engine.DefaultParams(cfg.Year, cfg.Seed)
	params.SpecialRuleActive = cfg.SpecialRuleActive
	if len(cfg.RelaxationOrder) > 0 {
		params.RelaxationOrder = params.RelaxationOrder[:0]
		for _, name := range cfg.RelaxationOrder {
			params.RelaxationOrder = append(params.RelaxationOrder, engine.RelaxedRule(name))
		}
	}

	eng, err := engine.New(r, params)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	sched, err := eng.Run(calendar)
	if err != nil {
		return nil, fmt.Errorf("assignment run failed: %w", err)
	}
	logger.Info("Schedule generated",
		zap.Int("assignments", len(sched.Assignments)),
		zap.Int("derogations", len(sched.Derogations)))

	result := &GenerateScheduleResult{
		RunID:    runID,
		Schedule: sched,
	}
	if dryRun {
		logger.Debug("Dry run, skipping export")
		return result, nil
	}

	// Step 3: write export artifacts
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	workbookPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("turni_%d.xlsx", cfg.Year))
	if err := export.WriteWorkbook(sched, r, workbookPath); err != nil {
		return nil, err
	}
	result.Files = append(result.Files, workbookPath)

	calendarPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("turni_%d.ics", cfg.Year))
	if err := export.WriteCalendar(sched, r, calendarPath); err != nil {
		return nil, err
	}
	result.Files = append(result.Files, calendarPath)

	reportPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("log_%d.txt", cfg.Year))
	if err := export.WriteLog(sched, r, reportPath); err != nil {
		return nil, err
	}
	result.Files = append(result.Files, reportPath)

	logger.Info("Export artifacts written",
		zap.String("run_id", runID),
		zap.Strings("files", result.Files))

	return result, nil
}
