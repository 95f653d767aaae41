package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/caserma-ovest/turnivvf/internal/config"
	"github.com/caserma-ovest/turnivvf/pkg/core/roster"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg    *config.Config
	Logger *zap.Logger
	Ctx    context.Context
}

// LoadRoster loads and validates the roster file named in the
// configuration. Commands load it on demand so validateRoster can report
// a broken file instead of dying during startup.
func (app *AppContext) LoadRoster() (*roster.Roster, error) {
	r, err := roster.LoadFile(app.Cfg.RosterFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster %s: %w", app.Cfg.RosterFile, err)
	}
	return r, nil
}
