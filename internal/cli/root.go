package cli

import (
	"fmt"
	"time"

	"github.com/quietfield/tomoplan/internal/constants"
	"github.com/quietfield/tomoplan/internal/models"
	"github.com/quietfield/tomoplan/internal/planner"
	"github.com/quietfield/tomoplan/internal/storage"
	"github.com/quietfield/tomoplan/internal/utils"
)

type Context struct {
	Store storage.Provider
}

// NewPlanner builds a planner from the stored settings.
func (c *Context) NewPlanner() (*planner.Planner, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return planner.New(settings)
}

// ResolveDate returns the date to operate on: the given YYYY-MM-DD string,
// or today in the configured timezone when empty.
func (c *Context) ResolveDate(date string) (string, error) {
	if date != "" {
		if _, err := time.Parse(constants.DateFormat, date); err != nil {
			return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", date, err)
		}
		return date, nil
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to load settings: %w", err)
	}
	return utils.GetTodayInTimezone(settings.Timezone)
}

// ComputePlan loads a day's inputs and runs the full recompute.
func (c *Context) ComputePlan(date string) (planner.Plan, *planner.Planner, error) {
	p, err := c.NewPlanner()
	if err != nil {
		return planner.Plan{}, nil, err
	}
	blocks, err := c.Store.GetBlocks()
	if err != nil {
		return planner.Plan{}, nil, fmt.Errorf("failed to load day template: %w", err)
	}
	appts, err := c.Store.GetAppointments(date)
	if err != nil {
		return planner.Plan{}, nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	todos, err := c.Store.GetTodos(date)
	if err != nil {
		return planner.Plan{}, nil, fmt.Errorf("failed to load todos: %w", err)
	}
	open := make([]models.Todo, 0, len(todos))
	for _, t := range todos {
		if t.Status != models.TodoStatusDone {
			open = append(open, t)
		}
	}
	return p.Compute(date, blocks, appts, open, time.Now().In(p.Loc)), p, nil
}

// FormatClock renders an absolute time as HH:MM for display.
func FormatClock(t time.Time) string {
	return t.Format(constants.TimeFormat)
}
