package plans

import (
	"fmt"
	"time"

	"github.com/quietfield/tomoplan/internal/cli"
	"github.com/quietfield/tomoplan/internal/models"
	"github.com/quietfield/tomoplan/internal/planner"
	"github.com/quietfield/tomoplan/internal/reassign"
)

type ReassignCmd struct {
	ID     string `arg:"" help:"Todo ID to move."`
	Target int    `arg:"" help:"Global segment index to move the todo onto."`
	Date   string `short:"d" help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *ReassignCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	plan, p, err := ctx.ComputePlan(date)
	if err != nil {
		return err
	}

	todos, err := ctx.Store.GetTodos(date)
	if err != nil {
		return err
	}
	open := make([]models.Todo, 0, len(todos))
	for _, t := range todos {
		if t.Status != models.TodoStatusDone {
			open = append(open, t)
		}
	}

	items := planner.WorkItems(open)
	updated, allocs, result := reassign.Apply(c.ID, c.Target, items, plan.Segments, plan.Allocations, p.AssignConfig(time.Now().In(p.Loc)))
	switch result {
	case reassign.ResultNoTarget:
		return fmt.Errorf("index %d is not a free work unit", c.Target)
	case reassign.ResultOccupied:
		return fmt.Errorf("index %d is already held by another todo", c.Target)
	}

	// Persist the hint so future recomputes keep the placement.
	for _, item := range updated {
		if item.ID != c.ID {
			continue
		}
		todo, err := ctx.Store.GetTodo(c.ID)
		if err != nil {
			return fmt.Errorf("todo not found: %s", c.ID)
		}
		todo.GlobalIndexHint = item.GlobalIndexHint
		if err := ctx.Store.UpdateTodo(todo); err != nil {
			return err
		}
	}

	for _, a := range allocs {
		if a.WorkItemID == c.ID && !a.Overflow {
			fmt.Printf("Moved %s: unit %d now at [%d] %s-%s\n",
				a.Title, a.UnitIndex, a.GlobalIndex, cli.FormatClock(a.Start), cli.FormatClock(a.End))
		}
	}
	return nil
}
