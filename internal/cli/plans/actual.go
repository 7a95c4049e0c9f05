package plans

import (
	"fmt"

	"github.com/quietfield/tomoplan/internal/actual"
	"github.com/quietfield/tomoplan/internal/cli"
)

// ActualCmd shows the execution record for a day: what actually happened,
// built from recorded start/finish timestamps rather than the plan.
type ActualCmd struct {
	Date string `short:"d" help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *ActualCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	p, err := ctx.NewPlanner()
	if err != nil {
		return err
	}
	todos, err := ctx.Store.GetTodos(date)
	if err != nil {
		return err
	}
	appts, err := ctx.Store.GetAppointments(date)
	if err != nil {
		return err
	}

	intervals := actual.Reconcile(todos, appts, p.Loc)
	if len(intervals) == 0 {
		fmt.Printf("No recorded activity on %s.\n", date)
		return nil
	}

	fmt.Printf("Recorded activity on %s:\n", date)
	for _, iv := range intervals {
		fmt.Printf("  %s-%s  %-11s %s\n",
			cli.FormatClock(iv.Start), cli.FormatClock(iv.End), iv.Kind, iv.OwnerID)
	}
	return nil
}
