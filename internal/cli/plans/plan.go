package plans

import (
	"fmt"

	"github.com/quietfield/tomoplan/internal/cli"
	"github.com/quietfield/tomoplan/internal/models"
)

type PlanCmd struct {
	Date string `short:"d" help:"Date to plan (YYYY-MM-DD). Defaults to today."`
}

func (c *PlanCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	plan, _, err := ctx.ComputePlan(date)
	if err != nil {
		return err
	}

	if len(plan.Segments) == 0 {
		fmt.Printf("No schedulable time on %s. Configure a day template first.\n", date)
	} else {
		fmt.Printf("Plan for %s:\n", date)
		// Allocations are displayed inline with the segment they occupy.
		byIndex := make(map[int]models.Allocation)
		for _, a := range plan.Allocations {
			if !a.Overflow {
				byIndex[a.GlobalIndex] = a
			}
		}
		for i, s := range plan.Segments {
			line := fmt.Sprintf("  [%2d] %s-%s  %-11s %s",
				i, cli.FormatClock(s.Start), cli.FormatClock(s.End), s.Kind, segmentLabel(s))
			if a, ok := byIndex[i]; ok {
				line += fmt.Sprintf("  ← %s (unit %d)", a.Title, a.UnitIndex)
			}
			fmt.Println(line)
		}
	}

	var overflow []models.Allocation
	for _, a := range plan.Allocations {
		if a.Overflow {
			overflow = append(overflow, a)
		}
	}
	if len(overflow) > 0 {
		fmt.Println()
		fmt.Println("Overflow (past the planned day):")
		for _, a := range overflow {
			fmt.Printf("  %s-%s  %s (unit %d)\n",
				cli.FormatClock(a.Start), cli.FormatClock(a.End), a.Title, a.UnitIndex)
		}
	}
	return nil
}

func segmentLabel(s models.Segment) string {
	switch s.Kind {
	case models.SegmentWork, models.SegmentBreak:
		return fmt.Sprintf("%s #%d", s.Category, s.SeqInCategory)
	case models.SegmentAppointment:
		return "appointment"
	case models.SegmentIdle:
		return "idle"
	}
	return string(s.Kind)
}
