// Package actual derives the intervals that were really executed, for
// side-by-side comparison against the plan. It is deliberately blind to
// planned allocations and consumes nothing from the planning pipeline.
package actual

import (
	"sort"
	"time"

	"github.com/quietfield/tomoplan/internal/models"
	"github.com/quietfield/tomoplan/internal/utils"
)

// Reconcile maps completed todos and finished appointments to their recorded
// time ranges. A todo contributes only when both its start and finish were
// recorded; an appointment needs its fixed start plus a recorded finish.
// Intervals may legitimately overlap (interrupted and resumed work), so no
// overlap invariant applies.
func Reconcile(todos []models.Todo, appointments []models.Appointment, loc *time.Location) []models.ExecutionInterval {
	var intervals []models.ExecutionInterval

	for _, todo := range todos {
		if todo.StartedAt == "" || todo.FinishedAt == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, todo.StartedAt)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, todo.FinishedAt)
		if err != nil {
			continue
		}
		kind := models.CategoryFocus
		if todo.UnitType == models.UnitLeisure {
			kind = models.CategoryLeisure
		}
		intervals = append(intervals, models.ExecutionInterval{
			OwnerID: todo.ID,
			Start:   start.In(loc),
			End:     end.In(loc),
			Kind:    kind,
		})
	}

	for _, appt := range appointments {
		if appt.FinishedAt == "" {
			continue
		}
		start, err := utils.CombineDateAndTime(appt.Date, appt.Start, loc)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, appt.FinishedAt)
		if err != nil {
			continue
		}
		kind := models.CategoryAppointment
		if appt.Idle {
			kind = models.CategoryIdle
		}
		intervals = append(intervals, models.ExecutionInterval{
			OwnerID: appt.ID,
			Start:   start,
			End:     end.In(loc),
			Kind:    kind,
		})
	}

	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})
	return intervals
}
