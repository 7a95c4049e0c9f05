// Package planner wires the segment generator and assignment engine
// together and translates stored records into engine inputs. Everything here
// is recomputed wholesale whenever an input changes; nothing is patched.
package planner

import (
	"time"

	"github.com/quietfield/tomoplan/internal/assign"
	"github.com/quietfield/tomoplan/internal/models"
	"github.com/quietfield/tomoplan/internal/segment"
	"github.com/quietfield/tomoplan/internal/utils"
)

// Plan is one day's computed timeline: the segment skeleton plus the
// allocation of the backlog onto it.
type Plan struct {
	Segments    []models.Segment
	Allocations []models.Allocation
}

type Planner struct {
	WorkLen  time.Duration
	BreakLen time.Duration
	Loc      *time.Location
}

// New builds a planner from stored settings.
func New(settings models.Settings) (*Planner, error) {
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, err
	}
	work := settings.WorkMinutes
	if work <= 0 {
		work = 25
	}
	brk := settings.BreakMinutes
	if brk < 0 {
		brk = 0
	}
	return &Planner{
		WorkLen:  time.Duration(work) * time.Minute,
		BreakLen: time.Duration(brk) * time.Minute,
		Loc:      loc,
	}, nil
}

// RequiredUnits translates a todo's raw estimate entries into a unit count:
// the entries are summed (negative entries count as zero) and long-focus
// items are doubled, since one user-facing long-focus unit spans two
// work/break cycles.
func RequiredUnits(todo models.Todo) int {
	sum := 0
	for _, e := range todo.Estimates {
		if e > 0 {
			sum += e
		}
	}
	if todo.UnitType == models.UnitLongFocus {
		sum *= 2
	}
	return sum
}

// WorkItems is the storage-to-engine boundary for todos. The engine never
// sees the raw estimate representation.
func WorkItems(todos []models.Todo) []models.WorkItem {
	items := make([]models.WorkItem, 0, len(todos))
	for _, t := range todos {
		items = append(items, models.WorkItem{
			ID:              t.ID,
			Title:           t.Title,
			Priority:        t.Priority,
			RequiredUnits:   RequiredUnits(t),
			UnitType:        t.UnitType,
			GlobalIndexHint: t.GlobalIndexHint,
		})
	}
	return items
}

// ResolveBlocks anchors template blocks to absolute times on the given date.
// Blocks with unparseable times are dropped rather than failing the pass.
func (p *Planner) ResolveBlocks(date string, blocks []models.DayBlock) []segment.Block {
	resolved := make([]segment.Block, 0, len(blocks))
	for _, b := range blocks {
		start, err := utils.CombineDateAndTime(date, b.Start, p.Loc)
		if err != nil {
			continue
		}
		end, err := utils.CombineDateAndTime(date, b.End, p.Loc)
		if err != nil {
			continue
		}
		resolved = append(resolved, segment.Block{
			ID:       b.ID,
			Category: b.Category,
			Start:    start,
			End:      end,
		})
	}
	return resolved
}

// ResolveAppointments anchors the given date's appointments to absolute
// times. Unparseable entries are dropped.
func (p *Planner) ResolveAppointments(date string, appointments []models.Appointment) []segment.Appointment {
	resolved := make([]segment.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if a.Date != date {
			continue
		}
		start, err := utils.CombineDateAndTime(a.Date, a.Start, p.Loc)
		if err != nil {
			continue
		}
		resolved = append(resolved, segment.Appointment{
			Start:    start,
			Duration: time.Duration(a.DurationMin) * time.Minute,
			Idle:     a.Idle,
		})
	}
	return resolved
}

// SegmentConfig returns the generator configuration for this planner.
func (p *Planner) SegmentConfig() segment.Config {
	return segment.Config{WorkLen: p.WorkLen, BreakLen: p.BreakLen}
}

// AssignConfig returns the engine configuration. Now anchors the overflow
// tail when the day has no segments at all.
func (p *Planner) AssignConfig(now time.Time) assign.Config {
	return assign.Config{WorkLen: p.WorkLen, BreakLen: p.BreakLen, Now: now}
}

// Compute regenerates the full plan for one day. Segments are cheap to
// rebuild, so this runs from scratch on every input change, including each
// drag-to-reassign drop.
func (p *Planner) Compute(date string, blocks []models.DayBlock, appointments []models.Appointment, todos []models.Todo, now time.Time) Plan {
	segs := segment.Generate(p.ResolveBlocks(date, blocks), p.ResolveAppointments(date, appointments), p.SegmentConfig())
	allocs := assign.Assign(WorkItems(todos), segs, p.AssignConfig(now))
	return Plan{Segments: segs, Allocations: allocs}
}
