// Package assign maps a prioritized backlog onto the day's segment sequence.
package assign

import (
	"sort"
	"time"

	"github.com/quietfield/tomoplan/internal/models"
)

// Config carries the unit lengths (for overflow sizing) and the fallback
// anchor used when a day has no segments at all.
type Config struct {
	WorkLen  time.Duration
	BreakLen time.Duration
	Now      time.Time
}

// candidate is an eligible segment together with its position in the full
// chronological segment sequence.
type candidate struct {
	seg         models.Segment
	globalIndex int
}

type state struct {
	cfg            Config
	used           map[int]bool // keyed by global index, owned by one Assign call
	overflowCursor time.Time
	out            []models.Allocation
}

// Assign places every work item's required units onto segments, in priority
// order (priority 0 last, ties keep backlog order). Items that cannot be
// fully placed get overflow allocations appended after the day's last real
// segment, so the allocation count for an item always equals its required
// units. The result references segments by global index; no two non-overflow
// allocations share one.
func Assign(items []models.WorkItem, segments []models.Segment, cfg Config) []models.Allocation {
	focus := eligible(segments, models.CategoryFocus)
	leisure := eligible(segments, models.CategoryLeisure)

	st := &state{
		cfg:            cfg,
		used:           make(map[int]bool),
		overflowCursor: cfg.Now,
	}
	if len(segments) > 0 {
		st.overflowCursor = segments[len(segments)-1].End
	}

	for _, item := range order(items) {
		switch item.UnitType {
		case models.UnitLeisure:
			st.placePairs(item, leisure, true)
		case models.UnitLongFocus:
			st.placeQuads(item, focus)
		default:
			st.placePairs(item, focus, false)
		}
	}
	return st.out
}

// eligible collects the work and break segments of one category, in
// chronological order, remembering each segment's global index.
func eligible(segments []models.Segment, category models.BlockCategory) []candidate {
	var list []candidate
	for i, seg := range segments {
		if seg.Category != category {
			continue
		}
		if seg.Kind != models.SegmentWork && seg.Kind != models.SegmentBreak {
			continue
		}
		list = append(list, candidate{seg: seg, globalIndex: i})
	}
	return list
}

// order sorts items by priority ascending with zero (unprioritized) last.
// The sort is stable so equal priorities keep backlog order.
func order(items []models.WorkItem) []models.WorkItem {
	sorted := make([]models.WorkItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := sorted[i].Priority, sorted[j].Priority
		if pi == 0 || pj == 0 {
			return pj == 0 && pi != 0
		}
		return pi < pj
	})
	return sorted
}

// scanStart resolves an item's position hint to a position in its eligible
// list. An unresolvable hint falls back to the start of the list.
func scanStart(item models.WorkItem, list []candidate) int {
	if item.GlobalIndexHint == nil {
		return 0
	}
	for pos, c := range list {
		if c.globalIndex == *item.GlobalIndexHint {
			return pos
		}
	}
	return 0
}

// paired reports whether list[i+1] is the free break unit completing the
// work unit at list[i]: same parent block and no gap between them.
func (st *state) paired(list []candidate, i int) bool {
	if i+1 >= len(list) || st.used[list[i+1].globalIndex] {
		return false
	}
	w, b := list[i].seg, list[i+1].seg
	return b.Kind == models.SegmentBreak &&
		b.ParentBlockID == w.ParentBlockID &&
		w.End.Equal(b.Start)
}

// placePairs walks the eligible list left to right placing one unit per free
// work segment. With strict pairing (leisure) the following break must also
// be free; otherwise the break is absorbed opportunistically and a bare work
// unit is still acceptable.
func (st *state) placePairs(item models.WorkItem, list []candidate, strict bool) {
	assigned := 0
	for i := scanStart(item, list); i < len(list) && assigned < item.RequiredUnits; i++ {
		c := list[i]
		if st.used[c.globalIndex] || c.seg.Kind != models.SegmentWork {
			continue
		}

		end := c.seg.End
		span := 0
		if st.paired(list, i) {
			end = list[i+1].seg.End
			st.used[list[i+1].globalIndex] = true
			span = 1
		} else if strict {
			continue
		}

		st.used[c.globalIndex] = true
		assigned++
		st.out = append(st.out, models.Allocation{
			WorkItemID:  item.ID,
			Title:       item.Title,
			UnitIndex:   assigned,
			Start:       c.seg.Start,
			End:         end,
			Category:    c.seg.Category,
			GlobalIndex: c.globalIndex,
		})
		i += span
	}
	st.overflow(item, assigned, st.cfg.WorkLen+st.cfg.BreakLen)
}

// placeQuads places long-focus units, which only fit as four consecutive,
// contiguous, unused segments forming work-break-work-break. One matched
// quad satisfies two units and yields one allocation per work/break pair;
// partial matches are rejected, so a quad is only taken while at least two
// units remain.
func (st *state) placeQuads(item models.WorkItem, list []candidate) {
	assigned := 0
	for i := scanStart(item, list); i+3 < len(list) && item.RequiredUnits-assigned >= 2; i++ {
		if !st.quadAt(list, i) {
			continue
		}
		for j := 0; j < 4; j++ {
			st.used[list[i+j].globalIndex] = true
		}
		for j := 0; j < 2; j++ {
			assigned++
			st.out = append(st.out, models.Allocation{
				WorkItemID:  item.ID,
				Title:       item.Title,
				UnitIndex:   assigned,
				Start:       list[i+2*j].seg.Start,
				End:         list[i+2*j+1].seg.End,
				Category:    list[i].seg.Category,
				GlobalIndex: list[i+2*j].globalIndex,
			})
		}
		i += 3
	}
	st.overflow(item, assigned, 2*(st.cfg.WorkLen+st.cfg.BreakLen))
}

// quadAt reports whether four consecutive unused segments starting at list[i]
// form a contiguous work-break-work-break run.
func (st *state) quadAt(list []candidate, i int) bool {
	kinds := [4]models.SegmentKind{
		models.SegmentWork, models.SegmentBreak,
		models.SegmentWork, models.SegmentBreak,
	}
	for j := 0; j < 4; j++ {
		c := list[i+j]
		if st.used[c.globalIndex] || c.seg.Kind != kinds[j] {
			return false
		}
		if j > 0 && !list[i+j-1].seg.End.Equal(c.seg.Start) {
			return false
		}
	}
	return true
}

// overflow synthesizes placements for whatever demand the day could not
// absorb. Overflow allocations stack sequentially past the last real segment
// and carry no global index.
func (st *state) overflow(item models.WorkItem, assigned int, unit time.Duration) {
	category := models.CategoryFocus
	if item.UnitType == models.UnitLeisure {
		category = models.CategoryLeisure
	}
	for assigned < item.RequiredUnits {
		assigned++
		st.out = append(st.out, models.Allocation{
			WorkItemID:  item.ID,
			Title:       item.Title,
			UnitIndex:   assigned,
			Start:       st.overflowCursor,
			End:         st.overflowCursor.Add(unit),
			Category:    category,
			GlobalIndex: -1,
			Overflow:    true,
		})
		st.overflowCursor = st.overflowCursor.Add(unit)
	}
}
