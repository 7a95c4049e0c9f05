// Package reassign implements the drag-to-reassign gesture over planned
// allocations. The gesture is an explicit state machine owned by whatever
// event loop hosts it; the package assumes nothing about event delivery.
package reassign

import (
	"github.com/quietfield/tomoplan/internal/assign"
	"github.com/quietfield/tomoplan/internal/models"
)

type Result string

const (
	// ResultApplied means the hint was written and allocations recomputed.
	ResultApplied Result = "applied"
	// ResultNoTarget means the gesture ended without a valid drop target.
	ResultNoTarget Result = "no_target"
	// ResultOccupied means the target was held by another item's allocation.
	ResultOccupied Result = "occupied"
)

const noTarget = -1

// Gesture tracks one in-progress drag. A new gesture cannot begin while one
// is active. The zero value is idle and ready for use.
type Gesture struct {
	active    bool
	itemID    string
	unitIndex int
	target    int
}

// Active reports whether a drag is in progress.
func (g *Gesture) Active() bool { return g.active }

// Target returns the currently resolved drop target, or -1 when none.
func (g *Gesture) Target() int {
	if !g.active {
		return noTarget
	}
	return g.target
}

// ItemID returns the id of the item being dragged.
func (g *Gesture) ItemID() string { return g.itemID }

// Begin starts a drag for one unit of an item. It records which unit moves
// and mutates nothing. Returns false if a gesture is already active.
func (g *Gesture) Begin(itemID string, unitIndex int) bool {
	if g.active {
		return false
	}
	*g = Gesture{active: true, itemID: itemID, unitIndex: unitIndex, target: noTarget}
	return true
}

// Move resolves the segment under the pointer to a drop target. Only free
// work units qualify; any other resolution clears the current target.
func (g *Gesture) Move(globalIndex int, segments []models.Segment, allocations []models.Allocation) {
	if !g.active {
		return
	}
	g.target = noTarget
	if globalIndex < 0 || globalIndex >= len(segments) {
		return
	}
	if segments[globalIndex].Kind != models.SegmentWork {
		return
	}
	if occupiedByOther(allocations, globalIndex, g.itemID) {
		return
	}
	g.target = globalIndex
}

// Drop ends the gesture. With a valid target it writes the dragged item's
// position hint and recomputes the full allocation set; otherwise it is a
// no-op. Rejections leave items and allocations untouched.
func (g *Gesture) Drop(items []models.WorkItem, segments []models.Segment, allocations []models.Allocation, cfg assign.Config) ([]models.WorkItem, []models.Allocation, Result) {
	target := g.Target()
	itemID := g.itemID
	g.Cancel()

	if target == noTarget {
		return items, allocations, ResultNoTarget
	}
	return Apply(itemID, target, items, segments, allocations, cfg)
}

// Cancel abandons the gesture without side effects.
func (g *Gesture) Cancel() { *g = Gesture{} }

// Apply validates a reassignment of itemID onto targetIndex and, when valid,
// returns the items with the hint written plus a freshly recomputed
// allocation set. Recomputation is total: moving one item can change which
// segments remain free for lower-priority items. Invalid targets reject
// with the inputs unchanged.
func Apply(itemID string, targetIndex int, items []models.WorkItem, segments []models.Segment, allocations []models.Allocation, cfg assign.Config) ([]models.WorkItem, []models.Allocation, Result) {
	if targetIndex < 0 || targetIndex >= len(segments) || segments[targetIndex].Kind != models.SegmentWork {
		return items, allocations, ResultNoTarget
	}
	if occupiedByOther(allocations, targetIndex, itemID) {
		return items, allocations, ResultOccupied
	}

	found := false
	updated := make([]models.WorkItem, len(items))
	copy(updated, items)
	for i := range updated {
		if updated[i].ID == itemID {
			hint := targetIndex
			updated[i].GlobalIndexHint = &hint
			found = true
		}
	}
	if !found {
		return items, allocations, ResultNoTarget
	}

	return updated, assign.Assign(updated, segments, cfg), ResultApplied
}

// occupiedByOther reports whether a non-overflow allocation of a different
// item already claims the global index. Overflow placements never block a
// drop.
func occupiedByOther(allocations []models.Allocation, globalIndex int, itemID string) bool {
	for _, a := range allocations {
		if !a.Overflow && a.GlobalIndex == globalIndex && a.WorkItemID != itemID {
			return true
		}
	}
	return false
}
