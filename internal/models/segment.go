package models

import "time"

type SegmentKind string

const (
	SegmentWork        SegmentKind = "work"
	SegmentBreak       SegmentKind = "break"
	SegmentAppointment SegmentKind = "appointment"
	SegmentIdle        SegmentKind = "idle"
)

// Segment is the atomic schedulable/occupied unit of a day. Segments are
// always rebuilt from the template and appointments, never mutated in place.
// ParentBlockID is a lookup reference only; appointment segments carry the
// synthetic parent id "A".
type Segment struct {
	ParentBlockID string
	Kind          SegmentKind
	Start         time.Time
	End           time.Time
	Category      BlockCategory
	SeqInCategory int // 1-based among work units of the same category, 0 otherwise
}

// WorkItem is the engine-facing view of a todo. RequiredUnits is computed
// once at the boundary from the todo's raw estimate entries.
type WorkItem struct {
	ID              string
	Title           string
	Priority        int // 0 sorts last
	RequiredUnits   int
	UnitType        UnitType
	GlobalIndexHint *int
}

// Allocation places one unit of a WorkItem onto the day. GlobalIndex
// addresses the anchor segment in the full chronological segment sequence
// and is -1 for overflow placements.
type Allocation struct {
	WorkItemID  string
	Title       string
	UnitIndex   int // 1-based, which unit of the item this is
	Start       time.Time
	End         time.Time
	Category    BlockCategory
	GlobalIndex int
	Overflow    bool
}

// ExecutionInterval is an actually-elapsed range derived from recorded
// start/finish timestamps, for plan-vs-actual comparison only.
type ExecutionInterval struct {
	OwnerID string
	Start   time.Time
	End     time.Time
	Kind    BlockCategory
}
