package assign

import (
	"reflect"
	"testing"
	"time"

	"github.com/quietfield/tomoplan/internal/models"
)

var testDay = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return testDay.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func testConfig() Config {
	return Config{WorkLen: 25 * time.Minute, BreakLen: 5 * time.Minute, Now: at(8, 0)}
}

func work(parent string, start time.Time, cat models.BlockCategory) models.Segment {
	return models.Segment{ParentBlockID: parent, Kind: models.SegmentWork, Start: start, End: start.Add(25 * time.Minute), Category: cat}
}

func brk(parent string, start time.Time, cat models.BlockCategory) models.Segment {
	return models.Segment{ParentBlockID: parent, Kind: models.SegmentBreak, Start: start, End: start.Add(5 * time.Minute), Category: cat}
}

// w b w b in one focus block, 09:00-10:00
func focusHour() []models.Segment {
	return []models.Segment{
		work("b1", at(9, 0), models.CategoryFocus),
		brk("b1", at(9, 25), models.CategoryFocus),
		work("b1", at(9, 30), models.CategoryFocus),
		brk("b1", at(9, 55), models.CategoryFocus),
	}
}

func std(id string, prio, units int) models.WorkItem {
	return models.WorkItem{ID: id, Title: id, Priority: prio, RequiredUnits: units, UnitType: models.UnitStandard}
}

func TestAssign_StandardTakesFullPair(t *testing.T) {
	segs := focusHour()
	allocs := Assign([]models.WorkItem{std("a", 1, 1)}, segs, testConfig())

	if len(allocs) != 1 {
		t.Fatalf("expected 1 allocation, got %d", len(allocs))
	}
	got := allocs[0]
	if got.Overflow {
		t.Errorf("allocation should not overflow")
	}
	if !got.Start.Equal(at(9, 0)) || !got.End.Equal(at(9, 30)) {
		t.Errorf("allocation should span the work+break pair, got %v - %v", got.Start, got.End)
	}
	if got.GlobalIndex != 0 || got.UnitIndex != 1 {
		t.Errorf("anchor global index 0 / unit 1 expected, got %d / %d", got.GlobalIndex, got.UnitIndex)
	}
}

func TestAssign_StandardFallsBackToBareWork(t *testing.T) {
	// The second work unit's break is missing, so unit 2 is placed bare.
	segs := []models.Segment{
		work("b1", at(9, 0), models.CategoryFocus),
		brk("b1", at(9, 25), models.CategoryFocus),
		work("b1", at(9, 30), models.CategoryFocus),
	}
	allocs := Assign([]models.WorkItem{std("a", 1, 2)}, segs, testConfig())

	if len(allocs) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(allocs))
	}
	if !allocs[1].End.Equal(at(9, 55)) {
		t.Errorf("bare work unit should end at 09:55, got %v", allocs[1].End)
	}
	if allocs[1].Overflow {
		t.Errorf("bare placement is a real allocation, not overflow")
	}
}

func TestAssign_LeisureRequiresContiguousPair(t *testing.T) {
	// A bare leisure work unit must never be claimed by a leisure item.
	segs := []models.Segment{work("b1", at(12, 0), models.CategoryLeisure)}
	items := []models.WorkItem{{ID: "g", Priority: 1, RequiredUnits: 1, UnitType: models.UnitLeisure}}

	allocs := Assign(items, segs, testConfig())

	if len(allocs) != 1 {
		t.Fatalf("expected 1 allocation, got %d", len(allocs))
	}
	if !allocs[0].Overflow {
		t.Errorf("leisure item without a pair must overflow, got %+v", allocs[0])
	}
}

func TestAssign_LeisurePlacedOnPair(t *testing.T) {
	segs := []models.Segment{
		work("b1", at(12, 0), models.CategoryLeisure),
		brk("b1", at(12, 25), models.CategoryLeisure),
	}
	items := []models.WorkItem{{ID: "g", Priority: 1, RequiredUnits: 1, UnitType: models.UnitLeisure}}

	allocs := Assign(items, segs, testConfig())

	if allocs[0].Overflow || !allocs[0].Start.Equal(at(12, 0)) || !allocs[0].End.Equal(at(12, 30)) {
		t.Errorf("leisure pair placement wrong: %+v", allocs[0])
	}
}

func TestAssign_LongFocusQuad(t *testing.T) {
	segs := focusHour()
	items := []models.WorkItem{{ID: "c", Priority: 1, RequiredUnits: 2, UnitType: models.UnitLongFocus}}

	allocs := Assign(items, segs, testConfig())

	if len(allocs) != 2 {
		t.Fatalf("a quad should yield 2 allocations, got %d", len(allocs))
	}
	if allocs[0].Overflow || allocs[1].Overflow {
		t.Fatalf("quad fits, nothing should overflow: %+v", allocs)
	}
	if !allocs[0].Start.Equal(at(9, 0)) || !allocs[0].End.Equal(at(9, 30)) {
		t.Errorf("first pair wrong: %+v", allocs[0])
	}
	if !allocs[1].Start.Equal(at(9, 30)) || !allocs[1].End.Equal(at(10, 0)) {
		t.Errorf("second pair wrong: %+v", allocs[1])
	}
	if allocs[0].GlobalIndex == allocs[1].GlobalIndex {
		t.Errorf("pair allocations must anchor distinct segments")
	}
}

func TestAssign_LongFocusPartialQuadOverflows(t *testing.T) {
	// Only two matching segments exist; a quad cannot form, so the demand
	// overflows past the last real segment with the long-focus unit length.
	segs := []models.Segment{
		work("b1", at(9, 0), models.CategoryFocus),
		brk("b1", at(9, 25), models.CategoryFocus),
	}
	items := []models.WorkItem{{ID: "c", Priority: 1, RequiredUnits: 1, UnitType: models.UnitLongFocus}}

	allocs := Assign(items, segs, testConfig())

	if len(allocs) != 1 {
		t.Fatalf("expected 1 allocation, got %d", len(allocs))
	}
	got := allocs[0]
	if !got.Overflow {
		t.Fatalf("expected overflow, got %+v", got)
	}
	if !got.Start.Equal(at(9, 30)) || !got.End.Equal(at(10, 30)) {
		t.Errorf("overflow should span 60m after the last segment, got %v - %v", got.Start, got.End)
	}
}

func TestAssign_PriorityPrecedence(t *testing.T) {
	segs := focusHour()
	items := []models.WorkItem{
		std("late-prio2", 2, 1),
		std("early-prio1", 1, 1),
		std("unprioritized", 0, 1),
	}

	allocs := Assign(items, segs, testConfig())

	byItem := map[string]models.Allocation{}
	for _, a := range allocs {
		byItem[a.WorkItemID] = a
	}
	if !byItem["early-prio1"].Start.Equal(at(9, 0)) {
		t.Errorf("priority 1 should win the earliest slot, got %v", byItem["early-prio1"].Start)
	}
	if !byItem["late-prio2"].Start.Equal(at(9, 30)) {
		t.Errorf("priority 2 should get the next slot, got %v", byItem["late-prio2"].Start)
	}
	if !byItem["unprioritized"].Overflow {
		t.Errorf("priority 0 schedules only after all prioritized items")
	}
}

func TestAssign_EqualPriorityKeepsBacklogOrder(t *testing.T) {
	segs := focusHour()
	items := []models.WorkItem{std("first", 3, 1), std("second", 3, 1)}

	allocs := Assign(items, segs, testConfig())

	if allocs[0].WorkItemID != "first" || allocs[1].WorkItemID != "second" {
		t.Errorf("stable sort violated: %+v", allocs)
	}
	if !allocs[0].Start.Before(allocs[1].Start) {
		t.Errorf("backlog order should map to chronological order")
	}
}

func TestAssign_MutualExclusionInvariant(t *testing.T) {
	segs := focusHour()
	segs = append(segs,
		work("b2", at(12, 0), models.CategoryLeisure),
		brk("b2", at(12, 25), models.CategoryLeisure),
	)
	items := []models.WorkItem{
		std("a", 1, 2),
		std("b", 2, 2),
		{ID: "g", Priority: 3, RequiredUnits: 1, UnitType: models.UnitLeisure},
		{ID: "c", Priority: 0, RequiredUnits: 2, UnitType: models.UnitLongFocus},
	}

	allocs := Assign(items, segs, testConfig())

	seen := map[int]string{}
	for _, a := range allocs {
		if a.Overflow {
			continue
		}
		if owner, dup := seen[a.GlobalIndex]; dup {
			t.Errorf("global index %d claimed by both %s and %s", a.GlobalIndex, owner, a.WorkItemID)
		}
		seen[a.GlobalIndex] = a.WorkItemID
	}
}

func TestAssign_Conservation(t *testing.T) {
	segs := focusHour()
	items := []models.WorkItem{
		std("a", 1, 3),
		{ID: "g", Priority: 2, RequiredUnits: 2, UnitType: models.UnitLeisure},
		{ID: "c", Priority: 0, RequiredUnits: 4, UnitType: models.UnitLongFocus},
	}

	allocs := Assign(items, segs, testConfig())

	counts := map[string]int{}
	for _, a := range allocs {
		counts[a.WorkItemID]++
	}
	for _, item := range items {
		if counts[item.ID] != item.RequiredUnits {
			t.Errorf("item %s: %d allocations, want %d", item.ID, counts[item.ID], item.RequiredUnits)
		}
	}
}

func TestAssign_OverflowStacksSequentially(t *testing.T) {
	segs := []models.Segment{work("b1", at(9, 0), models.CategoryFocus)}
	items := []models.WorkItem{std("a", 1, 2), std("b", 2, 1)}

	allocs := Assign(items, segs, testConfig())

	var overflow []models.Allocation
	for _, a := range allocs {
		if a.Overflow {
			overflow = append(overflow, a)
		}
	}
	if len(overflow) != 2 {
		t.Fatalf("expected 2 overflow allocations, got %d", len(overflow))
	}
	if !overflow[0].Start.Equal(at(9, 25)) {
		t.Errorf("overflow starts at the last real segment end, got %v", overflow[0].Start)
	}
	if !overflow[1].Start.Equal(overflow[0].End) {
		t.Errorf("overflow allocations should stack, got %v after %v", overflow[1].Start, overflow[0].End)
	}
}

func TestAssign_OverflowAnchorsAtNowWithoutSegments(t *testing.T) {
	allocs := Assign([]models.WorkItem{std("a", 1, 1)}, nil, testConfig())

	if len(allocs) != 1 || !allocs[0].Overflow {
		t.Fatalf("expected a single overflow allocation, got %+v", allocs)
	}
	if !allocs[0].Start.Equal(at(8, 0)) {
		t.Errorf("overflow should anchor at cfg.Now, got %v", allocs[0].Start)
	}
}

func TestAssign_HintShiftsScanStart(t *testing.T) {
	segs := focusHour()
	hint := 2 // second work unit in the full sequence
	items := []models.WorkItem{{
		ID: "a", Title: "a", Priority: 1, RequiredUnits: 1,
		UnitType: models.UnitStandard, GlobalIndexHint: &hint,
	}}

	allocs := Assign(items, segs, testConfig())

	if allocs[0].GlobalIndex != 2 || !allocs[0].Start.Equal(at(9, 30)) {
		t.Errorf("hinted item should anchor at global index 2, got %+v", allocs[0])
	}
}

func TestAssign_UnresolvableHintFallsBack(t *testing.T) {
	segs := focusHour()
	hint := 99
	items := []models.WorkItem{{
		ID: "a", Priority: 1, RequiredUnits: 1,
		UnitType: models.UnitStandard, GlobalIndexHint: &hint,
	}}

	allocs := Assign(items, segs, testConfig())

	if allocs[0].GlobalIndex != 0 {
		t.Errorf("unresolvable hint should fall back to the scan start, got %+v", allocs[0])
	}
}

func TestAssign_Deterministic(t *testing.T) {
	segs := focusHour()
	items := []models.WorkItem{std("a", 1, 2), std("b", 0, 1), {ID: "c", Priority: 2, RequiredUnits: 2, UnitType: models.UnitLongFocus}}

	first := Assign(items, segs, testConfig())
	second := Assign(items, segs, testConfig())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Assign is not deterministic for identical inputs")
	}
}
