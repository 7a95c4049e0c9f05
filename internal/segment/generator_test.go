package segment

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
	return Config{WorkLen: 25 * time.Minute, BreakLen: 5 * time.Minute}
}

func focusBlock(id string, start, end time.Time) Block {
	return Block{ID: id, Category: models.CategoryFocus, Start: start, End: end}
}

func TestGenerate_SingleFocusBlock(t *testing.T) {
	blocks := []Block{focusBlock("b1", at(9, 0), at(10, 0))}

	segs := Generate(blocks, nil, testConfig())

	want := []models.Segment{
		{ParentBlockID: "b1", Kind: models.SegmentWork, Start: at(9, 0), End: at(9, 25), Category: models.CategoryFocus, SeqInCategory: 1},
		{ParentBlockID: "b1", Kind: models.SegmentBreak, Start: at(9, 25), End: at(9, 30), Category: models.CategoryFocus},
		{ParentBlockID: "b1", Kind: models.SegmentWork, Start: at(9, 30), End: at(9, 55), Category: models.CategoryFocus, SeqInCategory: 2},
	}
	if !reflect.DeepEqual(segs, want) {
		t.Errorf("Generate returned %+v, want %+v", segs, want)
	}
}

func TestGenerate_AppointmentSplitsBlockBelowUnitLength(t *testing.T) {
	blocks := []Block{focusBlock("b1", at(9, 0), at(10, 0))}
	appts := []Appointment{{Start: at(9, 20), Duration: 20 * time.Minute}}

	segs := Generate(blocks, appts, testConfig())

	// Both remaining ranges are 20 minutes, too short for a work unit, so
	// only the appointment segment survives.
	if len(segs) != 1 {
		t.Fatalf("expected only the appointment segment, got %d segments: %+v", len(segs), segs)
	}
	got := segs[0]
	if got.Kind != models.SegmentAppointment || !got.Start.Equal(at(9, 20)) || !got.End.Equal(at(9, 40)) {
		t.Errorf("unexpected appointment segment: %+v", got)
	}
	if got.Category != models.CategoryAppointment || got.ParentBlockID != AppointmentParentID {
		t.Errorf("appointment segment not tagged with synthetic category: %+v", got)
	}
}

func TestGenerate_MergesOverlappingAppointments(t *testing.T) {
	appts := []Appointment{
		{Start: at(9, 0), Duration: 30 * time.Minute},
		{Start: at(9, 20), Duration: 30 * time.Minute},
		{Start: at(11, 0), Duration: 15 * time.Minute},
	}

	segs := Generate(nil, appts, testConfig())

	if len(segs) != 2 {
		t.Fatalf("expected 2 merged appointment segments, got %d", len(segs))
	}
	if !segs[0].Start.Equal(at(9, 0)) || !segs[0].End.Equal(at(9, 50)) {
		t.Errorf("merged interval wrong: %v - %v", segs[0].Start, segs[0].End)
	}
	for i := 1; i < len(segs); i++ {
		if segs[i].Start.Before(segs[i-1].End) {
			t.Errorf("appointment segments overlap after merge: %+v and %+v", segs[i-1], segs[i])
		}
	}
}

func TestGenerate_IdleAppointmentTagging(t *testing.T) {
	appts := []Appointment{
		{Start: at(9, 0), Duration: 20 * time.Minute},
		{Start: at(9, 10), Duration: 20 * time.Minute, Idle: true},
	}

	segs := Generate(nil, appts, testConfig())

	if len(segs) != 1 {
		t.Fatalf("expected 1 merged segment, got %d", len(segs))
	}
	if segs[0].Kind != models.SegmentIdle || segs[0].Category != models.CategoryIdle {
		t.Errorf("interval absorbing an idle appointment should stay idle: %+v", segs[0])
	}
}

func TestGenerate_ZeroDurationAppointmentIgnored(t *testing.T) {
	blocks := []Block{focusBlock("b1", at(9, 0), at(10, 0))}
	appts := []Appointment{
		{Start: at(9, 0), Duration: 0},
		{Start: at(9, 0), Duration: -10 * time.Minute},
	}

	segs := Generate(blocks, appts, testConfig())
	plain := Generate(blocks, nil, testConfig())

	if !reflect.DeepEqual(segs, plain) {
		t.Errorf("zero/negative duration appointments should contribute nothing")
	}
}

func TestGenerate_RestBlockYieldsNothing(t *testing.T) {
	blocks := []Block{{ID: "sleep", Category: models.CategoryRest, Start: at(0, 0), End: at(8, 0)}}

	if segs := Generate(blocks, nil, testConfig()); len(segs) != 0 {
		t.Errorf("rest blocks must not yield segments, got %+v", segs)
	}
}

func TestGenerate_ReversedBlockYieldsNothing(t *testing.T) {
	blocks := []Block{focusBlock("b1", at(10, 0), at(9, 0))}

	if segs := Generate(blocks, nil, testConfig()); len(segs) != 0 {
		t.Errorf("non-monotonic block must clamp to zero effect, got %+v", segs)
	}
}

func TestGenerate_BlockFullyCoveredByExclusion(t *testing.T) {
	blocks := []Block{focusBlock("b1", at(9, 0), at(10, 0))}
	appts := []Appointment{{Start: at(8, 30), Duration: 120 * time.Minute}}

	segs := Generate(blocks, appts, testConfig())

	for _, s := range segs {
		if s.Kind == models.SegmentWork || s.Kind == models.SegmentBreak {
			t.Errorf("fully covered block produced a unit: %+v", s)
		}
	}
}

func TestGenerate_SequenceContinuesAcrossBlocks(t *testing.T) {
	blocks := []Block{
		focusBlock("b1", at(9, 0), at(10, 0)),
		{ID: "b2", Category: models.CategoryLeisure, Start: at(10, 0), End: at(11, 0)},
		focusBlock("b3", at(14, 0), at(15, 0)),
	}

	segs := Generate(blocks, nil, testConfig())

	var focusSeqs, leisureSeqs []int
	for _, s := range segs {
		if s.Kind != models.SegmentWork {
			continue
		}
		switch s.Category {
		case models.CategoryFocus:
			focusSeqs = append(focusSeqs, s.SeqInCategory)
		case models.CategoryLeisure:
			leisureSeqs = append(leisureSeqs, s.SeqInCategory)
		}
	}
	if !reflect.DeepEqual(focusSeqs, []int{1, 2, 3, 4}) {
		t.Errorf("focus work units numbered %v, want continuation across blocks", focusSeqs)
	}
	if !reflect.DeepEqual(leisureSeqs, []int{1, 2}) {
		t.Errorf("leisure work units numbered %v, want independent count", leisureSeqs)
	}
}

func TestGenerate_UnitsNeverOverlapAppointments(t *testing.T) {
	blocks := []Block{
		focusBlock("b1", at(9, 0), at(12, 0)),
		{ID: "b2", Category: models.CategoryLeisure, Start: at(12, 0), End: at(14, 0)},
	}
	appts := []Appointment{
		{Start: at(9, 40), Duration: 35 * time.Minute},
		{Start: at(12, 30), Duration: 10 * time.Minute},
	}

	segs := Generate(blocks, appts, testConfig())

	for _, a := range segs {
		if a.Kind != models.SegmentAppointment && a.Kind != models.SegmentIdle {
			continue
		}
		for _, u := range segs {
			if u.Kind != models.SegmentWork && u.Kind != models.SegmentBreak {
				continue
			}
			if u.Start.Before(a.End) && a.Start.Before(u.End) {
				t.Errorf("unit %+v overlaps appointment %+v", u, a)
			}
		}
	}
}

func TestGenerate_SortedAndDeterministic(t *testing.T) {
	blocks := []Block{
		focusBlock("b2", at(13, 0), at(15, 10)),
		focusBlock("b1", at(9, 0), at(10, 0)),
	}
	appts := []Appointment{{Start: at(13, 30), Duration: 20 * time.Minute}}

	first := Generate(blocks, appts, testConfig())
	second := Generate(blocks, appts, testConfig())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Generate is not deterministic for identical inputs")
	}
	for i := 1; i < len(first); i++ {
		if first[i].Start.Before(first[i-1].Start) {
			t.Errorf("segments not sorted by start: %+v before %+v", first[i-1], first[i])
		}
	}
}
