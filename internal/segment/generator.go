// Package segment turns a day template into the flat sequence of
// schedulable and occupied units the assignment engine works over.
package segment

import (
	"sort"
	"time"

	"github.com/quietfield/tomoplan/internal/models"
)

// AppointmentParentID marks segments carved out by appointments, which may
// span block boundaries and so have no real parent block.
const AppointmentParentID = "A"

// Config carries the template's unit lengths.
type Config struct {
	WorkLen  time.Duration
	BreakLen time.Duration
}

// Block is a day-template block resolved to absolute time.
type Block struct {
	ID       string
	Category models.BlockCategory
	Start    time.Time
	End      time.Time
}

// Appointment is a fixed commitment resolved to absolute time. Idle marks
// blocked-out downtime; it occupies time the same way but renders apart.
type Appointment struct {
	Start    time.Time
	Duration time.Duration
	Idle     bool
}

type interval struct {
	start time.Time
	end   time.Time
	idle  bool
}

// Generate splits the template blocks into work/break units, carving out the
// appointment exclusions. The result is sorted by start time and is a pure
// function of its inputs: identical inputs always produce identical output.
//
// Rest blocks never yield units. A zero or negative appointment duration
// contributes nothing. Leftover spans shorter than one work unit are left
// unscheduled and produce no segment.
func Generate(blocks []Block, appointments []Appointment, cfg Config) []models.Segment {
	exclusions := mergeExclusions(appointments)

	var segments []models.Segment
	for _, ex := range exclusions {
		kind, category := models.SegmentAppointment, models.CategoryAppointment
		if ex.idle {
			kind, category = models.SegmentIdle, models.CategoryIdle
		}
		segments = append(segments, models.Segment{
			ParentBlockID: AppointmentParentID,
			Kind:          kind,
			Start:         ex.start,
			End:           ex.end,
			Category:      category,
		})
	}

	if cfg.WorkLen > 0 {
		segments = append(segments, tileBlocks(blocks, exclusions, cfg)...)
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start.Before(segments[j].Start)
	})
	return segments
}

// mergeExclusions converts appointments to intervals and merges overlapping
// or adjacent ones into a minimal disjoint set. An interval that absorbs an
// idle appointment stays idle as a whole.
func mergeExclusions(appointments []Appointment) []interval {
	var raw []interval
	for _, a := range appointments {
		if a.Duration <= 0 {
			continue
		}
		raw = append(raw, interval{start: a.Start, end: a.Start.Add(a.Duration), idle: a.Idle})
	}
	sort.SliceStable(raw, func(i, j int) bool { return raw[i].start.Before(raw[j].start) })

	var merged []interval
	for _, iv := range raw {
		if len(merged) == 0 || merged[len(merged)-1].end.Before(iv.start) {
			merged = append(merged, iv)
			continue
		}
		last := &merged[len(merged)-1]
		if iv.end.After(last.end) {
			last.end = iv.end
		}
		last.idle = last.idle || iv.idle
	}
	return merged
}

// subtract removes the exclusion intervals from [start, end) and returns the
// remaining disjoint ranges. One exclusion may split a range in two.
func subtract(start, end time.Time, exclusions []interval) []interval {
	var relevant []interval
	for _, ex := range exclusions {
		if ex.end.After(start) && ex.start.Before(end) {
			relevant = append(relevant, ex)
		}
	}
	if len(relevant) == 0 {
		if end.After(start) {
			return []interval{{start: start, end: end}}
		}
		return nil
	}

	var result []interval
	cur := start
	for _, ex := range relevant {
		if ex.start.After(cur) {
			stop := ex.start
			if stop.After(end) {
				stop = end
			}
			result = append(result, interval{start: cur, end: stop})
		}
		if ex.end.After(cur) {
			cur = ex.end
		}
		if !cur.Before(end) {
			break
		}
	}
	if cur.Before(end) {
		result = append(result, interval{start: cur, end: end})
	}

	out := result[:0]
	for _, r := range result {
		if r.end.After(r.start) {
			out = append(out, r)
		}
	}
	return out
}

// tileBlocks lays work/break pairs into whatever remains of each non-rest
// block after exclusion subtraction. Work units are numbered per category in
// chronological order, continuing across block boundaries.
func tileBlocks(blocks []Block, exclusions []interval, cfg Config) []models.Segment {
	var segments []models.Segment
	seq := map[models.BlockCategory]int{}

	for _, block := range blocks {
		if block.Category == models.CategoryRest || !block.End.After(block.Start) {
			continue
		}

		for _, avail := range subtract(block.Start, block.End, exclusions) {
			cur := avail.start
			idx := seq[block.Category]

			for avail.end.After(cur.Add(cfg.WorkLen + cfg.BreakLen)) {
				idx++
				segments = append(segments, models.Segment{
					ParentBlockID: block.ID,
					Kind:          models.SegmentWork,
					Start:         cur,
					End:           cur.Add(cfg.WorkLen),
					Category:      block.Category,
					SeqInCategory: idx,
				})
				cur = cur.Add(cfg.WorkLen)
				segments = append(segments, models.Segment{
					ParentBlockID: block.ID,
					Kind:          models.SegmentBreak,
					Start:         cur,
					End:           cur.Add(cfg.BreakLen),
					Category:      block.Category,
				})
				cur = cur.Add(cfg.BreakLen)
			}

			// A trailing span that fits a bare work unit still counts;
			// anything shorter stays unscheduled.
			if !avail.end.Before(cur.Add(cfg.WorkLen)) {
				idx++
				segments = append(segments, models.Segment{
					ParentBlockID: block.ID,
					Kind:          models.SegmentWork,
					Start:         cur,
					End:           cur.Add(cfg.WorkLen),
					Category:      block.Category,
					SeqInCategory: idx,
				})
			}

			seq[block.Category] = idx
		}
	}
	return segments
}
