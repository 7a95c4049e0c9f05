package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/quietfield/tomoplan/internal/constants"
	"github.com/quietfield/tomoplan/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverlappingBlocks   ConflictType = "overlapping_blocks"
	ConflictInvalidDateTime     ConflictType = "invalid_datetime"
	ConflictUnknownCategory     ConflictType = "unknown_category"
	ConflictInvalidEstimate     ConflictType = "invalid_estimate"
	ConflictUnknownUnitType     ConflictType = "unknown_unit_type"
	ConflictDuplicateBlockID    ConflictType = "duplicate_block_id"
	ConflictNonPositiveDuration ConflictType = "non_positive_duration"
)

// Conflict represents a detected problem in the day template or its inputs
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Block/appointment/todo identifiers involved
	TimeRange   string   // Human-readable time range (if applicable)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates day templates, appointments, and todos
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateBlocks checks a day template for malformed or overlapping blocks.
// Overlapping template blocks would produce double-booked time, so unlike
// appointments they are always a conflict.
func (v *Validator) ValidateBlocks(blocks []models.DayBlock) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := make(map[string]bool)
	for _, b := range blocks {
		if b.ID != "" && seen[b.ID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateBlockID,
				Description: fmt.Sprintf("Duplicate block ID: %s", b.ID),
				Items:       []string{b.ID},
			})
		}
		seen[b.ID] = true

		if !isValidTimeFormat(b.Start) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Block %s has invalid start time: %s", b.ID, b.Start),
				Items:       []string{b.ID},
			})
			continue
		}
		if !isValidTimeFormat(b.End) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Block %s has invalid end time: %s", b.ID, b.End),
				Items:       []string{b.ID},
			})
			continue
		}

		startMin, _ := parseTimeToMinutes(b.Start)
		endMin, _ := parseTimeToMinutes(b.End)
		if endMin <= startMin {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Block %s has end time (%s) at or before start time (%s)", b.ID, b.End, b.Start),
				Items:       []string{b.ID},
				TimeRange:   fmt.Sprintf("%s-%s", b.Start, b.End),
			})
		}

		switch b.Category {
		case models.CategoryFocus, models.CategoryLeisure, models.CategoryRest:
		default:
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownCategory,
				Description: fmt.Sprintf("Block %s has unknown category: %s", b.ID, b.Category),
				Items:       []string{b.ID},
			})
		}
	}

	// Overlap check over the well-formed blocks only.
	var wellFormed []models.DayBlock
	for _, b := range blocks {
		if isValidTimeFormat(b.Start) && isValidTimeFormat(b.End) {
			wellFormed = append(wellFormed, b)
		}
	}
	sort.Slice(wellFormed, func(i, j int) bool {
		return wellFormed[i].Start < wellFormed[j].Start
	})
	for i := 0; i < len(wellFormed); i++ {
		for j := i + 1; j < len(wellFormed); j++ {
			b1, b2 := wellFormed[i], wellFormed[j]
			if timesOverlap(b1.Start, b1.End, b2.Start, b2.End) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type: ConflictOverlappingBlocks,
					Description: fmt.Sprintf("Blocks overlap: %s (%s-%s) and %s (%s-%s)",
						b1.ID, b1.Start, b1.End, b2.ID, b2.Start, b2.End),
					Items:     []string{b1.ID, b2.ID},
					TimeRange: fmt.Sprintf("%s-%s", b1.Start, b1.End),
				})
			}
		}
	}

	return result
}

// ValidateAppointments checks appointments for malformed dates, times, and
// durations. Overlapping appointments are not flagged; overlaps are merged
// when the day is tiled.
func (v *Validator) ValidateAppointments(appts []models.Appointment) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for _, a := range appts {
		label := a.Title
		if label == "" {
			label = a.ID
		}

		if _, err := time.Parse(constants.DateFormat, a.Date); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Appointment %q has invalid date: %s", label, a.Date),
				Items:       []string{a.ID},
			})
		}
		if !isValidTimeFormat(a.Start) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Appointment %q has invalid start time: %s", label, a.Start),
				Items:       []string{a.ID},
			})
		}
		if a.DurationMin <= 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNonPositiveDuration,
				Description: fmt.Sprintf("Appointment %q has non-positive duration: %d min", label, a.DurationMin),
				Items:       []string{a.ID},
			})
		}
	}

	return result
}

// ValidateTodos checks todos for malformed estimates and unit types.
func (v *Validator) ValidateTodos(todos []models.Todo) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for _, t := range todos {
		label := t.Title
		if label == "" {
			label = t.ID
		}

		if _, err := time.Parse(constants.DateFormat, t.Date); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Todo %q has invalid date: %s", label, t.Date),
				Items:       []string{t.ID},
			})
		}

		for _, est := range t.Estimates {
			if est <= 0 {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidEstimate,
					Description: fmt.Sprintf("Todo %q has non-positive estimate: %d", label, est),
					Items:       []string{t.ID},
				})
			}
		}

		switch t.UnitType {
		case models.UnitStandard, models.UnitLeisure, models.UnitLongFocus:
		default:
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownUnitType,
				Description: fmt.Sprintf("Todo %q has unknown unit type: %s", label, t.UnitType),
				Items:       []string{t.ID},
			})
		}
	}

	return result
}

// Helper functions

func isValidTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

func parseTimeToMinutes(timeStr string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// timesOverlap checks if two HH:MM time ranges overlap
func timesOverlap(start1, end1, start2, end2 string) bool {
	s1, err := parseTimeToMinutes(start1)
	if err != nil {
		return false
	}
	e1, err := parseTimeToMinutes(end1)
	if err != nil {
		return false
	}
	s2, err := parseTimeToMinutes(start2)
	if err != nil {
		return false
	}
	e2, err := parseTimeToMinutes(end2)
	if err != nil {
		return false
	}

	return s1 < e2 && s2 < e1
}
