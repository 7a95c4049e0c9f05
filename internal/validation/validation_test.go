package validation

import (
	"testing"

	"github.com/quietfield/tomoplan/internal/models"
)

func TestValidateBlocks_CleanTemplate(t *testing.T) {
	v := New()
	result := v.ValidateBlocks([]models.DayBlock{
		{ID: "b1", Category: models.CategoryFocus, Start: "09:00", End: "12:00"},
		{ID: "b2", Category: models.CategoryRest, Start: "12:00", End: "13:00"},
		{ID: "b3", Category: models.CategoryLeisure, Start: "13:00", End: "15:00"},
	})
	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got: %s", result.FormatReport())
	}
}

func TestValidateBlocks_DetectsOverlap(t *testing.T) {
	v := New()
	result := v.ValidateBlocks([]models.DayBlock{
		{ID: "b1", Category: models.CategoryFocus, Start: "09:00", End: "12:00"},
		{ID: "b2", Category: models.CategoryLeisure, Start: "11:00", End: "13:00"},
	})
	if !result.HasConflicts() {
		t.Fatal("expected overlap conflict")
	}
	if result.Conflicts[0].Type != ConflictOverlappingBlocks {
		t.Errorf("expected %s, got %s", ConflictOverlappingBlocks, result.Conflicts[0].Type)
	}
}

func TestValidateBlocks_AdjacentBlocksDoNotOverlap(t *testing.T) {
	v := New()
	result := v.ValidateBlocks([]models.DayBlock{
		{ID: "b1", Category: models.CategoryFocus, Start: "09:00", End: "12:00"},
		{ID: "b2", Category: models.CategoryFocus, Start: "12:00", End: "14:00"},
	})
	if result.HasConflicts() {
		t.Errorf("adjacent blocks flagged: %s", result.FormatReport())
	}
}

func TestValidateBlocks_ReversedAndMalformed(t *testing.T) {
	v := New()
	result := v.ValidateBlocks([]models.DayBlock{
		{ID: "rev", Category: models.CategoryFocus, Start: "14:00", End: "12:00"},
		{ID: "bad", Category: models.CategoryFocus, Start: "9am", End: "12:00"},
		{ID: "cat", Category: "naptime", Start: "15:00", End: "16:00"},
	})
	types := make(map[ConflictType]bool)
	for _, c := range result.Conflicts {
		types[c.Type] = true
	}
	if !types[ConflictInvalidDateTime] {
		t.Error("expected invalid_datetime conflicts")
	}
	if !types[ConflictUnknownCategory] {
		t.Error("expected unknown_category conflict")
	}
}

func TestValidateBlocks_DuplicateID(t *testing.T) {
	v := New()
	result := v.ValidateBlocks([]models.DayBlock{
		{ID: "b1", Category: models.CategoryFocus, Start: "09:00", End: "10:00"},
		{ID: "b1", Category: models.CategoryFocus, Start: "10:00", End: "11:00"},
	})
	if !result.HasConflicts() || result.Conflicts[0].Type != ConflictDuplicateBlockID {
		t.Errorf("expected duplicate_block_id, got: %s", result.FormatReport())
	}
}

func TestValidateAppointments(t *testing.T) {
	v := New()
	result := v.ValidateAppointments([]models.Appointment{
		{ID: "a1", Title: "Standup", Date: "2026-03-04", Start: "10:00", DurationMin: 15},
		{ID: "a2", Title: "Broken", Date: "March 4", Start: "10:00", DurationMin: 15},
		{ID: "a3", Title: "Empty", Date: "2026-03-04", Start: "11:00", DurationMin: 0},
	})
	if len(result.Conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d: %s", len(result.Conflicts), result.FormatReport())
	}
}

func TestValidateAppointments_OverlapIsNotAConflict(t *testing.T) {
	v := New()
	result := v.ValidateAppointments([]models.Appointment{
		{ID: "a1", Title: "Call", Date: "2026-03-04", Start: "10:00", DurationMin: 60},
		{ID: "a2", Title: "Review", Date: "2026-03-04", Start: "10:30", DurationMin: 60},
	})
	if result.HasConflicts() {
		t.Errorf("overlapping appointments flagged: %s", result.FormatReport())
	}
}

func TestValidateTodos(t *testing.T) {
	v := New()
	result := v.ValidateTodos([]models.Todo{
		{ID: "t1", Title: "ok", Date: "2026-03-04", Estimates: []int{1, 2}, UnitType: models.UnitStandard},
		{ID: "t2", Title: "zero estimate", Date: "2026-03-04", Estimates: []int{0}, UnitType: models.UnitLeisure},
		{ID: "t3", Title: "weird type", Date: "2026-03-04", Estimates: []int{1}, UnitType: "sprint"},
	})
	types := make(map[ConflictType]int)
	for _, c := range result.Conflicts {
		types[c.Type]++
	}
	if types[ConflictInvalidEstimate] != 1 {
		t.Errorf("expected 1 invalid_estimate, got %d", types[ConflictInvalidEstimate])
	}
	if types[ConflictUnknownUnitType] != 1 {
		t.Errorf("expected 1 unknown_unit_type, got %d", types[ConflictUnknownUnitType])
	}
}
