package actual

import (
	"testing"
	"time"

	"github.com/quietfield/tomoplan/internal/models"
)

func TestReconcile_RequiresBothTimestamps(t *testing.T) {
	todos := []models.Todo{
		{ID: "done", UnitType: models.UnitStandard, StartedAt: "2026-03-04T09:00:00Z", FinishedAt: "2026-03-04T09:50:00Z"},
		{ID: "running", UnitType: models.UnitStandard, StartedAt: "2026-03-04T10:00:00Z"},
		{ID: "untouched", UnitType: models.UnitStandard},
		{ID: "garbled", UnitType: models.UnitStandard, StartedAt: "not-a-timestamp", FinishedAt: "2026-03-04T11:00:00Z"},
	}

	intervals := Reconcile(todos, nil, time.UTC)

	if len(intervals) != 1 {
		t.Fatalf("expected 1 interval, got %d: %+v", len(intervals), intervals)
	}
	got := intervals[0]
	if got.OwnerID != "done" {
		t.Errorf("wrong owner: %s", got.OwnerID)
	}
	if got.End.Sub(got.Start) != 50*time.Minute {
		t.Errorf("interval should span the recorded range, got %v", got.End.Sub(got.Start))
	}
	if got.Kind != models.CategoryFocus {
		t.Errorf("standard todo maps to focus, got %s", got.Kind)
	}
}

func TestReconcile_LeisureKind(t *testing.T) {
	todos := []models.Todo{
		{ID: "g", UnitType: models.UnitLeisure, StartedAt: "2026-03-04T12:00:00Z", FinishedAt: "2026-03-04T12:30:00Z"},
	}

	intervals := Reconcile(todos, nil, time.UTC)
	if len(intervals) != 1 || intervals[0].Kind != models.CategoryLeisure {
		t.Errorf("leisure todo should map to the leisure kind: %+v", intervals)
	}
}

func TestReconcile_AppointmentsNeedRecordedFinish(t *testing.T) {
	appts := []models.Appointment{
		{ID: "a1", Date: "2026-03-04", Start: "14:00", DurationMin: 30, FinishedAt: "2026-03-04T14:45:00Z"},
		{ID: "a2", Date: "2026-03-04", Start: "16:00", DurationMin: 30},
	}

	intervals := Reconcile(nil, appts, time.UTC)

	if len(intervals) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(intervals))
	}
	got := intervals[0]
	if got.OwnerID != "a1" || got.Kind != models.CategoryAppointment {
		t.Errorf("unexpected interval: %+v", got)
	}
	// Planned 30 minutes, actually ran 45: the reconciler reports the
	// recorded range, not the plan.
	if got.End.Sub(got.Start) != 45*time.Minute {
		t.Errorf("interval should use the recorded finish, got %v", got.End.Sub(got.Start))
	}
}

func TestReconcile_OverlapIsLegitimate(t *testing.T) {
	// Interrupted-and-resumed work can overlap; nothing is merged or
	// rejected.
	todos := []models.Todo{
		{ID: "t1", UnitType: models.UnitStandard, StartedAt: "2026-03-04T09:00:00Z", FinishedAt: "2026-03-04T10:00:00Z"},
		{ID: "t2", UnitType: models.UnitStandard, StartedAt: "2026-03-04T09:30:00Z", FinishedAt: "2026-03-04T10:30:00Z"},
	}

	intervals := Reconcile(todos, nil, time.UTC)
	if len(intervals) != 2 {
		t.Fatalf("expected both overlapping intervals, got %d", len(intervals))
	}
	if intervals[0].OwnerID != "t1" || intervals[1].OwnerID != "t2" {
		t.Errorf("intervals should be ordered by start: %+v", intervals)
	}
}
