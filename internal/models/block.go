package models

type BlockCategory string

const (
	CategoryFocus   BlockCategory = "focus"
	CategoryLeisure BlockCategory = "leisure"
	CategoryRest    BlockCategory = "rest"

	// Synthetic categories, never present on a stored block
	CategoryAppointment BlockCategory = "appointment"
	CategoryIdle        BlockCategory = "idle"
)

// DayBlock is one contiguous portion of the day template. Blocks are
// non-overlapping; gaps between them are simply not schedulable.
type DayBlock struct {
	ID       string        `json:"id"`
	Category BlockCategory `json:"category"`
	Start    string        `json:"start"` // HH:MM format
	End      string        `json:"end"`   // HH:MM format
	Position int           `json:"position"`
}

// Appointment is a fixed external commitment on a specific date.
type Appointment struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`  // YYYY-MM-DD format
	Start       string `json:"start"` // HH:MM format
	DurationMin int    `json:"duration_min"`
	Idle        bool   `json:"idle,omitempty"`        // blocked-out downtime rather than a commitment
	FinishedAt  string `json:"finished_at,omitempty"` // RFC3339 timestamp
}
