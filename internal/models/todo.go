package models

type UnitType string

const (
	UnitStandard  UnitType = "standard"
	UnitLeisure   UnitType = "leisure"
	UnitLongFocus UnitType = "long_focus"
)

type TodoStatus string

const (
	TodoStatusOpen TodoStatus = "open"
	TodoStatusDone TodoStatus = "done"
)

// Todo is a backlog entry as stored. Estimates holds the raw estimate
// entries; the planner translates them into a unit count at the engine
// boundary, so the engine never sees this representation.
type Todo struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Date            string     `json:"date"` // YYYY-MM-DD format
	Priority        int        `json:"priority"` // 0 means unprioritized, sorts last
	Estimates       []int      `json:"estimates,omitempty"`
	UnitType        UnitType   `json:"unit_type"`
	GlobalIndexHint *int       `json:"global_index_hint,omitempty"`
	Status          TodoStatus `json:"status"`
	StartedAt       string     `json:"started_at,omitempty"`  // RFC3339 timestamp
	FinishedAt      string     `json:"finished_at,omitempty"` // RFC3339 timestamp
}

type Settings struct {
	Timezone     string `json:"timezone"`
	WorkMinutes  int    `json:"work_minutes"`
	BreakMinutes int    `json:"break_minutes"`
}
