package constants

const (
	AppName            = "tomoplan"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/tomoplan/tomoplan.db"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Default pomodoro lengths in minutes
	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5

	// DBConnectionEnvVar is consulted before the OS keyring for a Postgres connection string
	DBConnectionEnvVar = "TOMOPLAN_DB_CONNECTION"
)
