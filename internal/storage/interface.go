package storage

import "github.com/quietfield/tomoplan/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Day template
	GetBlocks() ([]models.DayBlock, error)
	SaveBlocks([]models.DayBlock) error
	ClearBlocks() error

	// Appointments
	AddAppointment(models.Appointment) error
	GetAppointments(date string) ([]models.Appointment, error)
	UpdateAppointment(models.Appointment) error
	DeleteAppointment(id string) error

	// Todos
	AddTodo(models.Todo) error
	GetTodo(id string) (models.Todo, error)
	GetTodos(date string) ([]models.Todo, error)
	UpdateTodo(models.Todo) error
	DeleteTodo(id string) error

	// Utils
	GetConfigPath() string
}
