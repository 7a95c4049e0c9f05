package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/quietfield/tomoplan/internal/constants"
	"github.com/quietfield/tomoplan/internal/models"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.ensureSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize default settings if not present or incomplete
	settings, err := s.GetSettings()
	if err != nil || settings.WorkMinutes == 0 {
		defaults := models.Settings{
			Timezone:     "Local",
			WorkMinutes:  constants.DefaultWorkMinutes,
			BreakMinutes: constants.DefaultBreakMinutes,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'tomoplan init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			timezone TEXT NOT NULL DEFAULT 'Local',
			work_minutes INTEGER NOT NULL DEFAULT 25,
			break_minutes INTEGER NOT NULL DEFAULT 5
		);
		CREATE TABLE IF NOT EXISTS blocks (
			id TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS appointments (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL,
			start_time TEXT NOT NULL,
			duration_min INTEGER NOT NULL DEFAULT 0,
			idle INTEGER NOT NULL DEFAULT 0,
			finished_at TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_appointments_date ON appointments(date);
		CREATE TABLE IF NOT EXISTS todos (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL,
			priority INTEGER NOT NULL DEFAULT 0,
			estimates TEXT NOT NULL DEFAULT '[]',
			unit_type TEXT NOT NULL DEFAULT 'standard',
			global_index_hint INTEGER,
			status TEXT NOT NULL DEFAULT 'open',
			started_at TEXT NOT NULL DEFAULT '',
			finished_at TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_todos_date ON todos(date);
	`)
	return err
}

func (s *Store) GetSettings() (models.Settings, error) {
	row := s.db.QueryRow(`SELECT timezone, work_minutes, break_minutes FROM settings WHERE id = 1`)

	var settings models.Settings
	err := row.Scan(&settings.Timezone, &settings.WorkMinutes, &settings.BreakMinutes)
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, timezone, work_minutes, break_minutes)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			timezone = excluded.timezone,
			work_minutes = excluded.work_minutes,
			break_minutes = excluded.break_minutes`,
		settings.Timezone, settings.WorkMinutes, settings.BreakMinutes)
	return err
}
