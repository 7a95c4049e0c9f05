package sqlite

import (
	"database/sql"
	"encoding/json"

	"github.com/quietfield/tomoplan/internal/models"
)

func (s *Store) AddTodo(todo models.Todo) error {
	return s.UpdateTodo(todo)
}

func (s *Store) UpdateTodo(todo models.Todo) error {
	estimates, err := json.Marshal(todo.Estimates)
	if err != nil {
		return err
	}

	var hint sql.NullInt64
	if todo.GlobalIndexHint != nil {
		hint = sql.NullInt64{Int64: int64(*todo.GlobalIndexHint), Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO todos (id, title, date, priority, estimates, unit_type, global_index_hint, status, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			date = excluded.date,
			priority = excluded.priority,
			estimates = excluded.estimates,
			unit_type = excluded.unit_type,
			global_index_hint = excluded.global_index_hint,
			status = excluded.status,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at`,
		todo.ID, todo.Title, todo.Date, todo.Priority, string(estimates), string(todo.UnitType),
		hint, string(todo.Status), todo.StartedAt, todo.FinishedAt)
	return err
}

func (s *Store) GetTodo(id string) (models.Todo, error) {
	row := s.db.QueryRow(`
		SELECT id, title, date, priority, estimates, unit_type, global_index_hint, status, started_at, finished_at
		FROM todos WHERE id = ?`, id)
	return scanTodo(row)
}

func (s *Store) GetTodos(date string) ([]models.Todo, error) {
	rows, err := s.db.Query(`
		SELECT id, title, date, priority, estimates, unit_type, global_index_hint, status, started_at, finished_at
		FROM todos WHERE date = ? ORDER BY rowid`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []models.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (s *Store) DeleteTodo(id string) error {
	res, err := s.db.Exec(`DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (models.Todo, error) {
	var t models.Todo
	var estimates, unitType, status string
	var hint sql.NullInt64

	err := row.Scan(&t.ID, &t.Title, &t.Date, &t.Priority, &estimates, &unitType, &hint,
		&status, &t.StartedAt, &t.FinishedAt)
	if err != nil {
		return models.Todo{}, err
	}

	t.UnitType = models.UnitType(unitType)
	t.Status = models.TodoStatus(status)
	if hint.Valid {
		h := int(hint.Int64)
		t.GlobalIndexHint = &h
	}
	if estimates != "" {
		if err := json.Unmarshal([]byte(estimates), &t.Estimates); err != nil {
			return models.Todo{}, err
		}
	}
	return t, nil
}
