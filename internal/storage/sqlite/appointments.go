package sqlite

import (
	"database/sql"

	"github.com/quietfield/tomoplan/internal/models"
)

func (s *Store) AddAppointment(appt models.Appointment) error {
	return s.UpdateAppointment(appt)
}

func (s *Store) UpdateAppointment(appt models.Appointment) error {
	_, err := s.db.Exec(`
		INSERT INTO appointments (id, title, date, start_time, duration_min, idle, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			date = excluded.date,
			start_time = excluded.start_time,
			duration_min = excluded.duration_min,
			idle = excluded.idle,
			finished_at = excluded.finished_at`,
		appt.ID, appt.Title, appt.Date, appt.Start, appt.DurationMin, appt.Idle, appt.FinishedAt)
	return err
}

func (s *Store) GetAppointments(date string) ([]models.Appointment, error) {
	rows, err := s.db.Query(`
		SELECT id, title, date, start_time, duration_min, idle, finished_at
		FROM appointments WHERE date = ? ORDER BY start_time`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []models.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}

func (s *Store) DeleteAppointment(id string) error {
	res, err := s.db.Exec(`DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanAppointment(rows *sql.Rows) (models.Appointment, error) {
	var a models.Appointment
	var idle bool
	err := rows.Scan(&a.ID, &a.Title, &a.Date, &a.Start, &a.DurationMin, &idle, &a.FinishedAt)
	if err != nil {
		return models.Appointment{}, err
	}
	a.Idle = idle
	return a, nil
}
