package postgres

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
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			date = EXCLUDED.date,
			start_time = EXCLUDED.start_time,
			duration_min = EXCLUDED.duration_min,
			idle = EXCLUDED.idle,
			finished_at = EXCLUDED.finished_at`,
		appt.ID, appt.Title, appt.Date, appt.Start, appt.DurationMin, appt.Idle, appt.FinishedAt)
	return err
}

func (s *Store) GetAppointments(date string) ([]models.Appointment, error) {
	rows, err := s.db.Query(`
		SELECT id, title, date, start_time, duration_min, idle, finished_at
		FROM appointments WHERE date = $1 ORDER BY start_time`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []models.Appointment
	for rows.Next() {
		var a models.Appointment
		if err := rows.Scan(&a.ID, &a.Title, &a.Date, &a.Start, &a.DurationMin, &a.Idle, &a.FinishedAt); err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}

func (s *Store) DeleteAppointment(id string) error {
	res, err := s.db.Exec(`DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
