package postgres

import (
	"fmt"

	"github.com/quietfield/tomoplan/internal/models"
)

func (s *Store) GetBlocks() ([]models.DayBlock, error) {
	rows, err := s.db.Query(`
		SELECT id, category, start_time, end_time, position
		FROM blocks ORDER BY position, start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []models.DayBlock
	for rows.Next() {
		var b models.DayBlock
		var category string
		if err := rows.Scan(&b.ID, &category, &b.Start, &b.End, &b.Position); err != nil {
			return nil, err
		}
		b.Category = models.BlockCategory(category)
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// SaveBlocks replaces the whole day template in a single transaction.
func (s *Store) SaveBlocks(blocks []models.DayBlock) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM blocks`); err != nil {
		return err
	}
	for _, b := range blocks {
		_, err := tx.Exec(`
			INSERT INTO blocks (id, category, start_time, end_time, position)
			VALUES ($1, $2, $3, $4, $5)`,
			b.ID, string(b.Category), b.Start, b.End, b.Position)
		if err != nil {
			return fmt.Errorf("failed to insert block %s: %w", b.ID, err)
		}
	}
	return tx.Commit()
}

func (s *Store) ClearBlocks() error {
	_, err := s.db.Exec(`DELETE FROM blocks`)
	return err
}
