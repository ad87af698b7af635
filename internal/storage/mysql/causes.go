package mysql

import (
	"context"
	"fmt"

	"shopfloor/internal/storage"
)

func (s *Storage) ListCauses(ctx context.Context) ([]storage.Cause, error) {
	const op = "storage.mysql.ListCauses"

	rows, err := s.db.QueryContext(ctx, `SELECT id, zone, name FROM shop_causes ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var causes []storage.Cause
	for rows.Next() {
		var c storage.Cause
		if err := rows.Scan(&c.ID, &c.Zone, &c.Name); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		causes = append(causes, c)
	}

	return causes, rows.Err()
}

func (s *Storage) AddCause(ctx context.Context, c storage.Cause) (int64, error) {
	const op = "storage.mysql.AddCause"

	res, err := s.db.ExecContext(ctx, `INSERT INTO shop_causes (zone, name) VALUES (?, ?)`, c.Zone, c.Name)
	if err != nil {
		if isDuplicate(err) {
			return 0, fmt.Errorf("%s: %s: %w", op, c.Name, storage.ErrDuplicate)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return id, nil
}

func (s *Storage) RemoveCause(ctx context.Context, id int64) error {
	const op = "storage.mysql.RemoveCause"

	res, err := s.db.ExecContext(ctx, `DELETE FROM shop_causes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return expectAffected(op, res)
}

// SeedCauses fills the cause table with defaults when it is empty.
func (s *Storage) SeedCauses(ctx context.Context, causes []storage.Cause) error {
	const op = "storage.mysql.SeedCauses"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM shop_causes FOR UPDATE`).Scan(&n); err != nil {
		return fmt.Errorf("%s: count: %w", op, err)
	}
	if n > 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO shop_causes (zone, name) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer stmt.Close()

	for _, c := range causes {
		if _, err := stmt.ExecContext(ctx, c.Zone, c.Name); err != nil {
			return fmt.Errorf("%s: insert %s: %w", op, c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}
