package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopfloor/internal/storage"
)

func (s *Storage) ListPriorities(ctx context.Context) ([]storage.PriorityItem, error) {
	const op = "storage.mysql.ListPriorities"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, unit_label, station, location
		FROM shop_priorities
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []storage.PriorityItem
	for rows.Next() {
		var item storage.PriorityItem
		if err := rows.Scan(&item.ID, &item.Type, &item.UnitLabel, &item.Station, &item.Location); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// AddPriority appends an item at the end of its type's list. A label can
// only be declared once.
func (s *Storage) AddPriority(ctx context.Context, item storage.PriorityItem) (int64, error) {
	const op = "storage.mysql.AddPriority"

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO shop_priorities (type, unit_label, station, location)
		VALUES (?, ?, ?, ?)
	`, item.Type, item.UnitLabel, item.Station, item.Location)
	if err != nil {
		if isDuplicate(err) {
			return 0, fmt.Errorf("%s: %s: %w", op, item.UnitLabel, storage.ErrDuplicate)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return id, nil
}

func (s *Storage) RemovePriority(ctx context.Context, label string) error {
	const op = "storage.mysql.RemovePriority"

	res, err := s.db.ExecContext(ctx, `DELETE FROM shop_priorities WHERE unit_label = ?`, label)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return expectAffected(op, res)
}

func (s *Storage) ResetPriorities(ctx context.Context) error {
	const op = "storage.mysql.ResetPriorities"

	if _, err := s.db.ExecContext(ctx, `DELETE FROM shop_priorities`); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetObjective(ctx context.Context) (int, error) {
	const op = "storage.mysql.GetObjective"

	var value int
	err := s.db.QueryRowContext(ctx, `SELECT value FROM shop_objective WHERE id = 1`).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return value, nil
}

func (s *Storage) SetObjective(ctx context.Context, value int) error {
	const op = "storage.mysql.SetObjective"

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shop_objective (id, value) VALUES (1, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value)
	`, value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func expectAffected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}
