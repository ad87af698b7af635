package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"shopfloor/internal/storage"
)

// AppendEvent inserts one row. The insert is atomic, so concurrent stations
// never overwrite each other's events, and a retried event with the same
// UID is kept once.
func (s *Storage) AppendEvent(ctx context.Context, ev storage.Event) error {
	const op = "storage.mysql.AppendEvent"

	row := ev.Row()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shop_events
		(event_uid, log_date, log_time, station_id, unit_serial, unit_display, stage, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE id = id
	`, ev.UID, row[0], row[1], row[2], row[3], row[4], row[5], row[6])
	if err != nil {
		return fmt.Errorf("%s: insert event for station %s: %w", op, ev.StationID, err)
	}

	return nil
}

// ListEvents returns every row in insertion order. Rows that no longer
// parse (bad date, unknown stage) are skipped and logged.
func (s *Storage) ListEvents(ctx context.Context) ([]storage.Event, error) {
	const op = "storage.mysql.ListEvents"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event_uid, log_date, log_time, station_id, unit_serial, unit_display, stage, note
		FROM shop_events
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var events []storage.Event
	for rows.Next() {
		var (
			id   int64
			uid  string
			f    [6]string
			note sql.NullString
		)

		if err := rows.Scan(&id, &uid, &f[0], &f[1], &f[2], &f[3], &f[4], &f[5], &note); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		ev, err := storage.ParseRow(append(f[:], note.String))
		if err != nil {
			s.log.Warn("skipping malformed event row", slog.String("op", op), slog.Int64("id", id), slog.String("error", err.Error()))
			continue
		}
		ev.Seq = id
		ev.UID = uid

		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

func (s *Storage) ResetEvents(ctx context.Context) error {
	const op = "storage.mysql.ResetEvents"

	if _, err := s.db.ExecContext(ctx, `DELETE FROM shop_events`); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
