package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"shopfloor/internal/config"
)

const errDuplicateEntry = 1062

type Storage struct {
	db  *sql.DB
	log *slog.Logger
}

func New(cfg config.Config, log *slog.Logger) (*Storage, error) {
	const op = "storage.mysql.New"

	dsn := mysql.NewConfig()
	dsn.User = cfg.DBUser
	dsn.Passwd = cfg.DBPassword
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.DBHost, strconv.Itoa(cfg.DBPort))
	dsn.DBName = cfg.DBName

	db, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db, log: log}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS shop_events (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		event_uid CHAR(36) NOT NULL,
		log_date VARCHAR(10) NOT NULL,
		log_time VARCHAR(8) NOT NULL,
		station_id VARCHAR(64) NOT NULL,
		unit_serial VARCHAR(128) NOT NULL DEFAULT '',
		unit_display VARCHAR(128) NOT NULL DEFAULT '',
		stage VARCHAR(32) NOT NULL,
		note TEXT,
		UNIQUE KEY uq_shop_events_uid (event_uid)
	)`,
	`CREATE TABLE IF NOT EXISTS shop_priorities (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		type VARCHAR(16) NOT NULL,
		unit_label VARCHAR(128) NOT NULL,
		station VARCHAR(64) NOT NULL,
		location VARCHAR(255) NOT NULL DEFAULT '',
		UNIQUE KEY uq_shop_priorities_label (unit_label)
	)`,
	`CREATE TABLE IF NOT EXISTS shop_causes (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		zone VARCHAR(16) NOT NULL,
		name VARCHAR(255) NOT NULL,
		UNIQUE KEY uq_shop_causes_zone_name (zone, name)
	)`,
	`CREATE TABLE IF NOT EXISTS shop_objective (
		id TINYINT PRIMARY KEY,
		value INT NOT NULL
	)`,
}

func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.mysql.Migrate"

	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

func isDuplicate(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == errDuplicateEntry
}
