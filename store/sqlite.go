package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3" // sqlite3 database/sql driver

	"github.com/askarin/go-model-validation/config"
	"github.com/askarin/go-model-validation/logger"
)

// NewConnectSQLite opens a SQLite database, verifies it with a ping and
// enables foreign key enforcement. Useful for embedded deployments and
// integration tests that cannot reach a PostgreSQL server.
func NewConnectSQLite(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}

	if _, err = conn.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error enabling foreign keys")
		return nil, fmt.Errorf("error enabling foreign keys: %w", err)
	}
	log.Info().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return &DB{
		DB:          conn,
		classifier:  &sqliteErrorClassifier{},
		placeholder: squirrel.Question,
		logger:      log,
	}, nil
}

// sqliteErrorClassifier maps sqlite3 error strings onto package sentinels.
// The mattn driver exposes schema errors as plain text, so matching is by
// message prefix rather than code.
type sqliteErrorClassifier struct{}

func (c *sqliteErrorClassifier) Classify(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such column"):
		return fmt.Errorf("%w: %s", ErrNoCacheColumn, msg)
	case strings.Contains(msg, "no such table"):
		return fmt.Errorf("%w: %s", ErrNoTable, msg)
	default:
		return err
	}
}
