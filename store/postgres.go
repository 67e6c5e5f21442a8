// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Skarin

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver

	"github.com/askarin/go-model-validation/config"
	"github.com/askarin/go-model-validation/logger"
)

// DB wraps a live database handle together with the dialect-specific pieces
// table gateways need: a placeholder format for query building and an error
// classifier for sentinel mapping.
type DB struct {
	*sql.DB
	classifier  ErrorClassificator
	placeholder squirrel.PlaceholderFormat
	logger      *logger.Logger
}

// NewConnectPostgres opens a PostgreSQL connection through the pgx
// database/sql driver, applies the pool limits from cfg and verifies the
// connection with a ping.
func NewConnectPostgres(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return &DB{
		DB:          conn,
		classifier:  NewPostgresErrorClassifier(),
		placeholder: squirrel.Dollar,
		logger:      log,
	}, nil
}
