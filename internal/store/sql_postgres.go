package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/focusflow/focusflow-server/internal/config"
	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver "pgx"
)

type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	classificator := NewPostgresErrorClassifier()

	// ping database, retrying transient failures while the server starts up
	pingErr := conn.PingContext(ctx)
	for attempt := 1; pingErr != nil && attempt <= 3 && classificator.Classify(pingErr) == Retryable; attempt++ {
		log.Warn().
			Str("func", "NewConnectPostgres").
			Int("attempt", attempt).
			Err(pingErr).
			Msg("database ping failed, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
		pingErr = conn.PingContext(ctx)
	}
	if pingErr != nil {
		log.Err(pingErr).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, pingErr
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	// construct a DB struct
	db := &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: classificator,
	}

	return db, nil
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
