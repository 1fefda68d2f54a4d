package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
)

const (
	dbPingTimeout  = 5 * time.Second
	dbConnectWait  = 30 * time.Second
	dbRetryBackoff = 500 * time.Millisecond
	dbMaxBackoff   = 5 * time.Second
)

// openDatabase opens a Postgres handle and waits for the instance to answer
// pings, backing off between attempts until dbConnectWait elapses.
func openDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	deadline := time.Now().Add(dbConnectWait)
	backoff := dbRetryBackoff

	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
		err = db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return db, nil
		}

		if ctx.Err() != nil || time.Now().After(deadline) {
			_ = db.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}

		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("Database not ready, retrying")

		time.Sleep(backoff)
		if backoff *= 2; backoff > dbMaxBackoff {
			backoff = dbMaxBackoff
		}
	}
}
