// Package listener provides a Postgres LISTEN/NOTIFY consumer that keeps
// the API response cache in step with catalog edits. It holds a dedicated
// pgx connection (not from the pool) listening on the configured channel.
//
// A trigger on each catalog table is expected to call
// pg_notify('<channel>', json_build_object('table', TG_TABLE_NAME, 'op', TG_OP)::text).
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/pokestory-guide/internal/config"
)

const (
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// ChangeEvent is the JSON payload of a catalog change notification.
type ChangeEvent struct {
	Table string `json:"table"`
	Op    string `json:"op"`
}

// Flusher drops cached responses by key prefix.
type Flusher interface {
	Flush(prefix string) int
}

// Start opens a dedicated connection and listens on channel. It reconnects
// automatically on connection loss. Blocks until ctx is cancelled.
// Intended to be called with `go`.
func Start(ctx context.Context, dbURL, channel string, cache Flusher, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, channel, cache, logger)
		if ctx.Err() != nil {
			logger.Info("Catalog listener stopped (context cancelled)")
			return
		}

		logger.Error("Catalog listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL, channel string, cache Flusher, logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
		return fmt.Errorf("LISTEN %s: %w", channel, err)
	}
	logger.Info("Catalog listener connected", "channel", channel)

	// Edits made while disconnected were missed.
	Handle(cache, "", logger)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		Handle(cache, notification.Payload, logger)
	}
}

// Handle flushes the cache entries a change notification invalidates. An
// empty or unparseable payload flushes everything.
func Handle(cache Flusher, payload string, logger *slog.Logger) {
	var event ChangeEvent
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			logger.Warn("Failed to parse catalog change event",
				"payload", payload, "error", err)
		}
	}

	flushed := 0
	for _, prefix := range prefixesFor(event.Table) {
		flushed += cache.Flush(prefix)
	}
	logger.Info("Catalog change received",
		"table", event.Table, "op", event.Op, "flushed", flushed)
}

// prefixesFor maps a catalog table to the cache key prefixes derived from it.
func prefixesFor(table string) []string {
	switch table {
	case config.RegionsTable:
		return []string{"regions"}
	case config.TrainersTable:
		return []string{"trainers:"}
	case config.TrainerTeamsTable:
		return []string{"teams:", "detail:"}
	case config.PartyMembersTable:
		return []string{"party:", "detail:"}
	case config.CounterStrategiesTable:
		return []string{"counters:", "detail:"}
	default:
		return []string{""}
	}
}
