package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"d3console/internal/console/streaming"
	"d3console/internal/log"
)

// Journal stores classified events verbatim. It keeps no game state.
type Journal interface {
	Record(ctx context.Context, ev streaming.Event) error
	Recent(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// SQLJournal is a Journal on database/sql, backed by sqlite or postgres.
type SQLJournal struct {
	db   *sql.DB
	psql squirrel.StatementBuilderType

	mu        sync.Mutex
	sessionID string
}

// Open connects to the journal database and applies migrations. driver is
// "sqlite" or "postgres".
func Open(ctx context.Context, driver, dsn string) (*SQLJournal, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unknown journal driver %q", driver)
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s journal: %w", driver, err)
	}

	var placeholders squirrel.PlaceholderFormat = squirrel.Dollar
	if driver == "sqlite" {
		// sqlite serializes writers; one connection also keeps :memory: databases alive
		db.SetMaxOpenConns(1)
		placeholders = squirrel.Question
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s journal: %w", driver, err)
	}
	if err := runMigrations(ctx, db, d); err != nil {
		db.Close()
		return nil, err
	}

	j := &SQLJournal{
		db:        db,
		psql:      squirrel.StatementBuilder.PlaceholderFormat(placeholders),
		sessionID: uuid.NewString(),
	}
	log.Info("Event journal opened", "driver", driver, "session", j.sessionID)
	return j, nil
}

// SessionID identifies the current connection in the journal. A new one is
// issued on every connected event.
func (j *SQLJournal) SessionID() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.sessionID
}

// Record stores ev. Raw lines are not recorded; the classified event for
// the same line carries it.
func (j *SQLJournal) Record(ctx context.Context, ev streaming.Event) error {
	if ev.Kind == streaming.EventRaw {
		return nil
	}

	j.mu.Lock()
	if ev.Kind == streaming.EventConnected {
		j.sessionID = uuid.NewString()
	}
	sessionID := j.sessionID
	j.mu.Unlock()

	var data any
	if ev.Data != nil {
		encoded, err := encodePayload(ev.Data)
		if err != nil {
			return fmt.Errorf("encoding %s payload: %w", ev.Kind, err)
		}
		data = string(encoded)
	}

	var line any
	if ev.Line != "" {
		line = []byte(ev.Line)
	}

	recordedAt := ev.Timestamp
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	query, args, err := j.psql.Insert("events").
		Columns("session_id", "kind", "line", "data", "recorded_at").
		Values(sessionID, string(ev.Kind), line, data, recordedAt.UnixNano()).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert: %w", err)
	}

	if _, err := j.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("recording %s event: %w", ev.Kind, err)
	}
	return nil
}

// Recent returns the newest records matching q, oldest first.
func (j *SQLJournal) Recent(ctx context.Context, q Query) ([]Record, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	builder := j.psql.Select("id", "session_id", "kind", "line", "data", "recorded_at").
		From("events").
		OrderBy("id DESC").
		Limit(uint64(limit))
	if q.Kind != "" {
		builder = builder.Where(squirrel.Eq{"kind": string(q.Kind)})
	}
	if q.SessionID != "" {
		builder = builder.Where(squirrel.Eq{"session_id": q.SessionID})
	}
	if !q.Since.IsZero() {
		builder = builder.Where(squirrel.GtOrEq{"recorded_at": q.Since.UnixNano()})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec        Record
			kind       string
			line       []byte
			data       sql.NullString
			recordedAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &kind, &line, &data, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}

		rec.Kind = streaming.Kind(kind)
		rec.Line = string(line)
		if data.Valid {
			rec.Data = json.RawMessage(data.String)
		}
		rec.RecordedAt = time.Unix(0, recordedAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading journal rows: %w", err)
	}

	slices.Reverse(records)
	return records, nil
}

// Handler returns a bus subscriber that records every event. Failures are
// logged; they never reach the reader goroutine.
func (j *SQLJournal) Handler(ctx context.Context) streaming.Handler {
	return func(ev streaming.Event) {
		if err := j.Record(ctx, ev); err != nil {
			log.Error("Failed to journal event", "kind", ev.Kind, "error", err)
		}
	}
}

// Close closes the database.
func (j *SQLJournal) Close() error {
	return j.db.Close()
}
