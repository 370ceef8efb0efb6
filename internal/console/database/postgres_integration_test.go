//go:build integration

package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"d3console/internal/console/streaming"
)

func openPostgres(t *testing.T) (*SQLJournal, string) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("journal"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminating postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	j, err := Open(ctx, "postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j, dsn
}

func TestPostgresJournal(t *testing.T) {
	ctx := context.Background()
	j, dsn := openPostgres(t)

	line := "*\x01\xff\x80\x80Bob says: h\xe9"
	require.NoError(t, j.Record(ctx, streaming.Event{Kind: streaming.EventConnected}))
	require.NoError(t, j.Record(ctx, streaming.Event{
		Kind: streaming.EventSay,
		Line: line,
		Data: streaming.SayData{Player: "\x01\xff\x80\x80Bob", Text: "h\xe9"},
	}))

	records, err := j.Recent(ctx, Query{Kind: streaming.EventSay})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, line, records[0].Line)
	assert.Equal(t, j.SessionID(), records[0].SessionID)

	// a second Open against the same schema finds nothing to migrate
	again, err := Open(ctx, "postgres", dsn)
	require.NoError(t, err)
	require.NoError(t, again.Close())
}
