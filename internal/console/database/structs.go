package database

import (
	"encoding/json"
	"time"

	"d3console/internal/console/streaming"
)

// Record is one journaled event as stored.
type Record struct {
	ID         int64
	SessionID  string
	Kind       streaming.Kind
	Line       string
	Data       json.RawMessage // nil for events without a payload
	RecordedAt time.Time
}

// Query filters Recent. Zero fields do not filter.
type Query struct {
	Kind      streaming.Kind
	SessionID string
	Since     time.Time
	Limit     int // defaults to DefaultLimit
}

// DefaultLimit is the number of records Recent returns when Query.Limit is zero.
const DefaultLimit = 50
