package connector

import (
	"context"
	"time"
)

// SyncMode labels what kind of pull produced a run log entry.
type SyncMode string

// Run modes.
const (
	SyncModeReset      SyncMode = "reset"
	SyncModePull       SyncMode = "pull"
	SyncModePullFilter SyncMode = "pull_filter"
	SyncModeOrders     SyncMode = "orders"
	SyncModeInvoices   SyncMode = "invoices"
	SyncModeQuery      SyncMode = "wsgetpedx"
)

// Run statuses.
const (
	SyncStatusSuccess = "success"
	SyncStatusError   = "error"
)

// SyncRun is one audit entry for a pull against Protheus, successful or not.
type SyncRun struct {
	ID        int64
	TableName string
	Mode      SyncMode
	Status    string
	Details   map[string]any
	CreatedAt time.Time
}

// RawPayload stores a Protheus response verbatim for audit/debug.
type RawPayload struct {
	ID        int64
	TableName string
	Payload   map[string]any
	CreatedAt time.Time
}

// SyncRunRepository is the persistence port for run logging.
type SyncRunRepository interface {
	Append(ctx context.Context, run *SyncRun) error
}

// RawPayloadRepository is the persistence port for raw payload audit storage.
type RawPayloadRepository interface {
	Store(ctx context.Context, raw *RawPayload) error
}
