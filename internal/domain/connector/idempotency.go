package connector

import (
	"context"
	"time"
)

// Endpoint tags identifying the logical write operations cached by the
// idempotency store.
const (
	EndpointCreateCustomer = "POST:/customers"
	EndpointUpdateCustomer = "PUT:/customers"
	EndpointCreateOrder    = "POST:/salesorders"
)

// IdempotencyRecord caches the first successful Protheus response for a
// (key, endpoint) pair. Records are immutable once written and are never
// deleted by the connector.
type IdempotencyRecord struct {
	Key       string
	Endpoint  string
	Response  any
	CreatedAt time.Time
}

// IdempotencyStore is the persistence port for idempotency records. The pair
// (key, endpoint) is unique at the storage layer; Record relies on that
// constraint to turn a lost lookup/record race into ErrDuplicateRecord
// instead of a silent duplicate.
type IdempotencyStore interface {
	// Lookup returns the record for (key, endpoint), or ErrNotFound-class
	// (nil, nil) when no record exists. No side effects.
	Lookup(ctx context.Context, key, endpoint string) (*IdempotencyRecord, error)

	// Record persists a new record. Returns ErrDuplicateRecord when a record
	// for (key, endpoint) already exists.
	Record(ctx context.Context, key, endpoint string, response any) error
}
