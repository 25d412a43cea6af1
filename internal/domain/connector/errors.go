package connector

import (
	"errors"
	"fmt"
)

// Sentinel errors for the connector context.
var (
	// ErrEmptyBody indicates the incoming payload carried no entities.
	ErrEmptyBody = errors.New("connector: payload contains no entities")

	// ErrMissingIdempotencyKey indicates none of the key-candidate fields
	// was present and non-blank.
	ErrMissingIdempotencyKey = errors.New("connector: no idempotency key material in payload")

	// ErrDuplicateRecord indicates a second Record call for the same
	// (key, endpoint) pair. Concurrent writers lose the insert race here
	// instead of silently overwriting the cached response.
	ErrDuplicateRecord = errors.New("connector: idempotency record already exists")

	// ErrMappingNotFound indicates no external mapping exists for the
	// requested (entity type, source ID) pair.
	ErrMappingNotFound = errors.New("connector: external mapping not found")

	// ErrInvalidTable indicates a WSGETPEDX table name outside the document's
	// allowed set.
	ErrInvalidTable = errors.New("connector: invalid Protheus table")

	// ErrInvalidPeriod indicates a malformed or half-open date period.
	ErrInvalidPeriod = errors.New("connector: invalid period, dates must be yyyymmdd and come in pairs")

	// ErrEmptyFilter indicates a field/value filter with a blank half.
	ErrEmptyFilter = errors.New("connector: filter field and value must be non-blank")
)

// UpstreamError reports a failed call to the Protheus REST API. Status is
// zero for transport-level failures that produced no HTTP response.
type UpstreamError struct {
	Operation string
	Status    int
	Err       error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("protheus %s: HTTP %d", e.Operation, e.Status)
	}
	return fmt.Sprintf("protheus %s: %v", e.Operation, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err belongs to the caller-input failure class.
// These errors must never reach the ERP or touch the store.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyBody) ||
		errors.Is(err, ErrMissingIdempotencyKey) ||
		errors.Is(err, ErrInvalidTable) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrEmptyFilter)
}
