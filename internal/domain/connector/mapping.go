package connector

import (
	"context"
	"time"
)

// EntityType identifies which kind of entity an external mapping links.
type EntityType string

// Supported entity types.
const (
	EntityCustomer EntityType = "customer"
	EntityOrder    EntityType = "order"
)

// IsValid reports whether the entity type is one of the supported values.
func (t EntityType) IsValid() bool {
	return t == EntityCustomer || t == EntityOrder
}

// ExternalMapping links a caller-side source identifier to the identifiers
// Protheus assigned on write.
//
//   - customer: source_id (A1_CPEDX or A1_CGC) -> (A1_COD, A1_LOJA)
//   - order:    source_id (C5_CPEDX)           -> (C5_NUM)
//
// The pair (EntityType, SourceID) is unique.
type ExternalMapping struct {
	EntityType EntityType
	SourceID   string
	// ProtheusCode is the ERP-assigned primary code (A1_COD / C5_NUM).
	ProtheusCode string
	// ProtheusStore is the ERP-assigned sub-location code (A1_LOJA),
	// customer mappings only.
	ProtheusStore string
	// Extra holds free-form metadata merged across writes.
	Extra     map[string]any
	CreatedAt time.Time
}

// NewExternalMapping creates a mapping for the first successful write of a
// (entityType, sourceID) pair.
func NewExternalMapping(entityType EntityType, sourceID string) *ExternalMapping {
	return &ExternalMapping{
		EntityType: entityType,
		SourceID:   sourceID,
		Extra:      make(map[string]any),
		CreatedAt:  time.Now(),
	}
}

// ApplyCodes overwrites the Protheus identifiers with non-blank values only.
// A later blank never erases a previously stored code.
func (m *ExternalMapping) ApplyCodes(code, store string) {
	if code != "" {
		m.ProtheusCode = code
	}
	if store != "" {
		m.ProtheusStore = store
	}
}

// MergeExtra merges metadata key-by-key, new values winning on overlap.
func (m *ExternalMapping) MergeExtra(extra map[string]any) {
	if m.Extra == nil {
		m.Extra = make(map[string]any, len(extra))
	}
	for k, v := range extra {
		m.Extra[k] = v
	}
}

// SetCGC records the tax ID from the latest customer write. Unlike the rest
// of Extra, CGC is always overwritten, even with a blank value.
func (m *ExternalMapping) SetCGC(cgc string) {
	if m.Extra == nil {
		m.Extra = make(map[string]any, 1)
	}
	m.Extra["CGC"] = cgc
}

// MappingRepository is the persistence port for external mappings.
type MappingRepository interface {
	// FindBySource returns the mapping for (entityType, sourceID), or
	// ErrMappingNotFound.
	FindBySource(ctx context.Context, entityType EntityType, sourceID string) (*ExternalMapping, error)

	// Save creates the mapping or updates the existing row for its
	// (entityType, sourceID) pair.
	Save(ctx context.Context, mapping *ExternalMapping) error
}
