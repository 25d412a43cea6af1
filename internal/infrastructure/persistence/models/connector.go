// Package models contains the GORM persistence models and their converters
// to and from domain entities. Domain entities never carry GORM tags; the
// mapping lives here.
package models

import (
	"encoding/json"
	"time"

	"github.com/protheus/connector/internal/domain/connector"
)

// IdempotencyKeyModel is the persistence model for cached write responses.
// The (key, endpoint) pair carries a unique index; inserts racing on the
// same pair fail loudly instead of silently duplicating.
type IdempotencyKeyModel struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Key          string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_idempotency_key_endpoint,priority:1"`
	Endpoint     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_idempotency_key_endpoint,priority:2"`
	ResponseJSON string    `gorm:"type:text;column:response"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (IdempotencyKeyModel) TableName() string {
	return "idempotency_keys"
}

// ToDomain converts the persistence model to a domain IdempotencyRecord.
func (m *IdempotencyKeyModel) ToDomain() *connector.IdempotencyRecord {
	record := &connector.IdempotencyRecord{
		Key:       m.Key,
		Endpoint:  m.Endpoint,
		CreatedAt: m.CreatedAt,
	}
	if m.ResponseJSON != "" {
		var response any
		if err := json.Unmarshal([]byte(m.ResponseJSON), &response); err == nil {
			record.Response = response
		}
	}
	return record
}

// FromDomain populates the persistence model from a domain IdempotencyRecord.
func (m *IdempotencyKeyModel) FromDomain(r *connector.IdempotencyRecord) error {
	m.Key = r.Key
	m.Endpoint = r.Endpoint
	m.CreatedAt = r.CreatedAt
	if r.Response != nil {
		data, err := json.Marshal(r.Response)
		if err != nil {
			return err
		}
		m.ResponseJSON = string(data)
	}
	return nil
}

// ExternalMappingModel is the persistence model for external identity
// mappings. The (entity_type, source_id) pair is unique.
type ExternalMappingModel struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	EntityType    string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_mapping_entity_source,priority:1"`
	SourceID      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_mapping_entity_source,priority:2"`
	ProtheusCode  string    `gorm:"type:varchar(50)"`
	ProtheusStore string    `gorm:"type:varchar(10)"`
	ExtraJSON     string    `gorm:"type:text;column:extra"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ExternalMappingModel) TableName() string {
	return "external_mappings"
}

// ToDomain converts the persistence model to a domain ExternalMapping.
func (m *ExternalMappingModel) ToDomain() *connector.ExternalMapping {
	mapping := &connector.ExternalMapping{
		EntityType:    connector.EntityType(m.EntityType),
		SourceID:      m.SourceID,
		ProtheusCode:  m.ProtheusCode,
		ProtheusStore: m.ProtheusStore,
		Extra:         make(map[string]any),
		CreatedAt:     m.CreatedAt,
	}
	if m.ExtraJSON != "" {
		var extra map[string]any
		if err := json.Unmarshal([]byte(m.ExtraJSON), &extra); err == nil {
			mapping.Extra = extra
		}
	}
	return mapping
}

// FromDomain populates the persistence model from a domain ExternalMapping.
func (m *ExternalMappingModel) FromDomain(em *connector.ExternalMapping) error {
	m.EntityType = string(em.EntityType)
	m.SourceID = em.SourceID
	m.ProtheusCode = em.ProtheusCode
	m.ProtheusStore = em.ProtheusStore
	m.CreatedAt = em.CreatedAt
	if len(em.Extra) > 0 {
		data, err := json.Marshal(em.Extra)
		if err != nil {
			return err
		}
		m.ExtraJSON = string(data)
	} else {
		m.ExtraJSON = "{}"
	}
	return nil
}

// SyncRunModel is the persistence model for pull audit runs.
type SyncRunModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Table       string    `gorm:"type:varchar(10);not null;index;column:table_name"`
	Mode        string    `gorm:"type:varchar(20);not null"`
	Status      string    `gorm:"type:varchar(10);not null"`
	DetailsJSON string    `gorm:"type:text;column:details"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (SyncRunModel) TableName() string {
	return "sync_runs"
}

// ToDomain converts the persistence model to a domain SyncRun.
func (m *SyncRunModel) ToDomain() *connector.SyncRun {
	run := &connector.SyncRun{
		ID:        m.ID,
		TableName: m.Table,
		Mode:      connector.SyncMode(m.Mode),
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
	if m.DetailsJSON != "" {
		var details map[string]any
		if err := json.Unmarshal([]byte(m.DetailsJSON), &details); err == nil {
			run.Details = details
		}
	}
	return run
}

// FromDomain populates the persistence model from a domain SyncRun.
func (m *SyncRunModel) FromDomain(run *connector.SyncRun) error {
	m.ID = run.ID
	m.Table = run.TableName
	m.Mode = string(run.Mode)
	m.Status = run.Status
	m.CreatedAt = run.CreatedAt
	if len(run.Details) > 0 {
		data, err := json.Marshal(run.Details)
		if err != nil {
			return err
		}
		m.DetailsJSON = string(data)
	}
	return nil
}

// RawPayloadModel is the persistence model for verbatim Protheus responses.
type RawPayloadModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Table       string    `gorm:"type:varchar(10);not null;index;column:table_name"`
	PayloadJSON string    `gorm:"type:text;column:payload"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (RawPayloadModel) TableName() string {
	return "raw_payloads"
}

// ToDomain converts the persistence model to a domain RawPayload.
func (m *RawPayloadModel) ToDomain() *connector.RawPayload {
	raw := &connector.RawPayload{
		ID:        m.ID,
		TableName: m.Table,
		CreatedAt: m.CreatedAt,
	}
	if m.PayloadJSON != "" {
		var payload map[string]any
		if err := json.Unmarshal([]byte(m.PayloadJSON), &payload); err == nil {
			raw.Payload = payload
		}
	}
	return raw
}

// FromDomain populates the persistence model from a domain RawPayload.
func (m *RawPayloadModel) FromDomain(raw *connector.RawPayload) error {
	m.ID = raw.ID
	m.Table = raw.TableName
	m.CreatedAt = raw.CreatedAt
	if len(raw.Payload) > 0 {
		data, err := json.Marshal(raw.Payload)
		if err != nil {
			return err
		}
		m.PayloadJSON = string(data)
	}
	return nil
}
