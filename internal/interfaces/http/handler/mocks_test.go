package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/protheus/connector/internal/domain/connector"
)

// MockIdempotencyStore implements connector.IdempotencyStore for testing
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) Lookup(ctx context.Context, key, endpoint string) (*connector.IdempotencyRecord, error) {
	args := m.Called(ctx, key, endpoint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*connector.IdempotencyRecord), args.Error(1)
}

func (m *MockIdempotencyStore) Record(ctx context.Context, key, endpoint string, response any) error {
	args := m.Called(ctx, key, endpoint, response)
	return args.Error(0)
}

// MockMappingRepository implements connector.MappingRepository for testing
type MockMappingRepository struct {
	mock.Mock
}

func (m *MockMappingRepository) FindBySource(ctx context.Context, entityType connector.EntityType, sourceID string) (*connector.ExternalMapping, error) {
	args := m.Called(ctx, entityType, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*connector.ExternalMapping), args.Error(1)
}

func (m *MockMappingRepository) Save(ctx context.Context, mapping *connector.ExternalMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

// MockProtheusGateway implements connector.ProtheusGateway for testing
type MockProtheusGateway struct {
	mock.Mock
}

func (m *MockProtheusGateway) FetchTable(ctx context.Context, query connector.TableQuery) (any, error) {
	args := m.Called(ctx, query)
	return args.Get(0), args.Error(1)
}

func (m *MockProtheusGateway) PostCustomers(ctx context.Context, payload any, altera bool) (any, error) {
	args := m.Called(ctx, payload, altera)
	return args.Get(0), args.Error(1)
}

func (m *MockProtheusGateway) PostSalesOrders(ctx context.Context, payload any) (any, error) {
	args := m.Called(ctx, payload)
	return args.Get(0), args.Error(1)
}

// MockSyncRunRepository implements connector.SyncRunRepository for testing
type MockSyncRunRepository struct {
	mock.Mock
}

func (m *MockSyncRunRepository) Append(ctx context.Context, run *connector.SyncRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

// MockRawPayloadRepository implements connector.RawPayloadRepository for testing
type MockRawPayloadRepository struct {
	mock.Mock
}

func (m *MockRawPayloadRepository) Store(ctx context.Context, raw *connector.RawPayload) error {
	args := m.Called(ctx, raw)
	return args.Error(0)
}
