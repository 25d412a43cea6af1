package connector

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/protheus/connector/internal/domain/connector"
)

// CustomerService runs the write-through sequence for WSCUSTOMERS:
// derive key, check the idempotency store, call Protheus on a miss, upsert
// the external mapping, record the response.
type CustomerService struct {
	idem     connector.IdempotencyStore
	mappings connector.MappingRepository
	gateway  connector.ProtheusGateway
	log      *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	idem connector.IdempotencyStore,
	mappings connector.MappingRepository,
	gateway connector.ProtheusGateway,
	log *zap.Logger,
) *CustomerService {
	return &CustomerService{
		idem:     idem,
		mappings: mappings,
		gateway:  gateway,
		log:      log.Named("customer-service"),
	}
}

// Write creates (altera=false) or updates (altera=true) a customer in
// Protheus. Validation failures never reach the ERP; a cached (key, endpoint)
// pair short-circuits with zero external calls.
func (s *CustomerService) Write(ctx context.Context, body CustomerBody, altera bool) (*WriteResult, error) {
	customer, err := body.First()
	if err != nil {
		return nil, err
	}

	key, err := connector.DeriveCustomerKey(customer)
	if err != nil {
		return nil, err
	}

	endpoint := connector.EndpointCreateCustomer
	if altera {
		endpoint = connector.EndpointUpdateCustomer
	}

	cached, err := s.idem.Lookup(ctx, key, endpoint)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		s.log.Info("idempotent replay",
			zap.String("endpoint", endpoint),
			zap.String("key", key),
		)
		return &WriteResult{Idempotent: true, Body: cached.Response}, nil
	}

	data, err := s.gateway.PostCustomers(ctx, body, altera)
	if err != nil {
		return nil, err
	}

	if fields, ok := connector.ExtractReturnFields(data); ok {
		if err := s.upsertMapping(ctx, customer, fields); err != nil {
			return nil, err
		}
	} else {
		s.log.Debug("no aRetUsr block in response, skipping mapping upsert",
			zap.String("key", key),
		)
	}

	if err := s.idem.Record(ctx, key, endpoint, data); err != nil {
		return nil, err
	}

	return &WriteResult{Body: data}, nil
}

// upsertMapping links the caller-side customer ID to the Protheus code and
// store returned by the write. Codes only move forward (blank never erases),
// extra metadata merges with the newest write winning, and CGC always tracks
// the latest write.
func (s *CustomerService) upsertMapping(ctx context.Context, customer, fields connector.Document) error {
	cgc := fields.Field("CGC")

	sourceID := customer.Field("A1_CPEDX")
	if sourceID == "" {
		sourceID = cgc
	}
	if sourceID == "" {
		return nil
	}

	mapping, err := s.mappings.FindBySource(ctx, connector.EntityCustomer, sourceID)
	if errors.Is(err, connector.ErrMappingNotFound) {
		mapping = connector.NewExternalMapping(connector.EntityCustomer, sourceID)
	} else if err != nil {
		return err
	}

	mapping.ApplyCodes(fields.Field("A1_COD"), fields.Field("A1_LOJA"))
	mapping.MergeExtra(map[string]any{"Mensagem": fields.Field("Mensagem")})
	mapping.SetCGC(cgc)

	if err := s.mappings.Save(ctx, mapping); err != nil {
		return err
	}

	s.log.Info("customer mapping upserted",
		zap.String("source_id", sourceID),
		zap.String("protheus_code", mapping.ProtheusCode),
		zap.String("protheus_store", mapping.ProtheusStore),
	)
	return nil
}
