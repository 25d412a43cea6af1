package connector

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/protheus/connector/internal/domain/connector"
)

// OrderService runs the write-through sequence for WSSALESORDERS, applying
// the document's order defaults before the outbound call.
type OrderService struct {
	idem     connector.IdempotencyStore
	mappings connector.MappingRepository
	gateway  connector.ProtheusGateway
	log      *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	idem connector.IdempotencyStore,
	mappings connector.MappingRepository,
	gateway connector.ProtheusGateway,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		idem:     idem,
		mappings: mappings,
		gateway:  gateway,
		log:      log.Named("order-service"),
	}
}

// Create submits a sales order to Protheus. The defaulted order, not the
// caller's original, is what gets sent; the idempotency key is derived from
// C5_NUMEXT, C5_BIEPRE or C5_CPEDX, first non-blank wins.
func (s *OrderService) Create(ctx context.Context, body SalesOrderBody) (*WriteResult, error) {
	orderIn, err := body.First()
	if err != nil {
		return nil, err
	}

	order := connector.ApplyOrderDefaults(orderIn)

	key, err := connector.DeriveOrderKey(order)
	if err != nil {
		return nil, err
	}

	cached, err := s.idem.Lookup(ctx, key, connector.EndpointCreateOrder)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		s.log.Info("idempotent replay",
			zap.String("endpoint", connector.EndpointCreateOrder),
			zap.String("key", key),
		)
		return &WriteResult{Idempotent: true, Body: cached.Response}, nil
	}

	payload := SalesOrderBody{Pedidos: []connector.Document{order}}
	data, err := s.gateway.PostSalesOrders(ctx, payload)
	if err != nil {
		return nil, err
	}

	if fields, ok := connector.ExtractReturnFields(data); ok {
		if err := s.upsertMapping(ctx, fields); err != nil {
			return nil, err
		}
	} else {
		s.log.Debug("no aRetUsr block in response, skipping mapping upsert",
			zap.String("key", key),
		)
	}

	if err := s.idem.Record(ctx, key, connector.EndpointCreateOrder, data); err != nil {
		return nil, err
	}

	return &WriteResult{Body: data}, nil
}

// upsertMapping links C5_CPEDX to the Protheus order number. Orders without a
// usable C5_CPEDX in the return block get no mapping.
func (s *OrderService) upsertMapping(ctx context.Context, fields connector.Document) error {
	sourceID := fields.Field("C5_CPEDX")
	if sourceID == "" {
		return nil
	}

	mapping, err := s.mappings.FindBySource(ctx, connector.EntityOrder, sourceID)
	if errors.Is(err, connector.ErrMappingNotFound) {
		mapping = connector.NewExternalMapping(connector.EntityOrder, sourceID)
	} else if err != nil {
		return err
	}

	mapping.ApplyCodes(fields.Field("C5_NUM"), "")
	mapping.MergeExtra(map[string]any{"Mensagem": fields.Field("Mensagem")})

	if err := s.mappings.Save(ctx, mapping); err != nil {
		return err
	}

	s.log.Info("order mapping upserted",
		zap.String("source_id", sourceID),
		zap.String("protheus_code", mapping.ProtheusCode),
	)
	return nil
}
