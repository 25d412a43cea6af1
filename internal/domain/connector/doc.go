// Package connector contains the Protheus connector bounded context.
// This context manages the write-through integration with the TOTVS Protheus
// REST API (WSGETPEDX, WSCUSTOMERS, WSSALESORDERS).
//
// Key concepts:
//   - Document: caller-submitted customer/order payload (field-map document)
//   - IdempotencyRecord: cached first response for a (key, endpoint) pair
//   - ExternalMapping: link between a caller-side source ID and the
//     Protheus-assigned identifiers
//   - ProtheusGateway: port interface for the outbound Protheus REST calls
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package connector
