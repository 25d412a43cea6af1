package connector

import (
	"github.com/protheus/connector/internal/domain/connector"
)

// CustomerBody is the wire payload for WSCUSTOMERS writes. The list shape is
// the document's; only the first customer drives key derivation and mapping,
// and the whole body is forwarded to Protheus verbatim.
type CustomerBody struct {
	Clientes []connector.Document `json:"CLIENTES"`
}

// First returns the customer that drives the write, or ErrEmptyBody.
func (b CustomerBody) First() (connector.Document, error) {
	if len(b.Clientes) == 0 {
		return nil, connector.ErrEmptyBody
	}
	return b.Clientes[0], nil
}

// SalesOrderBody is the wire payload for WSSALESORDERS writes.
type SalesOrderBody struct {
	Pedidos []connector.Document `json:"PEDIDOS"`
}

// First returns the order that drives the write, or ErrEmptyBody.
func (b SalesOrderBody) First() (connector.Document, error) {
	if len(b.Pedidos) == 0 {
		return nil, connector.ErrEmptyBody
	}
	return b.Pedidos[0], nil
}

// WriteResult is the outcome of a write-through request.
type WriteResult struct {
	// Idempotent marks a cache hit: Body is the previously recorded response
	// and no external call was made.
	Idempotent bool
	// Body is the raw Protheus response, unmodified.
	Body any
}
