package connector

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Document is a caller-submitted Protheus payload: a flat field map keyed by
// the ERP's column names (A1_*, C5_*, C6_*). Values are whatever the caller
// sent; the connector only inspects the handful of fields it needs and passes
// the rest through untouched.
type Document map[string]any

// Field returns the named field rendered as a trimmed string. Absent fields
// and nil values render as "".
func (d Document) Field(name string) string {
	v, ok := d[name]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(stringify(v))
}

// stringify renders a scalar the way the wire format wrote it. encoding/json
// decodes every number as float64, and %v prints large values in scientific
// notation, which would mangle numeric CGCs and Protheus codes.
func stringify(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case json.Number:
		return n.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// clone returns a shallow copy of the document.
func (d Document) clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Order key candidates, in preference order.
var orderKeyFields = []string{"C5_NUMEXT", "C5_BIEPRE", "C5_CPEDX"}

// Customer key candidates, in preference order.
var customerKeyFields = []string{"A1_CPEDX", "A1_CGC"}

// DeriveOrderKey computes the idempotency key for a sales order: the first
// non-blank of C5_NUMEXT, C5_BIEPRE, C5_CPEDX. Returns
// ErrMissingIdempotencyKey when all candidates are blank.
func DeriveOrderKey(order Document) (string, error) {
	return deriveKey(order, orderKeyFields)
}

// DeriveCustomerKey computes the idempotency key for a customer: the first
// non-blank of A1_CPEDX, A1_CGC.
func DeriveCustomerKey(customer Document) (string, error) {
	return deriveKey(customer, customerKeyFields)
}

func deriveKey(doc Document, candidates []string) (string, error) {
	for _, f := range candidates {
		if v := doc.Field(f); v != "" {
			return v, nil
		}
	}
	return "", ErrMissingIdempotencyKey
}

// Fixed defaults from the Protheus integration document.
var (
	orderDefaults = map[string]string{
		"C5_BIEFPGA": "BOL",
		"C5_TIPO":    "N",
		"C5_NATUREZ": "2001",
	}
	orderItemDefaults = map[string]string{
		"C6_LOCAL": "13",
	}
)

// ApplyOrderDefaults fills the document-mandated defaults on a sales order,
// top-level and per line item, without overwriting caller-supplied values.
// The input is never mutated; callers can safely retry with the original.
func ApplyOrderDefaults(order Document) Document {
	out := order.clone()
	for field, value := range orderDefaults {
		if _, ok := out[field]; !ok {
			out[field] = value
		}
	}

	items, ok := out["ITENS"].([]any)
	if !ok {
		return out
	}
	newItems := make([]any, 0, len(items))
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			newItems = append(newItems, raw)
			continue
		}
		copied := make(map[string]any, len(item)+1)
		for k, v := range item {
			copied[k] = v
		}
		for field, value := range orderItemDefaults {
			if _, ok := copied[field]; !ok {
				copied[field] = value
			}
		}
		newItems = append(newItems, copied)
	}
	out["ITENS"] = newItems
	return out
}
