package connector

import (
	"context"
	"strings"
)

// Tables the WSGETPEDX endpoint accepts, per the integration document
// (SA2 appears in the supplier reset flow).
var allowedTables = map[string]struct{}{
	"SA1": {}, "SA2": {}, "SA3": {}, "SA4": {},
	"SB1": {}, "DA1": {}, "SE4": {}, "SC5": {}, "SF2": {},
}

// NormalizeTable upper-cases and validates a Protheus table name.
func NormalizeTable(table string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(table))
	if _, ok := allowedTables[t]; !ok {
		return "", ErrInvalidTable
	}
	return t, nil
}

// AllowedTables returns the accepted WSGETPEDX table names in document order.
func AllowedTables() []string {
	return []string{"SA1", "SA2", "SA3", "SA4", "SB1", "DA1", "SE4", "SC5", "SF2"}
}

// ValidateDate checks the yyyymmdd format the WSGETPEDX period filter expects.
func ValidateDate(s string) error {
	if len(s) != 8 {
		return ErrInvalidPeriod
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return ErrInvalidPeriod
		}
	}
	return nil
}

// TableQuery describes one WSGETPEDX read. Zero-value fields are omitted from
// the outbound request.
type TableQuery struct {
	Table string
	Reset bool
	// Field/Value form the optional cCampo/cValor filter; both or neither.
	Field string
	Value string
	// DateFrom/DateTo form the optional cDtDe/cDtAte period; both or neither,
	// yyyymmdd.
	DateFrom string
	DateTo   string
}

// Validate normalizes the table name and checks filter/period consistency.
func (q *TableQuery) Validate() error {
	t, err := NormalizeTable(q.Table)
	if err != nil {
		return err
	}
	q.Table = t

	if (q.DateFrom == "") != (q.DateTo == "") {
		return ErrInvalidPeriod
	}
	if q.DateFrom != "" {
		if err := ValidateDate(q.DateFrom); err != nil {
			return err
		}
		if err := ValidateDate(q.DateTo); err != nil {
			return err
		}
	}
	return nil
}

// ProtheusGateway is the port for the three outbound Protheus REST
// operations. Implementations perform exactly one HTTP call per invocation
// and never retry; failures surface as *UpstreamError.
type ProtheusGateway interface {
	// FetchTable performs GET /rest/WSGETPEDX.
	FetchTable(ctx context.Context, query TableQuery) (any, error)

	// PostCustomers performs POST /rest/WSCUSTOMERS, with cAltera=S when
	// altera is set.
	PostCustomers(ctx context.Context, payload any, altera bool) (any, error)

	// PostSalesOrders performs POST /rest/WSSALESORDERS.
	PostSalesOrders(ctx context.Context, payload any) (any, error)
}

// ExtractReturnFields unwraps the identifier block Protheus returns on
// writes. The documented shape is data[0]["aRetUsr"][0], a flat field map,
// but responses vary; any shape mismatch at any level yields (nil, false)
// rather than an error, and callers skip the mapping upsert.
func ExtractReturnFields(data any) (Document, bool) {
	list, ok := data.([]any)
	if !ok || len(list) == 0 {
		return nil, false
	}
	first, ok := list[0].(map[string]any)
	if !ok {
		return nil, false
	}
	ret, ok := first["aRetUsr"].([]any)
	if !ok || len(ret) == 0 {
		return nil, false
	}
	fields, ok := ret[0].(map[string]any)
	if !ok || fields == nil {
		return nil, false
	}
	return Document(fields), true
}
