package connector

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/protheus/connector/internal/domain/connector"
)

// SyncService proxies the parametrized WSGETPEDX reads, storing every raw
// response for audit and appending a run log entry per pull, error runs
// included.
type SyncService struct {
	gateway connector.ProtheusGateway
	runs    connector.SyncRunRepository
	raws    connector.RawPayloadRepository
	log     *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(
	gateway connector.ProtheusGateway,
	runs connector.SyncRunRepository,
	raws connector.RawPayloadRepository,
	log *zap.Logger,
) *SyncService {
	return &SyncService{
		gateway: gateway,
		runs:    runs,
		raws:    raws,
		log:     log.Named("sync-service"),
	}
}

// Reset pulls a table with the cache-reset flag set.
func (s *SyncService) Reset(ctx context.Context, table string) (any, error) {
	t, err := connector.NormalizeTable(table)
	if err != nil {
		s.logErrorRun(ctx, table, connector.SyncModeReset, err)
		return nil, err
	}

	data, err := s.gateway.FetchTable(ctx, connector.TableQuery{Table: t, Reset: true})
	if err != nil {
		s.logErrorRun(ctx, table, connector.SyncModeReset, err)
		return nil, err
	}

	if err := s.storeRaw(ctx, t, map[string]any{"reset_response": data}); err != nil {
		return nil, err
	}
	if err := s.logRun(ctx, t, connector.SyncModeReset, map[string]any{"response": data}); err != nil {
		return nil, err
	}
	return data, nil
}

// Pull pulls a table, optionally resetting the Protheus-side cache first.
func (s *SyncService) Pull(ctx context.Context, table string, reset bool) (any, error) {
	t, err := connector.NormalizeTable(table)
	if err != nil {
		s.logErrorRun(ctx, table, connector.SyncModePull, err)
		return nil, err
	}

	data, err := s.gateway.FetchTable(ctx, connector.TableQuery{Table: t, Reset: reset})
	if err != nil {
		s.logErrorRun(ctx, table, connector.SyncModePull, err)
		return nil, err
	}

	if err := s.storeRaw(ctx, t, map[string]any{"pull_response": data}); err != nil {
		return nil, err
	}
	if err := s.logRun(ctx, t, connector.SyncModePull, map[string]any{"reset": reset}); err != nil {
		return nil, err
	}
	return data, nil
}

// PullFilter pulls a table filtered by one field/value pair.
func (s *SyncService) PullFilter(ctx context.Context, table, field, value string) (any, error) {
	t, err := connector.NormalizeTable(table)
	if err != nil {
		s.logErrorRun(ctx, table, connector.SyncModePullFilter, err)
		return nil, err
	}

	field = strings.TrimSpace(field)
	value = strings.TrimSpace(value)
	if field == "" || value == "" {
		err := connector.ErrEmptyFilter
		s.logErrorRun(ctx, table, connector.SyncModePullFilter, err)
		return nil, err
	}

	data, err := s.gateway.FetchTable(ctx, connector.TableQuery{Table: t, Field: field, Value: value})
	if err != nil {
		s.logErrorRun(ctx, table, connector.SyncModePullFilter, err)
		return nil, err
	}

	if err := s.storeRaw(ctx, t, map[string]any{
		"filter":   map[string]any{"campo": field, "valor": value},
		"response": data,
	}); err != nil {
		return nil, err
	}
	if err := s.logRun(ctx, t, connector.SyncModePullFilter, map[string]any{
		"campo": field, "valor": value,
	}); err != nil {
		return nil, err
	}
	return data, nil
}

// PullOrders pulls SC5 sales orders for a yyyymmdd period.
func (s *SyncService) PullOrders(ctx context.Context, dateFrom, dateTo string) (any, error) {
	return s.pullPeriod(ctx, "SC5", connector.SyncModeOrders, dateFrom, dateTo)
}

// PullInvoices pulls SF2 invoices for a yyyymmdd period.
func (s *SyncService) PullInvoices(ctx context.Context, dateFrom, dateTo string) (any, error) {
	return s.pullPeriod(ctx, "SF2", connector.SyncModeInvoices, dateFrom, dateTo)
}

func (s *SyncService) pullPeriod(ctx context.Context, table string, mode connector.SyncMode, dateFrom, dateTo string) (any, error) {
	query := connector.TableQuery{Table: table, DateFrom: dateFrom, DateTo: dateTo}
	if err := query.Validate(); err != nil {
		s.logErrorRun(ctx, table, mode, err)
		return nil, err
	}

	data, err := s.gateway.FetchTable(ctx, query)
	if err != nil {
		s.logErrorRun(ctx, table, mode, err)
		return nil, err
	}

	if err := s.storeRaw(ctx, table, map[string]any{
		"period":   map[string]any{"dtDe": dateFrom, "dtAte": dateTo},
		"response": data,
	}); err != nil {
		return nil, err
	}
	if err := s.logRun(ctx, table, mode, map[string]any{
		"dtDe": dateFrom, "dtAte": dateTo,
	}); err != nil {
		return nil, err
	}
	return data, nil
}

// Query serves the verbatim document route GET /rest/WSGETPEDX.
func (s *SyncService) Query(ctx context.Context, query connector.TableQuery) (any, error) {
	if err := query.Validate(); err != nil {
		s.logErrorRun(ctx, query.Table, connector.SyncModeQuery, err)
		return nil, err
	}

	// An incomplete cCampo/cValor pair is dropped, not rejected: the upstream
	// document route only forwards the filter when both halves are present.
	query.Field = strings.TrimSpace(query.Field)
	query.Value = strings.TrimSpace(query.Value)
	if query.Field == "" || query.Value == "" {
		query.Field, query.Value = "", ""
	}

	data, err := s.gateway.FetchTable(ctx, query)
	if err != nil {
		s.logErrorRun(ctx, query.Table, connector.SyncModeQuery, err)
		return nil, err
	}

	if err := s.storeRaw(ctx, query.Table, map[string]any{
		"request": map[string]any{
			"cTabela": query.Table,
			"cReset":  query.Reset,
			"cCampo":  query.Field,
			"cValor":  query.Value,
			"cDtDe":   query.DateFrom,
			"cDtAte":  query.DateTo,
		},
		"response": data,
	}); err != nil {
		return nil, err
	}
	if err := s.logRun(ctx, query.Table, connector.SyncModeQuery, map[string]any{
		"cReset": query.Reset,
		"cCampo": query.Field,
		"cValor": query.Value,
		"cDtDe":  query.DateFrom,
		"cDtAte": query.DateTo,
	}); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *SyncService) storeRaw(ctx context.Context, table string, payload map[string]any) error {
	return s.raws.Store(ctx, &connector.RawPayload{TableName: table, Payload: payload})
}

func (s *SyncService) logRun(ctx context.Context, table string, mode connector.SyncMode, details map[string]any) error {
	return s.runs.Append(ctx, &connector.SyncRun{
		TableName: table,
		Mode:      mode,
		Status:    connector.SyncStatusSuccess,
		Details:   details,
	})
}

// logErrorRun records a failed pull. Audit failures on this path are logged
// and dropped so they never mask the primary error.
func (s *SyncService) logErrorRun(ctx context.Context, table string, mode connector.SyncMode, cause error) {
	run := &connector.SyncRun{
		TableName: strings.ToUpper(strings.TrimSpace(table)),
		Mode:      mode,
		Status:    connector.SyncStatusError,
		Details:   map[string]any{"error": cause.Error()},
	}
	if err := s.runs.Append(ctx, run); err != nil {
		s.log.Warn("failed to append error run",
			zap.String("table", run.TableName),
			zap.String("mode", string(mode)),
			zap.Error(err),
		)
	}
}
