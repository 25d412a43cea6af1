// Package protheus implements the outbound REST adapter for the TOTVS
// Protheus web services consumed by the connector.
package protheus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/protheus/connector/internal/domain/connector"
	"github.com/protheus/connector/internal/infrastructure/config"
)

// maxResponseSize bounds how much of a Protheus response is read. Full-table
// pulls can be large, but never unbounded.
const maxResponseSize = 50 << 20 // 50MB

// Protheus web service paths.
const (
	pathGetPedX     = "/rest/WSGETPEDX"
	pathCustomers   = "/rest/WSCUSTOMERS"
	pathSalesOrders = "/rest/WSSALESORDERS"
)

// Client calls the Protheus REST services over HTTP basic auth. It implements
// connector.ProtheusGateway with exactly one HTTP call per method and no
// retries.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a Client from the Protheus section of the configuration.
func NewClient(cfg *config.ProtheusConfig, log *zap.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		username: cfg.Username,
		password: cfg.Password,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log.Named("protheus-client"),
	}
}

// FetchTable performs GET /rest/WSGETPEDX with the query's filters.
func (c *Client) FetchTable(ctx context.Context, query connector.TableQuery) (any, error) {
	params := url.Values{}
	params.Set("cTabela", query.Table)
	if query.Reset {
		params.Set("cReset", "S")
	}
	if query.Field != "" && query.Value != "" {
		params.Set("cCampo", query.Field)
		params.Set("cValor", query.Value)
	}
	if query.DateFrom != "" && query.DateTo != "" {
		params.Set("cDtDe", query.DateFrom)
		params.Set("cDtAte", query.DateTo)
	}

	return c.doRequest(ctx, "WSGETPEDX", http.MethodGet, pathGetPedX, params, nil)
}

// PostCustomers performs POST /rest/WSCUSTOMERS. With altera set the request
// carries cAltera=S and Protheus updates instead of inserting.
func (c *Client) PostCustomers(ctx context.Context, payload any, altera bool) (any, error) {
	params := url.Values{}
	if altera {
		params.Set("cAltera", "S")
	}
	return c.doRequest(ctx, "WSCUSTOMERS", http.MethodPost, pathCustomers, params, payload)
}

// PostSalesOrders performs POST /rest/WSSALESORDERS.
func (c *Client) PostSalesOrders(ctx context.Context, payload any) (any, error) {
	return c.doRequest(ctx, "WSSALESORDERS", http.MethodPost, pathSalesOrders, nil, payload)
}

func (c *Client) doRequest(ctx context.Context, operation, method, path string, params url.Values, payload any) (any, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("protheus: failed to encode %s payload: %w", operation, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("protheus: failed to create %s request: %w", operation, err)
	}
	req.SetBasicAuth(c.username, c.password)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &connector.UpstreamError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &connector.UpstreamError{Operation: operation, Status: resp.StatusCode, Err: err}
	}

	c.log.Debug("protheus request",
		zap.String("operation", operation),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("body_size", len(respBody)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &connector.UpstreamError{
			Operation: operation,
			Status:    resp.StatusCode,
			Err:       fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(respBody))),
		}
	}

	var decoded any
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, &connector.UpstreamError{
			Operation: operation,
			Status:    resp.StatusCode,
			Err:       fmt.Errorf("invalid JSON response: %w", err),
		}
	}
	return decoded, nil
}
