package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	connectorapp "github.com/protheus/connector/internal/application/connector"
	"github.com/protheus/connector/internal/domain/connector"
	"github.com/protheus/connector/internal/interfaces/http/middleware"
)

func newSyncRouter(t *testing.T) (*gin.Engine, *MockProtheusGateway, *MockSyncRunRepository, *MockRawPayloadRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	gateway := new(MockProtheusGateway)
	runs := new(MockSyncRunRepository)
	raws := new(MockRawPayloadRepository)
	svc := connectorapp.NewSyncService(gateway, runs, raws, zap.NewNop())
	h := NewSyncHandler(svc)

	router := gin.New()
	router.POST("/sync/reset/:table", h.Reset)
	router.POST("/sync/pull", h.Pull)
	router.POST("/sync/pull/filter", h.PullFilter)
	router.POST("/sync/pull/orders", h.PullOrders)
	router.GET("/rest/WSGETPEDX", h.GetPedX)
	return router, gateway, runs, raws
}

func getURL(t *testing.T, router *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestSyncHandler_Pull(t *testing.T) {
	t.Run("success wraps the payload in the envelope", func(t *testing.T) {
		router, gateway, runs, raws := newSyncRouter(t)

		gateway.On("FetchTable", mock.Anything, connector.TableQuery{Table: "SB1"}).
			Return([]any{map[string]any{"B1_COD": "P001"}}, nil)
		raws.On("Store", mock.Anything, mock.Anything).Return(nil)
		runs.On("Append", mock.Anything, mock.Anything).Return(nil)

		w := postJSON(t, router, "/sync/pull", map[string]any{"table": "SB1"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		assert.Contains(t, w.Body.String(), "P001")
		gateway.AssertExpectations(t)
	})

	t.Run("missing table is a binding error", func(t *testing.T) {
		router, gateway, _, _ := newSyncRouter(t)

		w := postJSON(t, router, "/sync/pull", map[string]any{"reset": true})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		gateway.AssertNotCalled(t, "FetchTable")
	})

	t.Run("unknown table is a 400", func(t *testing.T) {
		router, gateway, runs, _ := newSyncRouter(t)
		runs.On("Append", mock.Anything, mock.Anything).Return(nil)

		w := postJSON(t, router, "/sync/pull", map[string]any{"table": "ZZ9"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		gateway.AssertNotCalled(t, "FetchTable")
	})

	t.Run("upstream failure maps to 502", func(t *testing.T) {
		router, gateway, runs, _ := newSyncRouter(t)

		gateway.On("FetchTable", mock.Anything, mock.Anything).
			Return(nil, &connector.UpstreamError{Operation: "WSGETPEDX", Err: errors.New("connection refused")})
		runs.On("Append", mock.Anything, mock.Anything).Return(nil)

		w := postJSON(t, router, "/sync/pull", map[string]any{"table": "SA1"})

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UPSTREAM")
	})
}

func TestSyncHandler_Reset(t *testing.T) {
	router, gateway, runs, raws := newSyncRouter(t)

	gateway.On("FetchTable", mock.Anything, connector.TableQuery{Table: "SA1", Reset: true}).
		Return([]any{}, nil)
	raws.On("Store", mock.Anything, mock.Anything).Return(nil)
	runs.On("Append", mock.Anything, mock.Anything).Return(nil)

	w := postJSON(t, router, "/sync/reset/SA1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	gateway.AssertExpectations(t)
}

func TestSyncHandler_PullFilter(t *testing.T) {
	t.Run("passes field and value through", func(t *testing.T) {
		router, gateway, runs, raws := newSyncRouter(t)

		gateway.On("FetchTable", mock.Anything, connector.TableQuery{Table: "SA1", Field: "A1_CGC", Value: "123"}).
			Return([]any{}, nil)
		raws.On("Store", mock.Anything, mock.Anything).Return(nil)
		runs.On("Append", mock.Anything, mock.Anything).Return(nil)

		w := postJSON(t, router, "/sync/pull/filter", map[string]any{
			"table": "SA1", "campo": "A1_CGC", "valor": "123",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		gateway.AssertExpectations(t)
	})

	t.Run("missing valor is a binding error", func(t *testing.T) {
		router, gateway, _, _ := newSyncRouter(t)

		w := postJSON(t, router, "/sync/pull/filter", map[string]any{
			"table": "SA1", "campo": "A1_CGC",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		gateway.AssertNotCalled(t, "FetchTable")
	})
}

func TestSyncHandler_PullOrders(t *testing.T) {
	t.Run("valid period reaches the gateway", func(t *testing.T) {
		router, gateway, runs, raws := newSyncRouter(t)

		gateway.On("FetchTable", mock.Anything, connector.TableQuery{Table: "SC5", DateFrom: "20260101", DateTo: "20260131"}).
			Return([]any{}, nil)
		raws.On("Store", mock.Anything, mock.Anything).Return(nil)
		runs.On("Append", mock.Anything, mock.Anything).Return(nil)

		w := postJSON(t, router, "/sync/pull/orders", map[string]any{
			"dtDe": "20260101", "dtAte": "20260131",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		gateway.AssertExpectations(t)
	})

	t.Run("malformed date fails yyyymmdd validation", func(t *testing.T) {
		router, gateway, _, _ := newSyncRouter(t)

		w := postJSON(t, router, "/sync/pull/orders", map[string]any{
			"dtDe": "2026-01-01", "dtAte": "20260131",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		gateway.AssertNotCalled(t, "FetchTable")
	})
}

func TestSyncHandler_GetPedX(t *testing.T) {
	t.Run("returns the Protheus body unwrapped", func(t *testing.T) {
		router, gateway, runs, raws := newSyncRouter(t)

		gateway.On("FetchTable", mock.Anything, connector.TableQuery{Table: "SB1", Reset: true}).
			Return([]any{map[string]any{"B1_COD": "P001"}}, nil)
		raws.On("Store", mock.Anything, mock.Anything).Return(nil)
		runs.On("Append", mock.Anything, mock.Anything).Return(nil)

		w := getURL(t, router, "/rest/WSGETPEDX?cTabela=SB1&cReset=S")

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), `"success"`)
		assert.Contains(t, w.Body.String(), "P001")
		gateway.AssertExpectations(t)
	})

	t.Run("normalizes a padded lowercase cReset flag", func(t *testing.T) {
		router, gateway, runs, raws := newSyncRouter(t)

		gateway.On("FetchTable", mock.Anything, connector.TableQuery{Table: "SB1", Reset: true}).
			Return([]any{}, nil)
		raws.On("Store", mock.Anything, mock.Anything).Return(nil)
		runs.On("Append", mock.Anything, mock.Anything).Return(nil)

		w := getURL(t, router, "/rest/WSGETPEDX?cTabela=SB1&cReset=%20s%20")

		require.Equal(t, http.StatusOK, w.Code)
		gateway.AssertExpectations(t)
	})

	t.Run("half-open period is rejected", func(t *testing.T) {
		router, gateway, runs, _ := newSyncRouter(t)
		runs.On("Append", mock.Anything, mock.Anything).Return(nil)

		w := getURL(t, router, "/rest/WSGETPEDX?cTabela=SC5&cDtDe=20260101")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		gateway.AssertNotCalled(t, "FetchTable")
	})
}
