package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/protheus/connector/internal/domain/connector"
	"github.com/protheus/connector/internal/infrastructure/persistence"
)

// SystemHandler handles health and metadata endpoints
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	appName string
	env     string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, appName, env string) *SystemHandler {
	return &SystemHandler{db: db, appName: appName, env: env}
}

// Health handles GET /health. The connector is degraded when its local
// store is unreachable: reads still proxy, but writes lose idempotency.
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK

	if err := h.db.Ping(); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"app":      h.appName,
		"env":      h.env,
		"database": dbStatus,
	})
}

// Meta handles GET /meta/protheus, describing what the upstream accepts
func (h *SystemHandler) Meta(c *gin.Context) {
	h.Success(c, gin.H{
		"tables": connector.AllowedTables(),
		"endpoints": []string{
			connector.EndpointCreateCustomer,
			connector.EndpointUpdateCustomer,
			connector.EndpointCreateOrder,
		},
		"date_format": "yyyymmdd",
	})
}
