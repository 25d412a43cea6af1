package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	connectorapp "github.com/protheus/connector/internal/application/connector"
	"github.com/protheus/connector/internal/domain/connector"
)

// SyncHandler handles table pulls against WSGETPEDX, both the internal
// /sync routes and the verbatim /rest/WSGETPEDX proxy route.
type SyncHandler struct {
	BaseHandler
	syncService *connectorapp.SyncService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(syncService *connectorapp.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// PullRequest asks for a full pull of one table
type PullRequest struct {
	Table string `json:"table" binding:"required"`
	Reset bool   `json:"reset"`
}

// FilterRequest asks for a pull filtered by one field/value pair
type FilterRequest struct {
	Table string `json:"table" binding:"required"`
	Field string `json:"campo" binding:"required"`
	Value string `json:"valor" binding:"required"`
}

// PeriodRequest asks for a pull bounded by a yyyymmdd period
type PeriodRequest struct {
	DateFrom string `json:"dtDe" binding:"required,yyyymmdd"`
	DateTo   string `json:"dtAte" binding:"required,yyyymmdd"`
}

// GetPedXRequest mirrors the WSGETPEDX query parameters one to one
type GetPedXRequest struct {
	Table    string `form:"cTabela" binding:"required"`
	Reset    string `form:"cReset"`
	Field    string `form:"cCampo"`
	Value    string `form:"cValor"`
	DateFrom string `form:"cDtDe" binding:"omitempty,yyyymmdd"`
	DateTo   string `form:"cDtAte" binding:"omitempty,yyyymmdd"`
}

// Reset handles POST /sync/reset/:table
func (h *SyncHandler) Reset(c *gin.Context) {
	data, err := h.syncService.Reset(c.Request.Context(), c.Param("table"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, data)
}

// Pull handles POST /sync/pull
func (h *SyncHandler) Pull(c *gin.Context) {
	var req PullRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	data, err := h.syncService.Pull(c.Request.Context(), req.Table, req.Reset)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, data)
}

// PullFilter handles POST /sync/pull/filter
func (h *SyncHandler) PullFilter(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	data, err := h.syncService.PullFilter(c.Request.Context(), req.Table, req.Field, req.Value)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, data)
}

// PullOrders handles POST /sync/pull/orders
func (h *SyncHandler) PullOrders(c *gin.Context) {
	var req PeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	data, err := h.syncService.PullOrders(c.Request.Context(), req.DateFrom, req.DateTo)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, data)
}

// PullInvoices handles POST /sync/pull/invoices
func (h *SyncHandler) PullInvoices(c *gin.Context) {
	var req PeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	data, err := h.syncService.PullInvoices(c.Request.Context(), req.DateFrom, req.DateTo)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, data)
}

// GetPedX handles GET /rest/WSGETPEDX, the verbatim proxy route. The raw
// Protheus body comes back unwrapped so existing WSGETPEDX consumers can
// point at the connector unchanged.
func (h *SyncHandler) GetPedX(c *gin.Context) {
	var req GetPedXRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	data, err := h.syncService.Query(c.Request.Context(), connector.TableQuery{
		Table:    req.Table,
		Reset:    strings.ToUpper(strings.TrimSpace(req.Reset)) == "S",
		Field:    req.Field,
		Value:    req.Value,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Raw(c, data)
}
