package handler

import (
	"github.com/gin-gonic/gin"

	connectorapp "github.com/protheus/connector/internal/application/connector"
	"github.com/protheus/connector/internal/interfaces/http/dto"
)

// OrderHandler handles the WSSALESORDERS write-through endpoint
type OrderHandler struct {
	BaseHandler
	orderService *connectorapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *connectorapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles POST /salesorders and POST /rest/WSSALESORDERS. Commercial
// defaults are filled in before the payload reaches Protheus; repeated
// requests with the same key replay the cached response.
func (h *OrderHandler) Create(c *gin.Context) {
	var body connectorapp.SalesOrderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.Fail(c, dto.ErrCodeInvalidJSON, "invalid JSON body: "+err.Error())
		return
	}

	result, err := h.orderService.Create(c.Request.Context(), body)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if result.Idempotent {
		h.Replay(c, result.Body)
		return
	}
	h.Raw(c, result.Body)
}
