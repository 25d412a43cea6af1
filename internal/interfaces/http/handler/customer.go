package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	connectorapp "github.com/protheus/connector/internal/application/connector"
	"github.com/protheus/connector/internal/interfaces/http/dto"
)

// CustomerHandler handles the WSCUSTOMERS write-through endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *connectorapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *connectorapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create handles POST /customers.
// The body is forwarded to Protheus as-is; repeated requests with the same
// key replay the cached response.
func (h *CustomerHandler) Create(c *gin.Context) {
	h.write(c, false)
}

// Update handles PUT /customers. Protheus receives the same payload with
// cAltera=S and updates instead of inserting.
func (h *CustomerHandler) Update(c *gin.Context) {
	h.write(c, true)
}

// WSCustomers handles POST /rest/WSCUSTOMERS, the verbatim proxy route.
// cAltera=S in the query selects the update path, matching the upstream
// WSCUSTOMERS contract.
func (h *CustomerHandler) WSCustomers(c *gin.Context) {
	altera := strings.ToUpper(strings.TrimSpace(c.Query("cAltera"))) == "S"
	h.write(c, altera)
}

func (h *CustomerHandler) write(c *gin.Context, altera bool) {
	var body connectorapp.CustomerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.Fail(c, dto.ErrCodeInvalidJSON, "invalid JSON body: "+err.Error())
		return
	}

	result, err := h.customerService.Write(c.Request.Context(), body, altera)
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
