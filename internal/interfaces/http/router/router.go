// Package router wires the connector's HTTP surface: the verbatim /rest
// proxy routes Protheus consumers already use, the short write routes, the
// internal /sync pulls, and the system endpoints.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/protheus/connector/internal/interfaces/http/handler"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Customer *handler.CustomerHandler
	Order    *handler.OrderHandler
	Sync     *handler.SyncHandler
	System   *handler.SystemHandler
}

// Setup registers all routes on the engine. Everything except /health sits
// behind the auth middleware so health checks never need a key; route paths
// are unprefixed because the /rest routes must match the original Protheus
// paths exactly.
func Setup(engine *gin.Engine, h Handlers, auth gin.HandlerFunc) {
	// Public liveness endpoint
	engine.GET("/health", h.System.Health)

	protected := engine.Group("", auth)

	protected.GET("/meta/protheus", h.System.Meta)

	// Write-through proxy, short routes
	protected.POST("/customers", h.Customer.Create)
	protected.PUT("/customers", h.Customer.Update)
	protected.POST("/salesorders", h.Order.Create)

	// Verbatim Protheus-compatible routes
	rest := protected.Group("/rest")
	{
		rest.GET("/WSGETPEDX", h.Sync.GetPedX)
		rest.POST("/WSCUSTOMERS", h.Customer.WSCustomers)
		rest.POST("/WSSALESORDERS", h.Order.Create)
	}

	// Internal pull/audit routes
	sync := protected.Group("/sync")
	{
		sync.POST("/reset/:table", h.Sync.Reset)
		sync.POST("/pull", h.Sync.Pull)
		sync.POST("/pull/filter", h.Sync.PullFilter)
		sync.POST("/pull/orders", h.Sync.PullOrders)
		sync.POST("/pull/invoices", h.Sync.PullInvoices)
	}
}
