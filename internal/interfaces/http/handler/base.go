package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/protheus/connector/internal/domain/connector"
	"github.com/protheus/connector/internal/infrastructure/logger"
	"github.com/protheus/connector/internal/interfaces/http/dto"
	"github.com/protheus/connector/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success envelope, used by internal endpoints
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Raw sends the upstream body verbatim, used by the proxy endpoints
func (h *BaseHandler) Raw(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Replay sends a cached response marked as an idempotent replay
func (h *BaseHandler) Replay(c *gin.Context, cached any) {
	c.JSON(http.StatusOK, dto.NewReplayResponse(cached))
}

// Error sends an error response with an explicit status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// Fail sends an error response with the status the error code maps to
func (h *BaseHandler) Fail(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Fail(c, dto.ErrCodeBadRequest, message)
}

// Conflict sends a 409 conflict response
func (h *BaseHandler) Conflict(c *gin.Context, message string) {
	h.Fail(c, dto.ErrCodeConflict, message)
}

// BadGateway sends a 502 bad gateway response
func (h *BaseHandler) BadGateway(c *gin.Context, message string) {
	h.Fail(c, dto.ErrCodeUpstream, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Fail(c, dto.ErrCodeInternal, message)
}

// HandleDomainError maps a connector error to the right HTTP response.
//
//   - caller-input failures     -> 400
//   - lost idempotency race     -> 409
//   - failed Protheus call      -> 502
//   - everything else           -> 500
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	var upstream *connector.UpstreamError

	switch {
	case connector.IsValidation(err):
		h.BadRequest(c, err.Error())
	case errors.Is(err, connector.ErrDuplicateRecord):
		h.Conflict(c, err.Error())
	case errors.As(err, &upstream):
		h.BadGateway(c, upstream.Error())
	default:
		logger.FromContext(c.Request.Context()).Error("unhandled domain error", zap.Error(err))
		h.InternalError(c, "internal error")
	}
}
