package dto

// Response represents a standard API envelope for internal endpoints and
// errors. Successful proxy writes bypass it and return the Protheus body
// verbatim.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithRequestID creates an error response carrying the
// request ID for correlation
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	resp := NewErrorResponse(code, message)
	resp.Error.RequestID = requestID
	return resp
}

// ReplayResponse wraps a cached Protheus response returned on an idempotent
// replay instead of a fresh upstream write.
type ReplayResponse struct {
	Idempotent     bool `json:"idempotent"`
	CachedResponse any  `json:"cached_response"`
}

// NewReplayResponse creates a replay envelope around a cached response
func NewReplayResponse(cached any) ReplayResponse {
	return ReplayResponse{
		Idempotent:     true,
		CachedResponse: cached,
	}
}
