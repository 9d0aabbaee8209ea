package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message   string       `json:"message"`
	Code      string       `json:"code"`
	RequestID string       `json:"request_id"`
	Errors    []FieldError `json:"errors,omitempty"`
}

// JSON writes data as the raw response body. Catalog clients consume the
// documents directly, so success bodies carry no envelope.
func JSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// Error writes an error response with provided API error code and message.
func Error(c *gin.Context, code int, errCode, message string) {
	c.JSON(code, ErrorResponse{
		Message:   message,
		Code:      errCode,
		RequestID: getRequestID(c),
	})
}

// ValidationFailed writes a 400 response listing every rejected field.
func ValidationFailed(c *gin.Context, verr *ValidationError) {
	c.JSON(400, ErrorResponse{
		Message:   "Validation error",
		Code:      "VALIDATION_ERROR",
		RequestID: getRequestID(c),
		Errors:    verr.Fields,
	})
}

func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return uuid.New().String()[:8]
}
