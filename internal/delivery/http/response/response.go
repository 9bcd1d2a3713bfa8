package response

import (
	"meal-planner-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform success shape. Error responses use ErrorBody so
// the error kind and message sit at the top level.
type Envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

type ErrorBody struct {
	Kind      string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Success sends a success response.
func Success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, Envelope{
		Success:   true,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error sends an error response carrying the stable machine-readable kind
// and a human-readable message.
func Error(c *gin.Context, code int, kind, message string) {
	c.JSON(code, ErrorBody{
		Kind:      kind,
		Message:   message,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	id, _ := c.Get(string(domain.KeyRequestID))
	s, _ := id.(string)
	return s
}
