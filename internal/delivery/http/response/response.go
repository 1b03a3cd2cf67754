package response

import (
	"github.com/gin-gonic/gin"
)

// MessageResponse is the body of a successful command
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string) {
	c.JSON(code, MessageResponse{Message: message})
}

// Data sends a resource as the whole body
func Data(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}
