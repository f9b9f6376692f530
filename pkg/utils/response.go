package utils

import "github.com/gin-gonic/gin"

// Response is the uniform JSON envelope for all endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Warning string      `json:"warning,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WarningResponse reports a successful mutation whose follow-up side effect
// (typically a notification) failed. The mutation is never rolled back.
func WarningResponse(c *gin.Context, status int, message, warning string, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Warning: warning,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Success: false,
		Message: message,
	})
}
