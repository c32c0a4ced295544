package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageResponse 仅含提示信息的响应体
type MessageResponse struct {
	Message string `json:"message"`
}

// Message 返回 {"message": ...}
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, MessageResponse{Message: message})
}

// BadRequest 返回400错误
func BadRequest(c *gin.Context, message string) {
	Message(c, http.StatusBadRequest, message)
}

// Unauthorized 返回401错误
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Message(c, http.StatusUnauthorized, message)
}

// InternalServerError 返回500错误
func InternalServerError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Message(c, http.StatusInternalServerError, message)
}
