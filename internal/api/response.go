package api

import (
	"ContestSync/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// envelope 统一响应结构
type envelope struct {
	Status     string            `json:"status"`
	Data       interface{}       `json:"data"`
	Message    string            `json:"message,omitempty"`
	Pagination *model.Pagination `json:"pagination,omitempty"`
}

func respondOK(c *gin.Context, code int, data interface{}, pagination *model.Pagination) {
	c.JSON(code, envelope{Status: statusSuccess, Data: data, Pagination: pagination})
}

func respondMessage(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, envelope{Status: statusSuccess, Message: message, Data: data})
}

// respondError 错误响应不带 data
func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": statusError, "message": message})
}
