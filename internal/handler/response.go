package handler

import (
	"github.com/Frenky19/QRkot-spreadsheets/internal/errno"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应，状态码与错误码由 errno 决定
func ErrorResponse(c *gin.Context, err error) {
	status, code, message := errno.Decode(err)
	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Code:    code,
		Message: message,
		Data:    nil,
	})
}
