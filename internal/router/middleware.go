package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/errno"
	"github.com/Frenky19/QRkot-spreadsheets/internal/handler"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIdHeader = "X-Request-ID"

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requestLogger 使用 zap 记录访问日志
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestId := c.GetHeader(requestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		c.Header(requestIdHeader, requestId)

		c.Next()

		logger.GetDefaultZapLogger().Info("request",
			zap.String("request_id", requestId),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// authMiddleware 校验 Bearer 令牌并写入当前用户
func authMiddleware(users *logic.UserLogic) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			handler.ErrorResponse(c, errno.ErrTokenInvalid)
			return
		}

		user, err := users.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			handler.ErrorResponse(c, err)
			return
		}

		c.Set(handler.ContextUserKey, user)
		c.Next()
	}
}

// superuserMiddleware 必须在 authMiddleware 之后
func superuserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := handler.CurrentUser(c)
		if user == nil {
			handler.ErrorResponse(c, errno.ErrTokenInvalid)
			return
		}
		if !user.IsSuperuser {
			handler.ErrorResponse(c, errno.ErrForbidden)
			return
		}
		c.Next()
	}
}
