package middleware

import (
	"Followdesk/internal/pkg/response"
	"Followdesk/internal/service"
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := authSvc.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			} else {
				response.Error(c, err)
			}
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set(claimsKey, claims)
		c.Set("token", tokenString)

		newCtx := context.WithValue(c.Request.Context(), "user_id", claims.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
