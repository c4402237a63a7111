package middleware

import (
	"strings"

	"MatchServer/consts"
	"MatchServer/pkg/result"
	"MatchServer/pkg/util"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware JWT 认证中间件
// 从请求头中提取 Token 并验证，验证通过后将用户信息存入 Context
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从 Header 中获取 Authorization
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// 客户端请求错误,属于正常业务流程,不记录日志
			result.Abort(c, consts.CodeUnauthorized)
			return
		}

		// 2. 验证格式: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			result.Abort(c, consts.CodeUnauthorized)
			return
		}

		// 3. 解析并验证 Token
		claims, err := util.ParseToken(parts[1])
		if err != nil {
			// Token 无效或过期,属于正常业务流程,不记录日志
			result.Abort(c, consts.CodeUnauthorized)
			return
		}

		// 4. 将用户信息存入 Context，供后续 Handler 使用
		c.Set("user_uuid", claims.UserUUID)
		c.Set("device_id", claims.DeviceID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// GetUserUUID 从 Context 中获取当前登录用户的 UUID
func GetUserUUID(c *gin.Context) (string, bool) {
	userUUID, exists := c.Get("user_uuid")
	if !exists {
		return "", false
	}
	uuid, ok := userUUID.(string)
	return uuid, ok
}

// GetDeviceID 从 Context 中获取当前设备 ID
func GetDeviceID(c *gin.Context) (string, bool) {
	deviceID, exists := c.Get("device_id")
	if !exists {
		return "", false
	}
	id, ok := deviceID.(string)
	return id, ok
}

// IsModerator 当前请求方是否为运营账号
func IsModerator(c *gin.Context) bool {
	role, exists := c.Get("role")
	if !exists {
		return false
	}
	s, ok := role.(string)
	return ok && s == consts.RoleModerator
}
