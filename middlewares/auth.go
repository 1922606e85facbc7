package middlewares

import (
	"strings"

	"github.com/Vithyatharshanaa/ctf-buddy-learn/utils"
	"github.com/gin-gonic/gin"
)

const ContextUserIDKey = "user_id"

// JWTAuthMiddleware 校验 Bearer Token，失败一律 401，
// 不区分缺失/格式错误/签名无效，避免给探测者线索
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c)
			c.Abort()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			utils.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			utils.Unauthorized(c)
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, claims.UserID())
		c.Next()
	}
}

// JWTTryAuthMiddleware 尝试解析 Token，失败也放行。
// 题目列表匿名可看，带 Token 时额外标注已解状态
func JWTTryAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			c.Next()
			return
		}

		if claims, err := utils.ParseToken(parts[1]); err == nil {
			c.Set(ContextUserIDKey, claims.UserID())
		}

		c.Next()
	}
}
