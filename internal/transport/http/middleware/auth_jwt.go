package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"miwalavie-store/internal/core/auth"
	resp "miwalavie-store/internal/transport/http/response"
)

// AuthJWT 解析 Bearer token，把 userId / isAdmin 放进上下文。
// requireAdmin 时非管理员直接硬 403（管理端路由），
// 普通鉴权失败给未登录语义，前端据 redirect 提示跳登录页。
func AuthJWT(j *auth.JWTer, requireAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.Redirect(resp.CodeUnauthorized, "Please log in.", "/login"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Redirect(resp.CodeUnauthorized, "Please log in.", "/login"))
			return
		}
		if requireAdmin && !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set("userId", claims.UID)
		c.Set("isAdmin", claims.IsAdmin)
		c.Next()
	}
}
