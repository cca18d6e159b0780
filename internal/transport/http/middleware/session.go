package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "sid"
	KeySessionID  = "sessionId"

	sessionMaxAge = 7 * 24 * 3600
)

// Session 匿名会话 cookie，购物车按它分桶；没有就发一个
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sid, sessionMaxAge, "/", "", false, true)
		}
		c.Set(KeySessionID, sid)
		c.Next()
	}
}
