package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"vlavem/adapters/supabase"
)

const (
	// SESSION_COOKIE_ACCESS_TOKEN 是前端 auth 套件存放 access token 的 cookie
	SESSION_COOKIE_ACCESS_TOKEN = "sb-access-token"
)

// SessionMiddleware 將請求帶來的 access token 放進 context，
// 讓啟用 session 的 client 在查詢目前使用者時使用。
func (impl *ServerImpl) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		} else if cookie, err := c.Cookie(SESSION_COOKIE_ACCESS_TOKEN); err == nil {
			token = cookie
		}
		if token != "" {
			c.Request = c.Request.WithContext(supabase.WithAccessToken(c.Request.Context(), token))
		}
		c.Next()
	}
}
