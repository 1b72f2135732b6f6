package http

import (
	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/khamyang/internal/auth/application"
	"github.com/wyfcoding/khamyang/internal/auth/domain"
)

// 三类身份各自独立的会话 Cookie
const (
	UserSessionCookie   = "user_session"
	SellerSessionCookie = "seller_session"
	AdminSessionCookie  = "admin_session"
)

const authContextKey = "auth_context"

// SessionMiddleware 解析三个会话 Cookie，构建请求的认证上下文。
// 任一 Cookie 缺失或会话失效仅视为对应身份未登录，不中断请求。
func SessionMiddleware(query *application.AuthQueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authCtx := &domain.AuthContext{}

		if token, err := c.Cookie(UserSessionCookie); err == nil {
			if s, err := query.GetSession(c.Request.Context(), token); err == nil && s != nil && s.Role == domain.RoleUser {
				authCtx.UserID = s.IdentityID
				authCtx.UserName = s.Name
			}
		}
		if token, err := c.Cookie(SellerSessionCookie); err == nil {
			if s, err := query.GetSession(c.Request.Context(), token); err == nil && s != nil && s.Role == domain.RoleSeller {
				authCtx.SellerID = s.IdentityID
				authCtx.SellerName = s.Name
			}
		}
		if token, err := c.Cookie(AdminSessionCookie); err == nil {
			if s, err := query.GetSession(c.Request.Context(), token); err == nil && s != nil && s.Role == domain.RoleAdmin {
				authCtx.IsAdmin = true
			}
		}

		c.Set(authContextKey, authCtx)
		c.Next()
	}
}

// GetAuthContext 取出当前请求的认证上下文，中间件未执行时返回空上下文。
func GetAuthContext(c *gin.Context) *domain.AuthContext {
	if v, ok := c.Get(authContextKey); ok {
		if authCtx, ok := v.(*domain.AuthContext); ok {
			return authCtx
		}
	}
	return &domain.AuthContext{}
}
