package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/khamyang/internal/auth/application"
	"github.com/wyfcoding/khamyang/internal/auth/domain"
	"github.com/wyfcoding/khamyang/pkg/errs"
	"github.com/wyfcoding/khamyang/pkg/logger"
)

// AuthHandler 认证 HTTP 处理器，负责用户与管理员的会话生命周期。
type AuthHandler struct {
	command      *application.AuthCommandService
	secureCookie bool
}

func NewAuthHandler(command *application.AuthCommandService, secureCookie bool) *AuthHandler {
	return &AuthHandler{command: command, secureCookie: secureCookie}
}

// RegisterRoutes 注册认证相关路由
func (h *AuthHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
	r.POST("/admin/login", h.AdminLogin)
	r.GET("/admin/logout", h.AdminLogout)
}

// 表单和 JSON 两种提交方式共用同一套输入结构
type registerRequest struct {
	Name     string `json:"name" form:"name"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
	Password string `json:"password" form:"password"`
}

type loginRequest struct {
	Phone    string `json:"phone" form:"phone"`
	Password string `json:"password" form:"password"`
}

type adminLoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Register 处理用户注册，成功后自动登录
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please fill all fields"})
		return
	}

	user, err := h.command.RegisterUser(c.Request.Context(), application.RegisterUserCommand{
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	session, err := h.command.StartSession(c.Request.Context(), domain.RoleUser, user.ID, user.Name)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.setCookie(c, UserSessionCookie, session)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Registration successful", "name": user.Name})
}

// Login 处理用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	session, err := h.command.LoginUser(c.Request.Context(), application.LoginUserCommand{
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.setCookie(c, UserSessionCookie, session)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login successful", "name": session.Name})
}

// Logout 注销用户会话
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(UserSessionCookie); err == nil {
		if err := h.command.Logout(c.Request.Context(), token); err != nil {
			logger.Warn(c.Request.Context(), "failed to delete session", "error", err)
		}
	}
	h.clearCookie(c, UserSessionCookie)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "You have been logged out"})
}

// AdminLogin 处理管理员登录
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	session, err := h.command.LoginAdmin(c.Request.Context(), application.AdminLoginCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.setCookie(c, AdminSessionCookie, session)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login successful"})
}

// AdminLogout 注销管理员会话
func (h *AuthHandler) AdminLogout(c *gin.Context) {
	if token, err := c.Cookie(AdminSessionCookie); err == nil {
		if err := h.command.Logout(c.Request.Context(), token); err != nil {
			logger.Warn(c.Request.Context(), "failed to delete session", "error", err)
		}
	}
	h.clearCookie(c, AdminSessionCookie)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "You have been logged out"})
}

func (h *AuthHandler) setCookie(c *gin.Context, name string, session *domain.Session) {
	maxAge := int(session.ExpiresAt.Sub(session.CreatedAt).Seconds())
	c.SetCookie(name, session.Token, maxAge, "/", "", h.secureCookie, true)
}

func (h *AuthHandler) clearCookie(c *gin.Context, name string) {
	c.SetCookie(name, "", -1, "/", "", h.secureCookie, true)
}

func (h *AuthHandler) fail(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "auth request failed", "error", err)
	}
	c.JSON(status, gin.H{"success": false, "message": errs.MessageOf(err)})
}
