package domain

import (
	"context"
	"time"
)

// Role 会话身份类别，三类身份相互独立
type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Session 服务端会话记录
type Session struct {
	Token      string    `json:"token"`
	Role       Role      `json:"role"`
	IdentityID string    `json:"identity_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// SessionRepository 会话仓储接口（Redis 或内存实现）
type SessionRepository interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

// AuthContext 每请求认证上下文。三类身份互不授权：
// 已登录用户不具备卖家/管理员能力，反之亦然。
type AuthContext struct {
	UserID     string
	UserName   string
	SellerID   string
	SellerName string
	IsAdmin    bool
}

func (a AuthContext) IsUser() bool   { return a.UserID != "" }
func (a AuthContext) IsSeller() bool { return a.SellerID != "" }
