package application

import (
	"context"

	"github.com/wyfcoding/khamyang/internal/auth/domain"
	"github.com/wyfcoding/khamyang/pkg/errs"
)

// AuthQueryService 认证查询服务
type AuthQueryService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
}

// NewAuthQueryService 创建认证查询服务实例
func NewAuthQueryService(users domain.UserRepository, sessions domain.SessionRepository) *AuthQueryService {
	return &AuthQueryService{
		users:    users,
		sessions: sessions,
	}
}

// GetSession 按令牌查找有效会话；不存在或已过期返回 (nil, nil)
func (s *AuthQueryService) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, errs.Store(err)
	}
	if session == nil || session.IsExpired() {
		return nil, nil
	}
	return session, nil
}

// GetUser 按 ID 获取用户
func (s *AuthQueryService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Store(err)
	}
	if user == nil {
		return nil, errs.NotFound("User not found")
	}
	return user, nil
}
