package memory

import (
	"context"
	"sync"

	"github.com/wyfcoding/khamyang/internal/auth/domain"
)

// sessionMemoryRepository 进程内会话仓储，用于开发环境与测试
type sessionMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewSessionRepository 创建内存会话仓储
func NewSessionRepository() domain.SessionRepository {
	return &sessionMemoryRepository{
		sessions: make(map[string]domain.Session),
	}
}

func (r *sessionMemoryRepository) Save(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Token] = *session
	return nil
}

func (r *sessionMemoryRepository) Get(ctx context.Context, token string) (*domain.Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[token]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if s.IsExpired() {
		r.mu.Lock()
		delete(r.sessions, token)
		r.mu.Unlock()
		return nil, nil
	}
	return &s, nil
}

func (r *sessionMemoryRepository) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}
