package application

import (
	"context"
	"time"

	"github.com/wyfcoding/khamyang/internal/auth/domain"
	"github.com/wyfcoding/khamyang/pkg/errs"
	"github.com/wyfcoding/khamyang/pkg/logger"
	"github.com/wyfcoding/khamyang/pkg/metrics"
	"github.com/wyfcoding/khamyang/pkg/mq"
	"github.com/wyfcoding/khamyang/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

const sessionTokenLength = 48

// RegisterUserCommand 用户注册命令
type RegisterUserCommand struct {
	Name     string
	Phone    string
	Address  string
	Password string
}

// LoginUserCommand 用户登录命令
type LoginUserCommand struct {
	Phone    string
	Password string
}

// AdminLoginCommand 管理员登录命令
type AdminLoginCommand struct {
	Username string
	Password string
}

// AuthCommandService 认证命令服务
type AuthCommandService struct {
	users      domain.UserRepository
	admins     domain.AdminRepository
	sessions   domain.SessionRepository
	publisher  mq.Publisher
	metrics    *metrics.Metrics
	sessionTTL time.Duration
}

// NewAuthCommandService 创建认证命令服务实例
func NewAuthCommandService(
	users domain.UserRepository,
	admins domain.AdminRepository,
	sessions domain.SessionRepository,
	publisher mq.Publisher,
	m *metrics.Metrics,
	sessionTTL time.Duration,
) *AuthCommandService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthCommandService{
		users:      users,
		admins:     admins,
		sessions:   sessions,
		publisher:  publisher,
		metrics:    m,
		sessionTTL: sessionTTL,
	}
}

// RegisterUser 处理用户注册；手机号重复时返回冲突错误
func (s *AuthCommandService) RegisterUser(ctx context.Context, cmd RegisterUserCommand) (*domain.User, error) {
	if cmd.Name == "" || cmd.Phone == "" || cmd.Address == "" || cmd.Password == "" {
		return nil, errs.Validation("Please fill all fields")
	}

	existing, err := s.users.GetByPhone(ctx, cmd.Phone)
	if err != nil {
		return nil, errs.Store(err)
	}
	if existing != nil {
		return nil, errs.Conflict("Phone number already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Store(err)
	}

	user := domain.NewUser(cmd.Name, cmd.Phone, cmd.Address, string(hash))
	if err := s.users.Save(ctx, user); err != nil {
		return nil, errs.Store(err)
	}

	if s.publisher != nil {
		event := domain.UserRegisteredEvent{
			UserID:    user.ID,
			Name:      user.Name,
			Phone:     user.Phone,
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, domain.UserRegisteredEventType, user.Phone, event)
	}
	if s.metrics != nil {
		s.metrics.UserRegistrationsTotal.Inc()
	}

	return user, nil
}

// LoginUser 处理用户登录；手机号未知与密码错误不可区分
func (s *AuthCommandService) LoginUser(ctx context.Context, cmd LoginUserCommand) (*domain.Session, error) {
	user, err := s.users.GetByPhone(ctx, cmd.Phone)
	if err != nil {
		return nil, errs.Store(err)
	}
	if user == nil {
		return nil, errs.Unauthorized("Invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(cmd.Password)) != nil {
		return nil, errs.Unauthorized("Invalid credentials")
	}

	if s.publisher != nil {
		event := domain.UserLoggedInEvent{
			UserID:    user.ID,
			Phone:     user.Phone,
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, domain.UserLoggedInEventType, user.Phone, event)
	}
	if s.metrics != nil {
		s.metrics.LoginsTotal.Inc()
	}

	return s.StartSession(ctx, domain.RoleUser, user.ID, user.Name)
}

// LoginAdmin 处理管理员登录
func (s *AuthCommandService) LoginAdmin(ctx context.Context, cmd AdminLoginCommand) (*domain.Session, error) {
	admin, err := s.admins.GetByUsername(ctx, cmd.Username)
	if err != nil {
		return nil, errs.Store(err)
	}
	if admin == nil {
		return nil, errs.Unauthorized("Invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(cmd.Password)) != nil {
		return nil, errs.Unauthorized("Invalid credentials")
	}

	if s.publisher != nil {
		event := domain.AdminLoggedInEvent{
			Username:  admin.Username,
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, domain.AdminLoggedInEventType, admin.Username, event)
	}
	if s.metrics != nil {
		s.metrics.LoginsTotal.Inc()
	}

	return s.StartSession(ctx, domain.RoleAdmin, admin.Username, admin.Username)
}

// StartSession 为指定身份创建会话；注册自动登录与卖家登录复用此入口
func (s *AuthCommandService) StartSession(ctx context.Context, role domain.Role, identityID, name string) (*domain.Session, error) {
	now := time.Now()
	session := &domain.Session{
		Token:      utils.RandToken(sessionTokenLength),
		Role:       role,
		IdentityID: identityID,
		Name:       name,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.sessionTTL),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, errs.Store(err)
	}

	return session, nil
}

// Logout 删除会话；令牌不存在视为成功
func (s *AuthCommandService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return errs.Store(err)
	}
	return nil
}

// EnsureDefaultAdmin 幂等创建默认管理员账号
func (s *AuthCommandService) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	existing, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return errs.Store(err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errs.Store(err)
	}

	if err := s.admins.Save(ctx, domain.NewAdmin(username, string(hash))); err != nil {
		return errs.Store(err)
	}

	logger.Info(ctx, "Default admin created", "username", username)
	return nil
}
