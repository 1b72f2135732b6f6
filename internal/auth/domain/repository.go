package domain

import "context"

// UserRepository 用户仓储接口；记录不存在时返回 (nil, nil)
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
}

// AdminRepository 管理员仓储接口；记录不存在时返回 (nil, nil)
type AdminRepository interface {
	Save(ctx context.Context, admin *Admin) error
	GetByUsername(ctx context.Context, username string) (*Admin, error)
}
