package domain

import "time"

const (
	UserRegisteredEventType = "user.registered"
	UserLoggedInEventType   = "user.login"
	UserLoggedOutEventType  = "user.logout"
	AdminLoggedInEventType  = "admin.login"
)

// UserRegisteredEvent 用户注册事件
type UserRegisteredEvent struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Timestamp time.Time `json:"timestamp"`
}

// UserLoggedInEvent 用户登录事件
type UserLoggedInEvent struct {
	UserID    string    `json:"user_id"`
	Phone     string    `json:"phone"`
	Timestamp time.Time `json:"timestamp"`
}

// UserLoggedOutEvent 用户登出事件
type UserLoggedOutEvent struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// AdminLoggedInEvent 管理员登录事件
type AdminLoggedInEvent struct {
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}
