package domain

import (
	"time"

	"github.com/google/uuid"
)

// User 社区注册用户，手机号全局唯一
type User struct {
	ID           string    `gorm:"column:id;type:varchar(36);primaryKey" bson:"_id" json:"id"`
	Name         string    `gorm:"column:name;type:varchar(100);not null" bson:"name" json:"name"`
	Phone        string    `gorm:"column:phone;type:varchar(20);uniqueIndex;not null" bson:"phone" json:"phone"`
	Address      string    `gorm:"column:address;type:varchar(255)" bson:"address" json:"address"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" bson:"password" json:"-"`
	RegisteredAt time.Time `gorm:"column:registered_at" bson:"registered_at" json:"registered_at"`
}

func (User) TableName() string { return "users" }

func NewUser(name, phone, address, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Phone:        phone,
		Address:      address,
		PasswordHash: passwordHash,
		RegisteredAt: time.Now(),
	}
}
