package domain

import (
	"time"

	"github.com/google/uuid"
)

// SellerStatusActive 卖家默认状态
const SellerStatusActive = "active"

// Seller 卖家账号，与用户账号相互独立。
type Seller struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	FullName     string    `gorm:"type:varchar(255);not null" bson:"full_name" json:"full_name"`
	BusinessName string    `gorm:"type:varchar(255);not null" bson:"business_name" json:"business_name"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex" bson:"email" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" bson:"password" json:"-"`
	Phone        string    `gorm:"type:varchar(32)" bson:"phone" json:"phone"`
	Whatsapp     string    `gorm:"type:varchar(32)" bson:"whatsapp" json:"whatsapp"`
	Status       string    `gorm:"type:varchar(16);not null;default:active" bson:"status" json:"status"`
	CreatedAt    time.Time `gorm:"not null" bson:"created_at" json:"created_at"`
}

func (Seller) TableName() string {
	return "sellers"
}

// NewSeller 创建卖家账号
func NewSeller(fullName, businessName, email, passwordHash, phone, whatsapp string) *Seller {
	return &Seller{
		ID:           uuid.NewString(),
		FullName:     fullName,
		BusinessName: businessName,
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        phone,
		Whatsapp:     whatsapp,
		Status:       SellerStatusActive,
		CreatedAt:    time.Now(),
	}
}

// ContactInfo 商品列表中附带的卖家联系方式
type ContactInfo struct {
	BusinessName string `json:"business_name"`
	Whatsapp     string `json:"whatsapp"`
	Phone        string `json:"phone"`
}

func (s *Seller) Contact() ContactInfo {
	return ContactInfo{
		BusinessName: s.BusinessName,
		Whatsapp:     s.Whatsapp,
		Phone:        s.Phone,
	}
}
