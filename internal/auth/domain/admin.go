package domain

// Admin 管理员账号，全站仅有一个默认账号，引导阶段幂等创建
type Admin struct {
	Username     string `gorm:"column:username;type:varchar(50);primaryKey" bson:"_id" json:"username"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null" bson:"password" json:"-"`
}

func (Admin) TableName() string { return "admins" }

func NewAdmin(username, passwordHash string) *Admin {
	return &Admin{
		Username:     username,
		PasswordHash: passwordHash,
	}
}
