package models

import "time"

// Admin 管理员账号
type Admin struct {
	ID           uint      `gorm:"primarykey" json:"id"`                    // 主键
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`    // 用户名
	PasswordHash string    `gorm:"not null" json:"-"`                       // 密码哈希
	LastLoginAt  *time.Time `json:"last_login_at"`                          // 最近登录时间
	CreatedAt    time.Time `json:"created_at"`                              // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                              // 更新时间
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}
