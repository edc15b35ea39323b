package models

import "time"

// Shop 合作店铺
// PIN 以 bcrypt 哈希落库，另存 SHA-256 指纹用于查找与唯一性约束，
// 对外契约仍是「PIN 进、成功/失败出」。
type Shop struct {
	ID             uint      `gorm:"primarykey" json:"id"`                       // 主键
	Name           string    `gorm:"not null" json:"name"`                       // 店铺名称
	PINHash        string    `gorm:"not null" json:"-"`                          // PIN 的 bcrypt 哈希
	PINFingerprint string    `gorm:"uniqueIndex;not null" json:"-"`              // PIN 的 SHA-256 指纹（全局唯一）
	CreatedAt      time.Time `gorm:"index" json:"created_at"`                    // 创建时间
	UpdatedAt      time.Time `json:"updated_at"`                                 // 更新时间
}

// TableName 指定表名
func (Shop) TableName() string {
	return "shops"
}
