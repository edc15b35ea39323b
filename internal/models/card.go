package models

import (
	"strings"
	"time"
)

// Card 会员卡
// 预注册时仅有卡号，激活后绑定持卡人信息；卡片永不删除。
type Card struct {
	ID          uint       `gorm:"primarykey" json:"id"`                // 主键
	CardNo      string     `gorm:"uniqueIndex;not null" json:"card_no"` // 卡号（如 SB-0001，全局唯一且不可变）
	Name        string     `gorm:"not null;default:''" json:"name"`     // 持卡人名
	Surname     string     `gorm:"not null;default:''" json:"surname"`  // 持卡人姓
	Age         int        `gorm:"not null;default:0" json:"age"`       // 年龄
	Gender      string     `gorm:"not null;default:''" json:"gender"`   // 性别（Male/Female/Other）
	Email       string     `gorm:"not null;default:''" json:"email"`    // 邮箱
	Phone       string     `gorm:"not null;default:''" json:"phone"`    // 电话
	BatchTag    string     `gorm:"index;default:''" json:"batch_tag"`   // 批次标记（批量生成时写入）
	ActivatedAt *time.Time `gorm:"index" json:"activated_at"`           // 激活时间
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`             // 创建时间
	UpdatedAt   time.Time  `json:"updated_at"`                          // 更新时间
}

// TableName 指定表名
func (Card) TableName() string {
	return "cards"
}

// IsActive 判断卡片是否已绑定持卡人
// 姓名非空即视为已激活，激活后不允许二次覆盖。
func (c *Card) IsActive() bool {
	if c == nil {
		return false
	}
	return strings.TrimSpace(c.Name) != "" && strings.TrimSpace(c.Surname) != ""
}
