package models

import "time"

// CardRequest 领卡申请
// 用户在线提交资料，线下领取实体卡后由管理员标记处理。
type CardRequest struct {
	ID        uint      `gorm:"primarykey" json:"id"`                       // 主键
	RequestNo string    `gorm:"uniqueIndex;not null" json:"request_no"`     // 申请编号
	Name      string    `gorm:"not null" json:"name"`                       // 名
	Surname   string    `gorm:"not null" json:"surname"`                    // 姓
	Age       int       `gorm:"not null" json:"age"`                        // 年龄
	Gender    string    `gorm:"not null" json:"gender"`                     // 性别
	Email     string    `gorm:"not null" json:"email"`                      // 邮箱
	Phone     string    `gorm:"default:''" json:"phone"`                    // 电话
	Status    string    `gorm:"index;not null;default:'pending'" json:"status"` // 状态（pending/handled）
	CreatedAt time.Time `gorm:"index" json:"created_at"`                    // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                 // 更新时间
}

// TableName 指定表名
func (CardRequest) TableName() string {
	return "card_requests"
}
