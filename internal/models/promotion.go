package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Promotion 促销活动
// shops 与 target_users 以 JSON 数组文本存储，数组成员过滤在进程内完成。
type Promotion struct {
	ID                 uint      `gorm:"primarykey" json:"id"`                          // 主键
	Title              string    `gorm:"not null" json:"title"`                         // 标题
	Description        string    `gorm:"type:text;not null" json:"description"`         // 描述
	TargetGender       string    `gorm:"not null;default:'All'" json:"target_gender"`   // 目标性别（All/Male/Female）
	TargetAgeMin       int       `gorm:"not null;default:0" json:"target_age_min"`      // 目标年龄下限（含）
	TargetAgeMax       int       `gorm:"not null;default:99" json:"target_age_max"`     // 目标年龄上限（含）
	TargetMode         string    `gorm:"not null;default:'All'" json:"target_mode"`     // 投放模式（All/Personam）
	TargetUsers        string    `gorm:"type:text" json:"target_users"`                 // 定向卡号集合（JSON 数组，Personam 模式生效）
	UsageLimit         string    `gorm:"not null;default:'Unlimited'" json:"usage_limit"` // 使用次数限制（Unlimited/Single）
	RequiresActivation bool      `gorm:"not null;default:false" json:"requires_activation"` // 是否需要用户先自助激活
	Shops              string    `gorm:"type:text" json:"shops"`                        // 适用店铺ID集合（JSON 数组，空集合表示任何店铺均不可用）
	Active             bool      `gorm:"not null;default:true" json:"active"`           // 是否启用
	CreatedAt          time.Time `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt          time.Time `json:"updated_at"`                                    // 更新时间
}

// TableName 指定表名
func (Promotion) TableName() string {
	return "promotions"
}

// ShopIDs 解析适用店铺ID集合
func (p *Promotion) ShopIDs() []uint {
	return decodeUintList(p.Shops)
}

// TargetCardNos 解析定向卡号集合
func (p *Promotion) TargetCardNos() []string {
	return decodeStringList(p.TargetUsers)
}

// EncodeUintList 将ID集合编码为 JSON 数组文本
func EncodeUintList(ids []uint) string {
	if len(ids) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

// EncodeStringList 将字符串集合编码为 JSON 数组文本
func EncodeStringList(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func decodeUintList(raw string) []uint {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	var ids []uint
	if err := json.Unmarshal([]byte(trimmed), &ids); err != nil {
		return nil
	}
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		result = append(result, id)
	}
	return result
}

func decodeStringList(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(trimmed), &values); err != nil {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		result = append(result, value)
	}
	return result
}
