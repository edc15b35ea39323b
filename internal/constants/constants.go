package constants

// 持卡人性别常量
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// 促销目标性别常量（All 表示不限性别）
const (
	TargetGenderAll    = "All"
	TargetGenderMale   = "Male"
	TargetGenderFemale = "Female"
)

// 促销投放模式常量
const (
	TargetModeAll      = "All"
	TargetModePersonam = "Personam"
)

// 促销使用次数限制常量
const (
	UsageLimitUnlimited = "Unlimited"
	UsageLimitSingle    = "Single"
)

// 核销台账操作方常量
const (
	ActivationActorUser = "user"
	ActivationActorShop = "shop"
)

// 卡片状态常量
const (
	CardStatusNotFound      = "not_found"
	CardStatusPreRegistered = "pre_registered"
	CardStatusActive        = "active"
)

// 促销在单张卡片上的状态常量
const (
	PromotionStatusPendingActivation = "pending_activation"
	PromotionStatusReady             = "ready"
	PromotionStatusConsumed          = "consumed"
)

// 卡片申请状态常量
const (
	CardRequestStatusPending = "pending"
	CardRequestStatusHandled = "handled"
)

// 验证码场景常量
const (
	CaptchaSceneAdminLogin = "admin_login"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// ValidGender 判断持卡人性别取值是否合法
func ValidGender(gender string) bool {
	switch gender {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ValidTargetGender 判断促销目标性别取值是否合法
func ValidTargetGender(gender string) bool {
	switch gender {
	case TargetGenderAll, TargetGenderMale, TargetGenderFemale:
		return true
	}
	return false
}

// ValidTargetMode 判断促销投放模式取值是否合法
func ValidTargetMode(mode string) bool {
	switch mode {
	case TargetModeAll, TargetModePersonam:
		return true
	}
	return false
}

// ValidUsageLimit 判断促销使用次数限制取值是否合法
func ValidUsageLimit(limit string) bool {
	switch limit {
	case UsageLimitUnlimited, UsageLimitSingle:
		return true
	}
	return false
}
