package service

import "errors"

// 业务语义错误，handler 层据此映射响应码与文案
var (
	ErrNotFound           = errors.New("资源不存在")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrInvalidPassword    = errors.New("密码错误")

	ErrCardNotFound      = errors.New("卡片不存在")
	ErrCardNotActive     = errors.New("卡片尚未激活")
	ErrCardAlreadyActive = errors.New("卡片已激活")
	ErrCardInvalid       = errors.New("卡片数据无效")

	ErrPromotionNotFound    = errors.New("促销不存在")
	ErrPromotionInvalid     = errors.New("促销数据无效")
	ErrPromotionNotEligible = errors.New("促销对该卡不可用")

	ErrActivationNotRequired = errors.New("促销无需激活")
	ErrAlreadyActivated      = errors.New("促销已在该卡上激活")
	ErrNotActivated          = errors.New("促销尚未由持卡人激活")
	ErrAlreadyUsed           = errors.New("促销已在该卡上使用")

	ErrShopNotFound    = errors.New("店铺不存在")
	ErrShopInvalid     = errors.New("店铺数据无效")
	ErrShopPINConflict = errors.New("PIN 已被其他店铺使用")
	ErrShopPINInvalid  = errors.New("PIN 无效")

	ErrRequestInvalid  = errors.New("申请数据无效")
	ErrRequestNotFound = errors.New("申请不存在")

	ErrScanInvalid = errors.New("扫码内容不含卡号")

	ErrCaptchaRequired      = errors.New("需要验证码")
	ErrCaptchaInvalid       = errors.New("验证码校验失败")
	ErrCaptchaConfigInvalid = errors.New("验证码配置无效")
)
