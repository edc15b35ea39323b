package shopapi

import (
	"errors"

	"github.com/schoolbreak-next/internal/http/response"
	"github.com/schoolbreak-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ScanRequest 扫码请求
type ScanRequest struct {
	Code string `json:"code" binding:"required"`
}

// ScanCard 店铺扫码
// 返回卡片状态与本店可核销的促销视图。
func (h *Handler) ScanCard(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.ActivationService.Scan(shopID, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrScanInvalid) {
			respondError(c, response.CodeBadRequest, "error.scan_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.card_fetch_failed", err)
		return
	}
	response.Success(c, result)
}

// ValidationRequest 预检/核销请求
type ValidationRequest struct {
	CardNo      string `json:"card_no" binding:"required"`
	PromotionID uint   `json:"promotion_id" binding:"required"`
}

// VerifyPromotion 核销预检（只读）
func (h *Handler) VerifyPromotion(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	var req ValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.ActivationService.Verify(shopID, req.CardNo, req.PromotionID)
	if err != nil {
		respondValidationError(c, err)
		return
	}
	response.Success(c, result)
}

// ValidatePromotion 核销落账
func (h *Handler) ValidatePromotion(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	var req ValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.ActivationService.Validate(shopID, req.CardNo, req.PromotionID)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	requestLog(c).Infow("promotion_validation_accepted",
		"shop_id", shopID,
		"card_no", req.CardNo,
		"promotion_id", req.PromotionID,
	)
	response.Success(c, result)
}

// respondValidationError 预检与核销共用的错误映射
func respondValidationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCardNotFound):
		respondError(c, response.CodeNotFound, "error.card_not_found", nil)
	case errors.Is(err, service.ErrCardNotActive):
		respondError(c, response.CodeBadRequest, "error.card_not_active", nil)
	case errors.Is(err, service.ErrPromotionNotFound):
		respondError(c, response.CodeNotFound, "error.promotion_not_found", nil)
	case errors.Is(err, service.ErrPromotionNotEligible):
		respondError(c, response.CodeForbidden, "error.promotion_not_eligible", nil)
	case errors.Is(err, service.ErrNotActivated):
		respondError(c, response.CodeConflict, "error.promotion_not_activated", nil)
	case errors.Is(err, service.ErrAlreadyUsed):
		respondError(c, response.CodeConflict, "error.promotion_already_used", nil)
	default:
		respondError(c, response.CodeInternal, "error.validate_failed", err)
	}
}
