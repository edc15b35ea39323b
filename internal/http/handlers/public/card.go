package public

import (
	"errors"

	"github.com/schoolbreak-next/internal/http/response"
	"github.com/schoolbreak-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCardStatus 查询卡片状态
// 扫码进入激活页的第一步：区分不存在、待激活、已激活。
func (h *Handler) GetCardStatus(c *gin.Context) {
	info, err := h.CardService.Status(c.Param("card_no"))
	if err != nil {
		if errors.Is(err, service.ErrCardInvalid) {
			respondError(c, response.CodeBadRequest, "error.card_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.card_fetch_failed", err)
		return
	}
	response.Success(c, info)
}

// ActivateCard 激活卡片并绑定持卡人资料
func (h *Handler) ActivateCard(c *gin.Context) {
	var req service.CardHolderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	card, err := h.CardService.Activate(c.Param("card_no"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCardNotFound):
			respondError(c, response.CodeNotFound, "error.card_not_found", nil)
		case errors.Is(err, service.ErrCardAlreadyActive):
			respondError(c, response.CodeConflict, "error.card_already_active", nil)
		case errors.Is(err, service.ErrCardInvalid):
			respondError(c, response.CodeBadRequest, "error.card_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.card_activate_failed", err)
		}
		return
	}

	requestLog(c).Infow("card_activation_accepted", "card_no", card.CardNo)
	response.Success(c, card)
}

// GetCardPromotions 列出卡片可见的促销及状态
func (h *Handler) GetCardPromotions(c *gin.Context) {
	promotions, err := h.ActivationService.ListCardPromotions(c.Param("card_no"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCardNotFound):
			respondError(c, response.CodeNotFound, "error.card_not_found", nil)
		case errors.Is(err, service.ErrCardNotActive):
			respondError(c, response.CodeBadRequest, "error.card_not_active", nil)
		default:
			respondError(c, response.CodeInternal, "error.promotion_fetch_failed", err)
		}
		return
	}
	response.Success(c, promotions)
}

// SelfActivateRequest 自助激活请求
type SelfActivateRequest struct {
	PromotionID uint `json:"promotion_id" binding:"required"`
}

// SelfActivatePromotion 持卡人自助激活促销
func (h *Handler) SelfActivatePromotion(c *gin.Context) {
	var req SelfActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.ActivationService.SelfActivate(c.Param("card_no"), req.PromotionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCardNotFound):
			respondError(c, response.CodeNotFound, "error.card_not_found", nil)
		case errors.Is(err, service.ErrCardNotActive):
			respondError(c, response.CodeBadRequest, "error.card_not_active", nil)
		case errors.Is(err, service.ErrPromotionNotFound):
			respondError(c, response.CodeNotFound, "error.promotion_not_found", nil)
		case errors.Is(err, service.ErrPromotionNotEligible):
			respondError(c, response.CodeForbidden, "error.promotion_not_eligible", nil)
		case errors.Is(err, service.ErrActivationNotRequired):
			respondError(c, response.CodeBadRequest, "error.promotion_activation_not_required", nil)
		case errors.Is(err, service.ErrAlreadyActivated):
			respondError(c, response.CodeConflict, "error.promotion_already_activated", nil)
		case errors.Is(err, service.ErrAlreadyUsed):
			respondError(c, response.CodeConflict, "error.promotion_already_used", nil)
		default:
			respondError(c, response.CodeInternal, "error.activate_failed", err)
		}
		return
	}

	response.Success(c, result)
}
