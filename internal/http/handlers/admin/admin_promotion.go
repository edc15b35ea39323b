package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/schoolbreak-next/internal/http/response"
	"github.com/schoolbreak-next/internal/repository"
	"github.com/schoolbreak-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePromotion 创建促销
func (h *Handler) CreatePromotion(c *gin.Context) {
	var req service.PromotionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	promotion, err := h.PromotionAdminService.Create(req)
	if err != nil {
		if errors.Is(err, service.ErrPromotionInvalid) {
			respondError(c, response.CodeBadRequest, "error.promotion_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.promotion_create_failed", err)
		return
	}
	response.Success(c, promotion)
}

// UpdatePromotion 更新促销
func (h *Handler) UpdatePromotion(c *gin.Context) {
	promotionID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.PromotionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	promotion, err := h.PromotionAdminService.Update(promotionID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPromotionNotFound):
			respondError(c, response.CodeNotFound, "error.promotion_not_found", nil)
		case errors.Is(err, service.ErrPromotionInvalid):
			respondError(c, response.CodeBadRequest, "error.promotion_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.promotion_update_failed", err)
		}
		return
	}
	response.Success(c, promotion)
}

// SetPromotionActiveRequest 启停促销请求
type SetPromotionActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetPromotionActive 启用/停用促销
func (h *Handler) SetPromotionActive(c *gin.Context) {
	promotionID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req SetPromotionActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	promotion, err := h.PromotionAdminService.SetActive(promotionID, *req.Active)
	if err != nil {
		if errors.Is(err, service.ErrPromotionNotFound) {
			respondError(c, response.CodeNotFound, "error.promotion_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.promotion_update_failed", err)
		return
	}
	response.Success(c, promotion)
}

// DeletePromotion 删除促销
func (h *Handler) DeletePromotion(c *gin.Context) {
	promotionID, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.PromotionAdminService.Delete(promotionID); err != nil {
		if errors.Is(err, service.ErrPromotionNotFound) {
			respondError(c, response.CodeNotFound, "error.promotion_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.promotion_delete_failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetAdminPromotion 获取促销详情
func (h *Handler) GetAdminPromotion(c *gin.Context) {
	promotionID, ok := parseIDParam(c)
	if !ok {
		return
	}
	promotion, err := h.PromotionAdminService.Get(promotionID)
	if err != nil {
		if errors.Is(err, service.ErrPromotionNotFound) {
			respondError(c, response.CodeNotFound, "error.promotion_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.promotion_fetch_failed", err)
		return
	}
	response.Success(c, promotion)
}

// GetAdminPromotions 获取促销列表
func (h *Handler) GetAdminPromotions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var active *bool
	if raw := c.Query("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		active = &parsed
	}

	promotions, total, err := h.PromotionAdminService.List(repository.PromotionListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     c.Query("search"),
		Active:     active,
		TargetMode: strings.TrimSpace(c.Query("target_mode")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.promotion_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, promotions, pagination)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return 0, false
	}
	return uint(id), true
}
