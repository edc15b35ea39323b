package admin

import (
	"errors"
	"strconv"

	"github.com/schoolbreak-next/internal/http/response"
	"github.com/schoolbreak-next/internal/repository"
	"github.com/schoolbreak-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminCards 获取卡片列表
func (h *Handler) GetAdminCards(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	cards, total, err := h.CardService.List(repository.CardListFilter{
		Page:              page,
		PageSize:          pageSize,
		Search:            c.Query("search"),
		BatchTag:          c.Query("batch_tag"),
		OnlyActive:        c.Query("status") == "active",
		OnlyPreRegistered: c.Query("status") == "pre_registered",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.card_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, cards, pagination)
}

// GenerateCardsRequest 批量制卡请求
type GenerateCardsRequest struct {
	Count    int    `json:"count" binding:"required"`
	BatchTag string `json:"batch_tag"`
}

// GenerateCards 批量预注册卡片
// 返回卡号与激活链接清单，供印卡厂制作二维码。
func (h *Handler) GenerateCards(c *gin.Context) {
	var req GenerateCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	cards, err := h.CardBatchService.Generate(req.Count, req.BatchTag)
	if err != nil {
		if errors.Is(err, service.ErrCardInvalid) {
			respondError(c, response.CodeBadRequest, "error.card_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.card_generate_failed", err)
		return
	}

	requestLog(c).Infow("card_batch_accepted", "count", len(cards), "batch_tag", req.BatchTag)
	response.Success(c, gin.H{
		"count": len(cards),
		"cards": cards,
	})
}

// GetAdminActivations 获取核销台账列表
func (h *Handler) GetAdminActivations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var promotionID, shopID uint
	if raw := c.Query("promotion_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		promotionID = uint(parsed)
	}
	if raw := c.Query("shop_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		shopID = uint(parsed)
	}

	records, total, err := h.ActivationService.History(repository.ActivationListFilter{
		Page:          page,
		PageSize:      pageSize,
		CardNo:        c.Query("card_no"),
		PromotionID:   promotionID,
		ShopID:        shopID,
		Actor:         c.Query("actor"),
		WithRelations: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.activation_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, records, pagination)
}
