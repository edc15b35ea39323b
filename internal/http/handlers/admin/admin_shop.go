package admin

import (
	"errors"
	"strconv"

	"github.com/schoolbreak-next/internal/http/response"
	"github.com/schoolbreak-next/internal/repository"
	"github.com/schoolbreak-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateShop 创建店铺
func (h *Handler) CreateShop(c *gin.Context) {
	var req service.ShopInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	shop, err := h.ShopAdminService.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShopPINConflict):
			respondError(c, response.CodeConflict, "error.shop_pin_conflict", nil)
		case errors.Is(err, service.ErrShopInvalid):
			respondError(c, response.CodeBadRequest, "error.shop_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.shop_create_failed", err)
		}
		return
	}
	response.Success(c, shop)
}

// UpdateShop 更新店铺
func (h *Handler) UpdateShop(c *gin.Context) {
	shopID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.ShopInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	shop, err := h.ShopAdminService.Update(shopID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShopNotFound):
			respondError(c, response.CodeNotFound, "error.shop_not_found", nil)
		case errors.Is(err, service.ErrShopPINConflict):
			respondError(c, response.CodeConflict, "error.shop_pin_conflict", nil)
		case errors.Is(err, service.ErrShopInvalid):
			respondError(c, response.CodeBadRequest, "error.shop_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.shop_update_failed", err)
		}
		return
	}
	response.Success(c, shop)
}

// DeleteShop 删除店铺
func (h *Handler) DeleteShop(c *gin.Context) {
	shopID, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ShopAdminService.Delete(shopID); err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			respondError(c, response.CodeNotFound, "error.shop_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.shop_delete_failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetAdminShops 获取店铺列表
func (h *Handler) GetAdminShops(c *gin.Context) {
	if c.Query("all") == "true" {
		shops, err := h.ShopAdminService.ListAll()
		if err != nil {
			respondError(c, response.CodeInternal, "error.shop_fetch_failed", err)
			return
		}
		response.Success(c, shops)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	shops, total, err := h.ShopAdminService.List(repository.ShopListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.shop_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, shops, pagination)
}
