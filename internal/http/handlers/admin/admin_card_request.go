package admin

import (
	"errors"
	"strconv"

	"github.com/schoolbreak-next/internal/http/response"
	"github.com/schoolbreak-next/internal/repository"
	"github.com/schoolbreak-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminCardRequests 获取领卡申请列表
func (h *Handler) GetAdminCardRequests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	requests, total, err := h.CardRequestService.List(repository.CardRequestListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.request_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, requests, pagination)
}

// HandleCardRequest 标记领卡申请已处理
func (h *Handler) HandleCardRequest(c *gin.Context) {
	requestID, ok := parseIDParam(c)
	if !ok {
		return
	}
	request, err := h.CardRequestService.MarkHandled(requestID)
	if err != nil {
		if errors.Is(err, service.ErrRequestNotFound) {
			respondError(c, response.CodeNotFound, "error.request_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, request)
}
