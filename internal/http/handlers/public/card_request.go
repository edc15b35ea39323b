package public

import (
	"errors"

	"github.com/schoolbreak-next/internal/http/response"
	"github.com/schoolbreak-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitCardRequest 提交领卡申请
func (h *Handler) SubmitCardRequest(c *gin.Context) {
	var req service.CardRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	request, err := h.CardRequestService.Submit(req)
	if err != nil {
		if errors.Is(err, service.ErrRequestInvalid) {
			respondError(c, response.CodeBadRequest, "error.request_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.request_create_failed", err)
		return
	}

	response.Success(c, gin.H{
		"request_no": request.RequestNo,
		"status":     request.Status,
	})
}
