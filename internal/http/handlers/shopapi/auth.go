package shopapi

import (
	"errors"
	"time"

	"github.com/schoolbreak-next/internal/http/response"
	"github.com/schoolbreak-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ShopLoginRequest 店铺登录请求
type ShopLoginRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// ShopLoginResponse 店铺登录响应
type ShopLoginResponse struct {
	Token     string `json:"token"`
	ShopID    uint   `json:"shop_id"`
	ShopName  string `json:"shop_name"`
	ExpiresAt string `json:"expires_at"`
}

// ShopLogin 店铺 PIN 登录
func (h *Handler) ShopLogin(c *gin.Context) {
	var req ShopLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	shop, token, expiresAt, err := h.ShopAuthService.Login(req.PIN)
	if err != nil {
		if errors.Is(err, service.ErrShopPINInvalid) {
			respondError(c, response.CodeUnauthorized, "error.shop_pin_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.login_failed", err)
		return
	}

	requestLog(c).Infow("shop_login_accepted", "shop_id", shop.ID)
	response.Success(c, ShopLoginResponse{
		Token:     token,
		ShopID:    shop.ID,
		ShopName:  shop.Name,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}
