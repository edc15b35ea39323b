package shopapi

import (
	handlershared "github.com/schoolbreak-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func getShopID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "shop_id", "error.shop_id_invalid", "error.shop_id_type_invalid")
}
