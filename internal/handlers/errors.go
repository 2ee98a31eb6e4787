package handlers

import (
	"errors"
	"expense-backend/internal/services"
	"expense-backend/internal/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError 按错误分类映射状态码，未识别的错误按存储层错误处理
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.Forbidden(c, err.Error())
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("存储层错误")
		utils.InternalError(c)
	}
}

func currentUserID(c *gin.Context) uint {
	userID, _ := c.Get("user_id")
	return userID.(uint)
}
