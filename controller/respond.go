package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/myErrors"
)

// respondServiceError 把服务层错误映射为统一响应：
// 参数错误 400，资源不存在 404，其余 500（内部细节只写日志，不返回给客户端）。
func respondServiceError(c *gin.Context, logger *core.ZapLogger, err error, notFoundMsg, failMsg string) {
	var vErr *myErrors.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, vErr.Error())
	case errors.Is(err, commonerrors.ErrRepoNotFound):
		response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, notFoundMsg)
	default:
		logger.Error(failMsg, zap.Error(err), zap.String("path", c.FullPath()))
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, failMsg)
	}
}

// parseIDParam 解析路径中的正整数 ID，失败时已写入 400 响应
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的 "+name)
		return 0, false
	}
	return id, true
}

func requestMeta(c *gin.Context) dto.RequestMeta {
	return dto.RequestMeta{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}
