package controller

import (
	"errors"
	"net/http"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/service"
)

// UploadAdminController 管理员回复用的配图
type UploadAdminController struct {
	uploadService service.UploadService
	logger        *core.ZapLogger
}

func NewUploadAdminController(uploadService service.UploadService, logger *core.ZapLogger) *UploadAdminController {
	return &UploadAdminController{uploadService: uploadService, logger: logger}
}

// UploadImage 上传配图
// @Summary      上传评论配图 (管理员)
// @Description  上传一张 jpeg / png / gif / webp 图片（不超过 5 MiB），返回可嵌入回复内容的公开地址。
// @Tags         admin-uploads (管理员-上传)
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "图片文件"
// @Success      200 {object} vo.UploadImageResponseWrapper "上传成功"
// @Failure      400 {object} vo.BaseResponseWrapper "文件缺失、过大或类型不支持"
// @Failure      503 {object} vo.BaseResponseWrapper "对象存储未配置"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/comment/admin/comments/uploads [post]
func (ctrl *UploadAdminController) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, constant.MaxUploadImageSize+1<<20)
	file, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "未能获取上传文件: "+err.Error())
		return
	}

	result, err := ctrl.uploadService.UploadImage(c.Request.Context(), file)
	if err != nil {
		if errors.Is(err, service.ErrStorageUnavailable) {
			response.RespondError(c, http.StatusServiceUnavailable, response.ErrCodeServerInternal, err.Error())
			return
		}
		respondServiceError(c, ctrl.logger, err, "文件不存在", "上传配图失败")
		return
	}
	response.RespondSuccess(c, result, "上传成功")
}

// DeleteImage 删除配图
// @Summary      删除评论配图 (管理员)
// @Tags         admin-uploads (管理员-上传)
// @Produce      json
// @Security     BearerAuth
// @Param        object_key query string true "上传时返回的 object_key"
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的对象键"
// @Failure      503 {object} vo.BaseResponseWrapper "对象存储未配置"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/comment/admin/comments/uploads [delete]
func (ctrl *UploadAdminController) DeleteImage(c *gin.Context) {
	objectKey := c.Query("object_key")
	if objectKey == "" {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "缺少 object_key")
		return
	}
	if err := ctrl.uploadService.DeleteImage(c.Request.Context(), objectKey); err != nil {
		if errors.Is(err, service.ErrStorageUnavailable) {
			response.RespondError(c, http.StatusServiceUnavailable, response.ErrCodeServerInternal, err.Error())
			return
		}
		respondServiceError(c, ctrl.logger, err, "文件不存在", "删除配图失败")
		return
	}
	response.RespondSuccess[any](c, nil, "删除成功")
}

func (ctrl *UploadAdminController) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/comments/uploads", ctrl.UploadImage)
	group.DELETE("/comments/uploads", ctrl.DeleteImage)
}
