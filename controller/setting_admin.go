package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/models/vo"
	"github.com/Xushengqwer/comment_service/service"
)

// SettingAdminController 站点评论开关
type SettingAdminController struct {
	settingService service.SettingService
	logger         *core.ZapLogger
}

func NewSettingAdminController(settingService service.SettingService, logger *core.ZapLogger) *SettingAdminController {
	return &SettingAdminController{settingService: settingService, logger: logger}
}

// GetCommentSetting 查看评论开关
// @Summary      查看评论开关 (管理员)
// @Tags         admin-settings (管理员-设置)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} vo.CommentSettingResponseWrapper "查询成功"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/comment/admin/settings/comments [get]
func (ctrl *SettingAdminController) GetCommentSetting(c *gin.Context) {
	enabled, err := ctrl.settingService.CommentsEnabled(c.Request.Context())
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "设置不存在", "读取评论开关失败")
		return
	}
	response.RespondSuccess(c, vo.CommentSettingVO{Enabled: enabled}, "查询成功")
}

// UpdateCommentSetting 打开或关闭全站评论
// @Summary      修改评论开关 (管理员)
// @Description  关闭后公开接口对所有帖子返回空评论列表，已有评论不受影响。
// @Tags         admin-settings (管理员-设置)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateCommentSettingRequest true "开关"
// @Success      200 {object} vo.CommentSettingResponseWrapper "修改成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/comment/admin/settings/comments [put]
func (ctrl *SettingAdminController) UpdateCommentSetting(c *gin.Context) {
	var req dto.UpdateCommentSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求负载: "+err.Error())
		return
	}
	if err := ctrl.settingService.SetCommentsEnabled(c.Request.Context(), *req.Enabled); err != nil {
		respondServiceError(c, ctrl.logger, err, "设置不存在", "修改评论开关失败")
		return
	}
	response.RespondSuccess(c, vo.CommentSettingVO{Enabled: *req.Enabled}, "修改成功")
}

func (ctrl *SettingAdminController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/settings/comments", ctrl.GetCommentSetting)
	group.PUT("/settings/comments", ctrl.UpdateCommentSetting)
}
