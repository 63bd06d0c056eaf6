package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/constants"
	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/service"
)

// CommentAdminController 管理员的评论审核与维护接口
type CommentAdminController struct {
	commentService service.CommentService
	gate           service.ModerationGate
	replyCounter   service.ReplyCounter
	adminService   service.AdminService
	logger         *core.ZapLogger
}

func NewCommentAdminController(
	commentService service.CommentService,
	gate service.ModerationGate,
	replyCounter service.ReplyCounter,
	adminService service.AdminService,
	logger *core.ZapLogger,
) *CommentAdminController {
	return &CommentAdminController{
		commentService: commentService,
		gate:           gate,
		replyCounter:   replyCounter,
		adminService:   adminService,
		logger:         logger,
	}
}

// ListComments 管理员分页查询评论
// @Summary      评论列表 (管理员)
// @Description  按审核状态与帖子筛选评论，按创建时间倒序分页，包含邮箱、IP 等私有字段。
// @Tags         admin-comments (管理员-评论)
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码，默认 1" minimum(1)
// @Param        page_size query int false "每页数量，默认 10，最大 100" minimum(1) maximum(100)
// @Param        status query string false "审核状态" Enums(all, approved, pending) default(all)
// @Param        post_id query int false "帖子 ID"
// @Success      200 {object} vo.ListCommentsResponseWrapper "查询成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Failure      401 {object} vo.BaseResponseWrapper "未认证"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/comment/admin/comments [get]
func (ctrl *CommentAdminController) ListComments(c *gin.Context) {
	var req dto.ListCommentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}
	result, err := ctrl.gate.AdminComments(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "评论不存在", "查询评论列表失败")
		return
	}
	response.RespondSuccess(c, result, "查询评论列表成功")
}

// ListCommentTree 管理员按评论树查看
// @Summary      评论树 (管理员)
// @Description  以顶层评论分页，每条顶层评论附带全部后代；status 同时作用于顶层评论与回复。
// @Tags         admin-comments (管理员-评论)
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码，默认 1" minimum(1)
// @Param        page_size query int false "每页顶层评论数量，默认 10，最大 100" minimum(1) maximum(100)
// @Param        status query string false "审核状态" Enums(all, approved, pending) default(all)
// @Param        post_id query int false "帖子 ID"
// @Success      200 {object} vo.CommentTreeResponseWrapper "查询成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Failure      401 {object} vo.BaseResponseWrapper "未认证"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/comment/admin/comments/tree [get]
func (ctrl *CommentAdminController) ListCommentTree(c *gin.Context) {
	var req dto.ListCommentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}
	result, err := ctrl.gate.AdminCommentTree(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "评论不存在", "查询评论树失败")
		return
	}
	response.RespondSuccess(c, result, "查询评论树成功")
}

// GetComment 查看单条评论
// @Summary      评论详情 (管理员)
// @Tags         admin-comments (管理员-评论)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评论 ID"
// @Success      200 {object} vo.CommentResponseWrapper "查询成功"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Router       /api/v1/comment/admin/comments/{id} [get]
func (ctrl *CommentAdminController) GetComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	comment, err := ctrl.commentService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "评论不存在", "查询评论失败")
		return
	}
	response.RespondSuccess(c, comment, "查询评论成功")
}

// ReplyComment 管理员回复评论
// @Summary      回复评论 (管理员)
// @Description  管理员回复任意评论，回复继承父评论的帖子；is_approved 省略时默认直接通过。
// @Tags         admin-comments (管理员-评论)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "父评论 ID"
// @Param        request body dto.AdminReplyRequest true "回复内容"
// @Success      200 {object} vo.CommentResponseWrapper "回复成功"
// @Failure      400 {object} vo.BaseResponseWrapper "参数校验失败"
// @Failure      404 {object} vo.BaseResponseWrapper "父评论不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/comment/admin/comments/{id}/reply [post]
func (ctrl *CommentAdminController) ReplyComment(c *gin.Context) {
	parentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AdminReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求负载: "+err.Error())
		return
	}

	reply, err := ctrl.commentService.CreateReply(c.Request.Context(), parentID, &req, requestMeta(c))
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "父评论不存在", "回复评论失败")
		return
	}
	ctrl.logger.Info("管理员回复评论", zap.String("adminID", c.GetString(string(constants.UserIDKey))), zap.Uint64("commentID", reply.ID))
	response.RespondSuccess(c, reply, "回复成功")
}

// SetApproval 审核评论
// @Summary      审核评论 (管理员)
// @Description  将待审核评论设为通过。已通过的评论不能退回待审核；对待审核评论传 false 不做任何改动，拒绝请使用删除。
// @Tags         admin-comments (管理员-评论)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评论 ID"
// @Param        request body dto.SetApprovalRequest true "审核结果"
// @Success      200 {object} vo.BaseResponseWrapper "审核成功"
// @Failure      400 {object} vo.BaseResponseWrapper "参数错误或不允许的状态变更"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/comment/admin/comments/{id}/approval [put]
func (ctrl *CommentAdminController) SetApproval(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.SetApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求负载: "+err.Error())
		return
	}

	if err := ctrl.commentService.SetApproval(c.Request.Context(), id, *req.Approved); err != nil {
		respondServiceError(c, ctrl.logger, err, "评论不存在", "审核评论失败")
		return
	}
	response.RespondSuccess[any](c, nil, "审核成功")
}

// DeleteComment 删除评论
// @Summary      删除评论 (管理员)
// @Description  删除评论及其全部后代回复，并刷新所属顶层评论的回复数。
// @Tags         admin-comments (管理员-评论)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评论 ID"
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/comment/admin/comments/{id} [delete]
func (ctrl *CommentAdminController) DeleteComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.commentService.DeleteComment(c.Request.Context(), id); err != nil {
		respondServiceError(c, ctrl.logger, err, "评论不存在", "删除评论失败")
		return
	}
	ctrl.logger.Info("管理员删除评论", zap.String("adminID", c.GetString(string(constants.UserIDKey))), zap.Uint64("commentID", id))
	response.RespondSuccess[any](c, nil, "删除成功")
}

// RefreshReplyCounts 全量刷新回复数
// @Summary      刷新回复数 (管理员)
// @Description  重新统计全部顶层评论的回复数。单条失败不会中止，失败项在 errors 中返回。
// @Tags         admin-comments (管理员-评论)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} vo.RefreshReplyCountResponseWrapper "刷新完成"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/comment/admin/comments/reply-counts/refresh [post]
func (ctrl *CommentAdminController) RefreshReplyCounts(c *gin.Context) {
	result, err := ctrl.replyCounter.RefreshAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "评论不存在", "刷新回复数失败")
		return
	}
	response.RespondSuccess(c, result, "回复数刷新完成")
}

// Stats 评论统计
// @Summary      评论统计 (管理员)
// @Tags         admin-comments (管理员-评论)
// @Produce      json
// @Security     BearerAuth
// @Param        recent query int false "最近评论条数，默认 5，最大 20"
// @Success      200 {object} vo.CommentStatsResponseWrapper "统计成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/comment/admin/comments/stats [get]
func (ctrl *CommentAdminController) Stats(c *gin.Context) {
	var req dto.CommentStatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}
	stats, err := ctrl.adminService.Stats(c.Request.Context(), req.Recent)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "评论不存在", "统计评论失败")
		return
	}
	response.RespondSuccess(c, stats, "统计成功")
}

// RegisterRoutes 注册管理员路由，调用方负责在 group 上挂载鉴权中间件
func (ctrl *CommentAdminController) RegisterRoutes(group *gin.RouterGroup) {
	comments := group.Group("/comments")
	{
		comments.GET("", ctrl.ListComments)
		comments.GET("/tree", ctrl.ListCommentTree)
		comments.GET("/stats", ctrl.Stats)
		comments.POST("/reply-counts/refresh", ctrl.RefreshReplyCounts)
		comments.GET("/:id", ctrl.GetComment)
		comments.POST("/:id/reply", ctrl.ReplyComment)
		comments.PUT("/:id/approval", ctrl.SetApproval)
		comments.DELETE("/:id", ctrl.DeleteComment)
	}
}
