package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/realtime"
	"github.com/Xushengqwer/comment_service/service"
)

// CommentController 面向读者的评论接口
type CommentController struct {
	commentService service.CommentService
	gate           service.ModerationGate
	hub            *realtime.Hub
	submitLimit    gin.HandlerFunc
	logger         *core.ZapLogger
}

// NewCommentController hub 为 nil 时不注册实时推送路由；submitLimit 为 nil 时提交接口不限流
func NewCommentController(
	commentService service.CommentService,
	gate service.ModerationGate,
	hub *realtime.Hub,
	submitLimit gin.HandlerFunc,
	logger *core.ZapLogger,
) *CommentController {
	return &CommentController{
		commentService: commentService,
		gate:           gate,
		hub:            hub,
		submitLimit:    submitLimit,
		logger:         logger,
	}
}

// CreateComment 提交评论
// @Summary      提交评论
// @Description  读者提交一条评论或回复。新评论处于待审核状态，审核通过前不会公开展示。提交接口按 IP 限流。
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCommentRequest true "评论内容"
// @Success      200 {object} vo.CommentResponseWrapper "评论已提交，等待审核"
// @Failure      400 {object} vo.BaseResponseWrapper "参数校验失败或帖子已关闭评论"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子或父评论不存在"
// @Failure      429 {object} vo.BaseResponseWrapper "提交过于频繁"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/comment/comments [post]
func (ctrl *CommentController) CreateComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求负载: "+err.Error())
		return
	}

	comment, err := ctrl.commentService.CreateComment(c.Request.Context(), &req, requestMeta(c))
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "帖子或父评论不存在", "提交评论失败")
		return
	}
	response.RespondSuccess(c, comment, "评论已提交，等待审核")
}

// ListPostComments 获取帖子的公开评论树
// @Summary      获取帖子评论
// @Description  返回帖子下审核通过的评论，按顶层评论分组，每组的回复按时间正序平铺。站点关闭评论时返回空列表。
// @Tags         comments (评论)
// @Produce      json
// @Param        post_id path int true "帖子 ID"
// @Success      200 {object} vo.CommentTreeListResponseWrapper "获取成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的帖子 ID"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/comment/posts/{post_id}/comments [get]
func (ctrl *CommentController) ListPostComments(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}
	tree, err := ctrl.gate.PublicComments(c.Request.Context(), postID)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "帖子不存在", "获取评论失败")
		return
	}
	response.RespondSuccess(c, tree, "获取评论成功")
}

// LiveComments 订阅帖子新公开评论的推送
// @Summary      评论实时推送
// @Description  升级为 websocket，之后每当该帖子有评论审核通过，服务端推送 {"type":"comment.approved","data":{...}}。
// @Tags         comments (评论)
// @Param        post_id path int true "帖子 ID"
// @Success      101 "切换协议"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的帖子 ID"
// @Router       /api/v1/comment/posts/{post_id}/comments/live [get]
func (ctrl *CommentController) LiveComments(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}
	if err := ctrl.hub.Serve(c.Writer, c.Request, postID); err != nil {
		// Upgrade 失败时已经写入了 HTTP 错误响应
		ctrl.logger.Warn("websocket 升级失败", zap.Error(err), zap.Uint64("postID", postID))
	}
}

// RegisterRoutes 注册公开路由。timeout 作用于普通请求，不作用于 websocket
func (ctrl *CommentController) RegisterRoutes(group *gin.RouterGroup, timeout gin.HandlerFunc) {
	submit := []gin.HandlerFunc{timeout}
	if ctrl.submitLimit != nil {
		submit = append(submit, ctrl.submitLimit)
	}
	group.POST("/comments", append(submit, ctrl.CreateComment)...)
	group.GET("/posts/:post_id/comments", timeout, ctrl.ListPostComments)
	if ctrl.hub != nil {
		group.GET("/posts/:post_id/comments/live", ctrl.LiveComments)
	}
}
