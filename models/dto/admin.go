package dto

import (
	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/myErrors"
)

// ListCommentsRequest 管理员分页查询评论（平铺列表与评论树共用）
type ListCommentsRequest struct {
	// 页码，从 1 开始，默认 1
	Page int `form:"page" json:"page"`
	// 每页大小，默认 10，最大 100
	PageSize int `form:"page_size" json:"page_size"`
	// 审核状态筛选，默认 all
	Status string `form:"status" json:"status" binding:"omitempty,oneof=all approved pending" enums:"all,approved,pending"`
	// 按帖子筛选，可选
	PostID *uint64 `form:"post_id" json:"post_id,omitempty"`
}

// Normalize 填充默认值并校验状态取值
func (r *ListCommentsRequest) Normalize() error {
	if r.Page <= 0 {
		r.Page = constant.DefaultPage
	}
	if r.PageSize <= 0 {
		r.PageSize = constant.DefaultPageSize
	}
	if r.PageSize > constant.MaxPageSize {
		r.PageSize = constant.MaxPageSize
	}
	switch r.Status {
	case "":
		r.Status = constant.StatusAll
	case constant.StatusAll, constant.StatusApproved, constant.StatusPending:
	default:
		return myErrors.NewValidationError("status", "取值只能是 all / approved / pending")
	}
	return nil
}

// SetApprovalRequest 审核评论的请求体
type SetApprovalRequest struct {
	Approved *bool `json:"approved" binding:"required" example:"true"`
}

// UpdateCommentSettingRequest 站点评论开关
type UpdateCommentSettingRequest struct {
	Enabled *bool `json:"enabled" binding:"required" example:"true"`
}

// CommentStatsRequest 统计接口参数
type CommentStatsRequest struct {
	Recent int `form:"recent" json:"recent"` // 最近评论条数，默认 5，最大 20
}
