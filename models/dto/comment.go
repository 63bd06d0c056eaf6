package dto

import "strings"

// RequestMeta 由控制器从 HTTP 请求中采集的来源信息，不来自请求体
type RequestMeta struct {
	IP        string
	UserAgent string
}

// CreateCommentRequest 公开提交评论的请求体
// - binding 标签在控制器绑定时与服务层 Validate 中各执行一次，服务层先去除首尾空白
type CreateCommentRequest struct {
	PostID        uint64  `json:"post_id" binding:"required" example:"1"`
	ParentID      *uint64 `json:"parent_id,omitempty" binding:"omitempty,gt=0" example:"5"` // 回复某条评论时填写
	AuthorName    string  `json:"author_name" binding:"required,max=50" example:"小明"`
	AuthorEmail   string  `json:"author_email" binding:"required,max=100,comment_email" example:"xiaoming@example.com"`
	AuthorWebsite string  `json:"author_website,omitempty" binding:"omitempty,max=255,http_url" example:"https://example.com"`
	Content       string  `json:"content" binding:"required,max=1000" example:"写得很好"`
}

// Validate 去除首尾空白并校验字段，失败时返回 *myErrors.ValidationError
func (r *CreateCommentRequest) Validate() error {
	trimAll(&r.AuthorName, &r.AuthorEmail, &r.AuthorWebsite, &r.Content)
	return validateStruct(r)
}

// AdminReplyRequest 管理员回复评论的请求体，父评论 ID 取自路径
type AdminReplyRequest struct {
	AuthorName    string `json:"author_name" binding:"required,max=50" example:"站长"`
	AuthorEmail   string `json:"author_email" binding:"required,max=100,comment_email" example:"admin@example.com"`
	AuthorWebsite string `json:"author_website,omitempty" binding:"omitempty,max=255,http_url"`
	Content       string `json:"content" binding:"required,max=1000" example:"感谢留言"`
	// IsApproved 省略时默认为 true
	IsApproved *bool `json:"is_approved,omitempty"`
}

// Validate 与公开提交使用同一套规则
func (r *AdminReplyRequest) Validate() error {
	trimAll(&r.AuthorName, &r.AuthorEmail, &r.AuthorWebsite, &r.Content)
	return validateStruct(r)
}

// Approved 返回最终的审核状态
func (r *AdminReplyRequest) Approved() bool {
	if r.IsApproved == nil {
		return true
	}
	return *r.IsApproved
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
