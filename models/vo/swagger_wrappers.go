package vo

// --- 用于成功响应且包含具体 Data 的包装器 ---

// CommentResponseWrapper 对应 response.APIResponse[vo.CommentVO]
type CommentResponseWrapper struct {
	Code    int       `json:"code" example:"0"`
	Message string    `json:"message,omitempty" example:"success"`
	Data    CommentVO `json:"data"`
}

// CommentTreeListResponseWrapper 对应 response.APIResponse[[]*vo.CommentTreeNode]
type CommentTreeListResponseWrapper struct {
	Code    int               `json:"code" example:"0"`
	Message string            `json:"message,omitempty" example:"success"`
	Data    []CommentTreeNode `json:"data"`
}

// ListCommentsResponseWrapper 对应 response.APIResponse[vo.ListCommentsResponse]
type ListCommentsResponseWrapper struct {
	Code    int                  `json:"code" example:"0"`
	Message string               `json:"message,omitempty" example:"success"`
	Data    ListCommentsResponse `json:"data"`
}

// CommentTreeResponseWrapper 对应 response.APIResponse[vo.CommentTreeResponse]
type CommentTreeResponseWrapper struct {
	Code    int                 `json:"code" example:"0"`
	Message string              `json:"message,omitempty" example:"success"`
	Data    CommentTreeResponse `json:"data"`
}

// RefreshReplyCountResponseWrapper 对应 response.APIResponse[vo.RefreshReplyCountResult]
type RefreshReplyCountResponseWrapper struct {
	Code    int                     `json:"code" example:"0"`
	Message string                  `json:"message,omitempty" example:"success"`
	Data    RefreshReplyCountResult `json:"data"`
}

// CommentStatsResponseWrapper 对应 response.APIResponse[vo.CommentStatsVO]
type CommentStatsResponseWrapper struct {
	Code    int            `json:"code" example:"0"`
	Message string         `json:"message,omitempty" example:"success"`
	Data    CommentStatsVO `json:"data"`
}

// CommentSettingResponseWrapper 对应 response.APIResponse[vo.CommentSettingVO]
type CommentSettingResponseWrapper struct {
	Code    int              `json:"code" example:"0"`
	Message string           `json:"message,omitempty" example:"success"`
	Data    CommentSettingVO `json:"data"`
}

// UploadImageResponseWrapper 对应 response.APIResponse[vo.UploadImageVO]
type UploadImageResponseWrapper struct {
	Code    int           `json:"code" example:"0"`
	Message string        `json:"message,omitempty" example:"success"`
	Data    UploadImageVO `json:"data"`
}

// --- 用于错误响应 或 简单成功响应（只有 Code 和 Message） ---

// BaseResponseWrapper 代表一个只包含 Code 和 Message 的响应。
type BaseResponseWrapper struct {
	Code    int    `json:"code" example:"0"`          // 成功时为 0, 错误时为具体错误码
	Message string `json:"message" example:"success"` // 成功或错误消息
}
