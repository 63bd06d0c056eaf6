package service

import (
	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/models/vo"
)

// toCommentVO 将实体转换为视图对象。
// withPrivate 为 true 时带上邮箱、IP、UA，仅管理端使用。
func toCommentVO(c *entities.Comment, renderer ContentRenderer, withPrivate bool) *vo.CommentVO {
	out := &vo.CommentVO{
		ID:            c.ID,
		PostID:        c.PostID,
		ParentID:      c.ParentID,
		AuthorName:    c.AuthorName,
		AuthorWebsite: c.AuthorWebsite,
		Content:       c.Content,
		ContentHTML:   renderer.Render(c.Content),
		IsApproved:    c.IsApproved,
		IsAdminReply:  c.IsAdminReply,
		ReplyCount:    c.ReplyCount,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	if withPrivate {
		out.AuthorEmail = c.AuthorEmail
		out.AuthorIP = c.AuthorIP
		out.UserAgent = c.UserAgent
	}
	return out
}

func toCommentVOs(comments []*entities.Comment, renderer ContentRenderer, withPrivate bool) []*vo.CommentVO {
	out := make([]*vo.CommentVO, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentVO(c, renderer, withPrivate))
	}
	return out
}
