package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/Xushengqwer/go-common/core"
	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/repo/mysql"
	"github.com/Xushengqwer/comment_service/service"
)

// approveRatio 大约这个比例的读者评论会被审核通过
const approveRatio = 0.7

// seedMeta 种子数据统一使用的来源信息
var seedMeta = dto.RequestMeta{IP: "127.0.0.1", UserAgent: "comment-seeder/1.0"}

func fakeCommentRequest(postID uint64, parentID *uint64) *dto.CreateCommentRequest {
	req := &dto.CreateCommentRequest{
		PostID:      postID,
		ParentID:    parentID,
		AuthorName:  gofakeit.Name(),
		AuthorEmail: gofakeit.Email(),
		Content:     gofakeit.Sentence(gofakeit.Number(5, 40)),
	}
	if gofakeit.Bool() {
		req.AuthorWebsite = gofakeit.URL()
	}
	return req
}

// Seed 为每篇帖子生成一组评论线程：顶层评论、读者之间的多级回复以及管理员回复。
// 帖子之间并发处理，同一帖子内按顺序写入，保证回复总在父评论之后创建。
func Seed(ctx context.Context, postRepo mysql.PostRepository, commentSvc service.CommentService, logger *core.ZapLogger, numPosts, commentsPerPost int) {
	logger.Info("开始填充测试数据 (通过服务层)...", zap.Int("posts", numPosts))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 10)

	for i := 0; i < numPosts; i++ {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(index int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			post := &entities.Post{
				Title:        gofakeit.Sentence(gofakeit.Number(3, 8)),
				AllowComment: gofakeit.Number(1, 10) > 1,
			}
			if err := postRepo.CreatePost(ctx, post); err != nil {
				logger.Error(fmt.Sprintf("创建帖子 %d/%d 失败", index+1, numPosts), zap.Error(err))
				return
			}
			if !post.AllowComment {
				logger.Info("帖子已关闭评论，跳过", zap.Uint64("post_id", post.ID))
				return
			}
			created := seedThread(ctx, commentSvc, logger, post.ID, commentsPerPost)
			logger.Info(fmt.Sprintf("帖子 %d/%d 填充完成", index+1, numPosts), zap.Uint64("post_id", post.ID), zap.Int("comments", created))
		}(i)
	}

	wg.Wait()
	logger.Info("测试数据填充完毕 (通过服务层)。")
}

func seedThread(ctx context.Context, commentSvc service.CommentService, logger *core.ZapLogger, postID uint64, topLevel int) int {
	// 已创建的评论 ID，新回复从中随机挑选父评论，从而形成多级嵌套
	ids := make([]uint64, 0, topLevel*3)
	create := func(parentID *uint64) {
		c, err := commentSvc.CreateComment(ctx, fakeCommentRequest(postID, parentID), seedMeta)
		if err != nil {
			logger.Warn("创建评论失败", zap.Error(err), zap.Uint64("post_id", postID))
			return
		}
		ids = append(ids, c.ID)
		if gofakeit.Float64() < approveRatio {
			if err := commentSvc.SetApproval(ctx, c.ID, true); err != nil {
				logger.Warn("审核评论失败", zap.Error(err), zap.Uint64("comment_id", c.ID))
			}
		}
	}

	for i := 0; i < topLevel; i++ {
		create(nil)
	}
	replies := gofakeit.Number(0, topLevel*2)
	for i := 0; i < replies && len(ids) > 0; i++ {
		parent := ids[gofakeit.Number(0, len(ids)-1)]
		create(&parent)
	}

	// 管理员回复若干评论
	for i := 0; i < topLevel/3 && len(ids) > 0; i++ {
		parent := ids[gofakeit.Number(0, len(ids)-1)]
		reply := &dto.AdminReplyRequest{
			AuthorName:  "站长",
			AuthorEmail: "admin@example.com",
			Content:     "谢谢你的留言！" + gofakeit.Sentence(gofakeit.Number(3, 10)),
		}
		c, err := commentSvc.CreateReply(ctx, parent, reply, seedMeta)
		if err != nil {
			logger.Warn("创建管理员回复失败", zap.Error(err), zap.Uint64("parent_id", parent))
			continue
		}
		ids = append(ids, c.ID)
	}
	return len(ids)
}
