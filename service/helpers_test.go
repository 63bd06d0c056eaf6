package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/Xushengqwer/comment_service/dependencies"
	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/models/vo"
	"github.com/Xushengqwer/comment_service/myErrors"
	"github.com/Xushengqwer/comment_service/repo/mysql"
)

func newTestLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(commonConfig.ZapConfig{})
	require.NoError(t, err)
	return logger
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "comments.db")), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dependencies.AutoMigrate(db))
	return db
}

type memTreeCache struct {
	mu          sync.Mutex
	trees       map[uint64][]*vo.CommentTreeNode
	invalidated []uint64
}

func newMemTreeCache() *memTreeCache {
	return &memTreeCache{trees: make(map[uint64][]*vo.CommentTreeNode)}
}

func (c *memTreeCache) GetPublicTree(_ context.Context, postID uint64) ([]*vo.CommentTreeNode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tree, ok := c.trees[postID]
	if !ok {
		return nil, myErrors.ErrCacheMiss
	}
	return tree, nil
}

func (c *memTreeCache) SetPublicTree(_ context.Context, postID uint64, tree []*vo.CommentTreeNode, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trees[postID] = tree
	return nil
}

func (c *memTreeCache) InvalidatePublicTree(_ context.Context, postID uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.trees, postID)
	c.invalidated = append(c.invalidated, postID)
	return nil
}

type memSettingCache struct {
	mu     sync.Mutex
	values map[string]string
	gets   int
}

func newMemSettingCache() *memSettingCache {
	return &memSettingCache{values: make(map[string]string)}
}

func (c *memSettingCache) GetSetting(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.values[key]
	if !ok {
		return "", myErrors.ErrCacheMiss
	}
	return v, nil
}

func (c *memSettingCache) SetSetting(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *memSettingCache) DeleteSetting(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

type recordingBroadcaster struct {
	mu       sync.Mutex
	approved []*vo.CommentVO
}

func (b *recordingBroadcaster) BroadcastApproved(comment *vo.CommentVO) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.approved = append(b.approved, comment)
}

func (b *recordingBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.approved)
}

type plainRenderer struct{}

func (plainRenderer) Render(content string) string { return content }

// testEnv 基于 SQLite 的完整服务组合
type testEnv struct {
	db          *gorm.DB
	logger      *core.ZapLogger
	commentRepo mysql.CommentRepository
	postRepo    mysql.PostRepository
	treeCache   *memTreeCache
	broadcaster *recordingBroadcaster
	settings    SettingService
	counter     ReplyCounter
	comments    CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	logger := newTestLogger(t)
	env := &testEnv{
		db:          db,
		logger:      logger,
		commentRepo: mysql.NewCommentRepository(db, logger),
		postRepo:    mysql.NewPostRepository(db, logger),
		treeCache:   newMemTreeCache(),
		broadcaster: &recordingBroadcaster{},
	}
	settings, err := NewSettingService(mysql.NewSiteSettingRepository(db, logger), newMemSettingCache(), 8, time.Minute, logger)
	require.NoError(t, err)
	env.settings = settings
	env.counter = NewReplyCounter(env.commentRepo, logger)
	env.comments = NewCommentService(db, env.commentRepo, env.postRepo, env.settings, env.counter, env.treeCache, nil, env.broadcaster, plainRenderer{}, logger)
	return env
}

func (e *testEnv) createPost(t *testing.T, allowComment bool) *entities.Post {
	t.Helper()
	post := &entities.Post{Title: "hello", AllowComment: allowComment}
	require.NoError(t, e.postRepo.CreatePost(context.Background(), post))
	return post
}

// insertComment 直接写库，绕过服务层校验，用于构造任意形状的评论树
func (e *testEnv) insertComment(t *testing.T, postID uint64, parentID *uint64, approved bool) *entities.Comment {
	t.Helper()
	c := &entities.Comment{
		PostID:      postID,
		ParentID:    parentID,
		AuthorName:  "tester",
		AuthorEmail: "tester@example.com",
		Content:     "content",
		IsApproved:  approved,
	}
	require.NoError(t, e.commentRepo.CreateComment(context.Background(), nil, c))
	return c
}

func ptr[T any](v T) *T { return &v }
