package redis

import (
	"context"
	"testing"
	"time"

	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/comment_service/models/vo"
	"github.com/Xushengqwer/comment_service/myErrors"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client, *core.ZapLogger) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	logger, err := core.NewZapLogger(commonConfig.ZapConfig{})
	require.NoError(t, err)
	return mr, client, logger
}

func TestCommentTreeCache_RoundTripAndInvalidate(t *testing.T) {
	mr, client, logger := newTestRedis(t)
	cache := NewCommentTreeCache(client, logger)
	ctx := context.Background()

	_, err := cache.GetPublicTree(ctx, 1)
	assert.ErrorIs(t, err, myErrors.ErrCacheMiss)

	tree := []*vo.CommentTreeNode{{
		CommentVO: vo.CommentVO{ID: 10, PostID: 1, AuthorName: "小明"},
		Replies:   []*vo.CommentVO{{ID: 11, PostID: 1}},
	}}
	require.NoError(t, cache.SetPublicTree(ctx, 1, tree, time.Minute))
	assert.True(t, mr.Exists("comment_tree:1"))

	got, err := cache.GetPublicTree(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(10), got[0].ID)
	require.Len(t, got[0].Replies, 1)
	assert.Equal(t, uint64(11), got[0].Replies[0].ID)

	require.NoError(t, cache.InvalidatePublicTree(ctx, 1))
	_, err = cache.GetPublicTree(ctx, 1)
	assert.ErrorIs(t, err, myErrors.ErrCacheMiss)
}

func TestCommentTreeCache_ExpiresAndCorruptIsMiss(t *testing.T) {
	mr, client, logger := newTestRedis(t)
	cache := NewCommentTreeCache(client, logger)
	ctx := context.Background()

	require.NoError(t, cache.SetPublicTree(ctx, 2, []*vo.CommentTreeNode{}, time.Minute))
	mr.FastForward(2 * time.Minute)
	_, err := cache.GetPublicTree(ctx, 2)
	assert.ErrorIs(t, err, myErrors.ErrCacheMiss)

	require.NoError(t, mr.Set("comment_tree:3", "{not json"))
	_, err = cache.GetPublicTree(ctx, 3)
	assert.ErrorIs(t, err, myErrors.ErrCacheMiss)
}

func TestCommentTreeCache_RedisDown(t *testing.T) {
	mr, client, logger := newTestRedis(t)
	cache := NewCommentTreeCache(client, logger)
	mr.Close()

	_, err := cache.GetPublicTree(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, myErrors.ErrCacheMiss)
}

func TestSettingCache(t *testing.T) {
	mr, client, logger := newTestRedis(t)
	cache := NewSettingCache(client, logger)
	ctx := context.Background()

	_, err := cache.GetSetting(ctx, "comments_enabled")
	assert.ErrorIs(t, err, myErrors.ErrCacheMiss)

	require.NoError(t, cache.SetSetting(ctx, "comments_enabled", "false", time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("site_setting:comments_enabled"))

	val, err := cache.GetSetting(ctx, "comments_enabled")
	require.NoError(t, err)
	assert.Equal(t, "false", val)

	// 空值也是有效缓存，表示数据库中没有该键
	require.NoError(t, cache.SetSetting(ctx, "comments_enabled", "", time.Minute))
	val, err = cache.GetSetting(ctx, "comments_enabled")
	require.NoError(t, err)
	assert.Equal(t, "", val)

	require.NoError(t, cache.DeleteSetting(ctx, "comments_enabled"))
	_, err = cache.GetSetting(ctx, "comments_enabled")
	assert.ErrorIs(t, err, myErrors.ErrCacheMiss)
}
