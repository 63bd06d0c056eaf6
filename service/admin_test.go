package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.createPost(t, true)

	root := env.insertComment(t, post.ID, nil, true)
	env.insertComment(t, post.ID, &root.ID, false)
	env.insertComment(t, post.ID, &root.ID, true)
	latest := env.insertComment(t, post.ID, nil, false)

	svc := NewAdminService(env.commentRepo, plainRenderer{}, env.logger)
	stats, err := svc.Stats(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.Approved)
	assert.Equal(t, int64(2), stats.Pending)
	assert.Equal(t, int64(2), stats.TopLevel)
	assert.Equal(t, int64(2), stats.Replies)
	require.Len(t, stats.Recent, 4)
	assert.Equal(t, latest.ID, stats.Recent[0].ID)

	stats, err = svc.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, stats.Recent, 1)
}
