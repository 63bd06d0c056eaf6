package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/myErrors"
)

// SettingCache 站点设置在 Redis 中的共享缓存，多实例部署时保证开关切换能尽快生效。
type SettingCache interface {
	// GetSetting 未命中时返回 myErrors.ErrCacheMiss。
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteSetting(ctx context.Context, key string) error
}

type settingCacheImpl struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
}

// NewSettingCache 是 settingCacheImpl 的构造函数。
func NewSettingCache(redisClient *redis.Client, logger *core.ZapLogger) SettingCache {
	return &settingCacheImpl{redisClient: redisClient, logger: logger}
}

func (c *settingCacheImpl) GetSetting(ctx context.Context, key string) (string, error) {
	redisKey := constant.SettingCacheKeyPrefix + key
	val, err := c.redisClient.Get(ctx, redisKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", myErrors.ErrCacheMiss
		}
		c.logger.Error("从 Redis 读取站点设置失败", zap.Error(err), zap.String("key", redisKey))
		return "", fmt.Errorf("读取站点设置缓存(key: %s)失败: %w", redisKey, err)
	}
	return val, nil
}

func (c *settingCacheImpl) SetSetting(ctx context.Context, key, value string, ttl time.Duration) error {
	redisKey := constant.SettingCacheKeyPrefix + key
	if err := c.redisClient.Set(ctx, redisKey, value, ttl).Err(); err != nil {
		c.logger.Error("写入站点设置缓存失败", zap.Error(err), zap.String("key", redisKey))
		return fmt.Errorf("写入站点设置缓存(key: %s)失败: %w", redisKey, err)
	}
	return nil
}

func (c *settingCacheImpl) DeleteSetting(ctx context.Context, key string) error {
	redisKey := constant.SettingCacheKeyPrefix + key
	if err := c.redisClient.Del(ctx, redisKey).Err(); err != nil {
		c.logger.Error("删除站点设置缓存失败", zap.Error(err), zap.String("key", redisKey))
		return fmt.Errorf("删除站点设置缓存(key: %s)失败: %w", redisKey, err)
	}
	return nil
}
