package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/myErrors"
	"github.com/Xushengqwer/comment_service/repo/mysql"
	"github.com/Xushengqwer/comment_service/repo/redis"
)

// SettingService 站点级评论开关。
// 读取顺序：进程内 LRU -> Redis -> 数据库；键不存在时视为开启。
type SettingService interface {
	CommentsEnabled(ctx context.Context) (bool, error)
	SetCommentsEnabled(ctx context.Context, enabled bool) error
}

type localItem struct {
	value     string
	expiresAt time.Time
}

type settingService struct {
	repo   mysql.SiteSettingRepository
	cache  redis.SettingCache
	local  *lru.Cache[string, localItem]
	ttl    time.Duration
	logger *core.ZapLogger
}

// NewSettingService 创建站点设置服务，localSize 为进程内缓存容量
func NewSettingService(
	repo mysql.SiteSettingRepository,
	cache redis.SettingCache,
	localSize int,
	ttl time.Duration,
	logger *core.ZapLogger,
) (SettingService, error) {
	if localSize <= 0 {
		localSize = 64
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	local, err := lru.New[string, localItem](localSize)
	if err != nil {
		return nil, fmt.Errorf("创建本地设置缓存失败: %w", err)
	}
	return &settingService{repo: repo, cache: cache, local: local, ttl: ttl, logger: logger}, nil
}

func (s *settingService) CommentsEnabled(ctx context.Context) (bool, error) {
	raw, err := s.get(ctx, constant.SettingCommentsEnabled)
	if err != nil {
		return false, err
	}
	if raw == "" {
		return true, nil
	}
	enabled, parseErr := strconv.ParseBool(raw)
	if parseErr != nil {
		s.logger.Warn("站点设置 comments_enabled 取值非法，按开启处理", zap.String("value", raw))
		return true, nil
	}
	return enabled, nil
}

func (s *settingService) SetCommentsEnabled(ctx context.Context, enabled bool) error {
	key := constant.SettingCommentsEnabled
	if err := s.repo.UpsertSetting(ctx, key, strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("更新评论开关失败: %w", err)
	}
	s.local.Remove(key)
	if err := s.cache.DeleteSetting(ctx, key); err != nil {
		// 缓存删除失败只会延迟生效，最长一个 TTL
		s.logger.Warn("删除评论开关缓存失败", zap.Error(err))
	}
	s.logger.Info("站点评论开关已更新", zap.Bool("enabled", enabled))
	return nil
}

// get 返回设置的原始值，键不存在时返回空字符串
func (s *settingService) get(ctx context.Context, key string) (string, error) {
	if item, ok := s.local.Get(key); ok {
		if time.Now().Before(item.expiresAt) {
			return item.value, nil
		}
		s.local.Remove(key)
	}

	val, err := s.cache.GetSetting(ctx, key)
	if err == nil {
		s.remember(key, val)
		return val, nil
	}
	if !errors.Is(err, myErrors.ErrCacheMiss) {
		s.logger.Warn("读取 Redis 站点设置失败，回源数据库", zap.Error(err), zap.String("key", key))
	}

	setting, err := s.repo.GetSetting(ctx, key)
	if err != nil && !errors.Is(err, commonerrors.ErrRepoNotFound) {
		return "", fmt.Errorf("读取站点设置(%s)失败: %w", key, err)
	}
	val = ""
	if setting != nil {
		val = setting.Value
	}

	if cacheErr := s.cache.SetSetting(ctx, key, val, s.ttl); cacheErr != nil {
		s.logger.Warn("回写站点设置缓存失败", zap.Error(cacheErr), zap.String("key", key))
	}
	s.remember(key, val)
	return val, nil
}

func (s *settingService) remember(key, val string) {
	s.local.Add(key, localItem{value: val, expiresAt: time.Now().Add(s.ttl)})
}
