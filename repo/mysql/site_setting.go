package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Xushengqwer/comment_service/models/entities"
)

// SiteSettingRepository 站点键值设置的持久化
type SiteSettingRepository interface {
	// GetSetting 读取设置，键不存在时返回 commonerrors.ErrRepoNotFound。
	GetSetting(ctx context.Context, key string) (*entities.SiteSetting, error)

	// UpsertSetting 写入设置，键已存在时覆盖值。
	UpsertSetting(ctx context.Context, key, value string) error
}

type siteSettingRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewSiteSettingRepository 是 siteSettingRepository 的构造函数。
func NewSiteSettingRepository(db *gorm.DB, logger *core.ZapLogger) SiteSettingRepository {
	return &siteSettingRepository{db: db, logger: logger}
}

func (r *siteSettingRepository) GetSetting(ctx context.Context, key string) (*entities.SiteSetting, error) {
	var setting entities.SiteSetting
	err := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("读取站点设置失败", zap.Error(err), zap.String("key", key))
		return nil, err
	}
	return &setting, nil
}

func (r *siteSettingRepository) UpsertSetting(ctx context.Context, key, value string) error {
	setting := entities.SiteSetting{Key: key, Value: value, UpdatedAt: time.Now()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		r.logger.Error("写入站点设置失败", zap.Error(err), zap.String("key", key), zap.String("value", value))
		return err
	}
	r.logger.Info("站点设置已更新", zap.String("key", key), zap.String("value", value))
	return nil
}
