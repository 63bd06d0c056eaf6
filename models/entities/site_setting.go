package entities

import "time"

// SiteSetting 站点级键值设置，例如 comments_enabled
type SiteSetting struct {
	Key       string `gorm:"primaryKey;column:setting_key;type:varchar(64)"`
	Value     string `gorm:"type:varchar(255);not null"`
	UpdatedAt time.Time
}
