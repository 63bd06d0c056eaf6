package config

// ReplyCountConfig 回复数修复任务相关的配置
type ReplyCountConfig struct {
	// CronSpec 是 robfig/cron 的调度表达式，为空时使用 constant.DefaultReplyCountCronSpec。
	// 两次修复之间的间隔即回复数允许的最大陈旧窗口。
	CronSpec string `mapstructure:"cronSpec" json:"cronSpec" yaml:"cronSpec"`

	// RunTimeoutSeconds 单次全量修复的超时时间（秒），为 0 时使用默认 5 分钟。
	RunTimeoutSeconds int `mapstructure:"runTimeoutSeconds" json:"runTimeoutSeconds" yaml:"runTimeoutSeconds"`

	// Disabled 为 true 时不注册定时任务，仅保留管理员手动触发与 Kafka 触发。
	Disabled bool `mapstructure:"disabled" json:"disabled" yaml:"disabled"`
}
