package config

import "github.com/Xushengqwer/go-common/config"

// CommentConfig 评论服务的完整配置，由 core.LoadConfig 从 YAML 文件加载。
type CommentConfig struct {
	ZapConfig        config.ZapConfig     `mapstructure:"zapConfig" json:"zapConfig" yaml:"zapConfig"`
	GormLogConfig    config.GormLogConfig `mapstructure:"gormLogConfig" json:"gormLogConfig" yaml:"gormLogConfig"`
	ServerConfig     config.ServerConfig  `mapstructure:"serverConfig" json:"serverConfig" yaml:"serverConfig"`
	TracerConfig     config.TracerConfig  `mapstructure:"tracerConfig" json:"tracerConfig" yaml:"tracerConfig"`
	DatabaseConfig   DatabaseConfig       `mapstructure:"databaseConfig" json:"databaseConfig" yaml:"databaseConfig"`
	RedisConfig      RedisConfig          `mapstructure:"redisConfig" json:"redisConfig" yaml:"redisConfig"`
	KafkaConfig      KafkaConfig          `mapstructure:"kafkaConfig" json:"kafkaConfig" yaml:"kafkaConfig"`
	COSConfig        COSConfig            `mapstructure:"commentImagesCosConfig" json:"commentImagesCosConfig" yaml:"commentImagesCosConfig"`
	ReplyCountConfig ReplyCountConfig     `mapstructure:"replyCountConfig" json:"replyCountConfig" yaml:"replyCountConfig"`
	AuthConfig       AuthConfig           `mapstructure:"authConfig" json:"-" yaml:"authConfig"` // 不打印密钥
	CORSConfig       CORSConfig           `mapstructure:"corsConfig" json:"corsConfig" yaml:"corsConfig"`
	RateLimitConfig  RateLimitConfig      `mapstructure:"rateLimitConfig" json:"rateLimitConfig" yaml:"rateLimitConfig"`
	CacheConfig      CacheConfig          `mapstructure:"cacheConfig" json:"cacheConfig" yaml:"cacheConfig"`
}
