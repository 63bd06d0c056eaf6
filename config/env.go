package config

import "os"

// 可以通过环境变量（或 .env 文件）覆盖的敏感配置
const (
	EnvJWTSecret    = "COMMENT_JWT_SECRET"
	EnvDatabaseDSN  = "COMMENT_DATABASE_DSN"
	EnvRedisPass    = "COMMENT_REDIS_PASSWORD"
	EnvCOSSecretID  = "COMMENT_COS_SECRET_ID"
	EnvCOSSecretKey = "COMMENT_COS_SECRET_KEY"
)

// ApplyEnvOverrides 用非空的环境变量覆盖 YAML 中的同名配置
func (c *CommentConfig) ApplyEnvOverrides() {
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	override(&c.AuthConfig.JWTSecret, EnvJWTSecret)
	override(&c.DatabaseConfig.Write.DSN, EnvDatabaseDSN)
	override(&c.RedisConfig.Password, EnvRedisPass)
	override(&c.COSConfig.SecretID, EnvCOSSecretID)
	override(&c.COSConfig.SecretKey, EnvCOSSecretKey)
}
