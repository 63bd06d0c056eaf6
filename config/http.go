package config

// AuthConfig 管理员接口的 JWT 校验配置。令牌由外部认证服务签发，本服务只做校验。
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	Issuer    string `mapstructure:"issuer" yaml:"issuer"` // 为空时不校验签发方
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins" json:"allow_origins" yaml:"allow_origins"`
}

// RateLimitConfig 公开提交评论接口的按 IP 限流配置
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" json:"requests_per_second" yaml:"requests_per_second"`
	Burst             int     `mapstructure:"burst" json:"burst" yaml:"burst"`
}

// CacheConfig 本地与 Redis 缓存配置
type CacheConfig struct {
	LocalSize          int `mapstructure:"local_size" json:"local_size" yaml:"local_size"`
	SettingTTLSeconds  int `mapstructure:"setting_ttl_seconds" json:"setting_ttl_seconds" yaml:"setting_ttl_seconds"`
	TreeCacheTTLSecond int `mapstructure:"tree_cache_ttl_seconds" json:"tree_cache_ttl_seconds" yaml:"tree_cache_ttl_seconds"`
}
