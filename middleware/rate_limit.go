package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Xushengqwer/comment_service/config"
)

// visitorIdleTTL 超过该时长未访问的 IP 会被清理
const visitorIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter 为每个客户端 IP 维护一个令牌桶
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
}

// NewIPRateLimiter 未配置时默认每秒 1 次、突发 5 次
func NewIPRateLimiter(cfg config.RateLimitConfig) *IPRateLimiter {
	rps, burst := cfg.RequestsPerSecond, cfg.Burst
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 5
	}
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

// GetLimiter 返回 ip 对应的限流器，不存在时创建
func (rl *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Cleanup 清理空闲的 IP，由调用方定期执行
func (rl *IPRateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	removed := 0
	for ip, v := range rl.visitors {
		if time.Since(v.lastSeen) > visitorIdleTTL {
			delete(rl.visitors, ip)
			removed++
		}
	}
	return removed
}

// RateLimitMiddleware 超出限额返回 429
func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			response.RespondError(c, http.StatusTooManyRequests, response.ErrCodeClientInvalidInput, "评论提交过于频繁，请稍后再试")
			c.Abort()
			return
		}
		c.Next()
	}
}
