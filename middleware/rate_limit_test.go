package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Xushengqwer/comment_service/config"
)

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2})
	r := newTestRouter(t, RateLimitMiddleware(limiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5678"))

	// 其他 IP 有自己的令牌桶
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234"))
}

func TestIPRateLimiter_DefaultsAndCleanup(t *testing.T) {
	limiter := NewIPRateLimiter(config.RateLimitConfig{})
	l := limiter.GetLimiter("1.1.1.1")
	assert.Equal(t, 5, l.Burst())
	assert.Same(t, l, limiter.GetLimiter("1.1.1.1"))

	limiter.GetLimiter("2.2.2.2")
	limiter.mu.Lock()
	limiter.visitors["1.1.1.1"].lastSeen = time.Now().Add(-2 * visitorIdleTTL)
	limiter.mu.Unlock()

	assert.Equal(t, 1, limiter.Cleanup())
	assert.NotSame(t, l, limiter.GetLimiter("1.1.1.1"))
}
