package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/smeyjes51/ration-curator/internal/config"
	"github.com/smeyjes51/ration-curator/internal/models"
)

// defaultIdleTTL 未配置时空闲 IP 限流器的回收时间
const defaultIdleTTL = 10 * time.Minute

// ipEntry 单个 IP 的限流器及最近访问时间
type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter 限流器
type RateLimiter struct {
	globalLimiter *rate.Limiter
	ipRPS         rate.Limit
	ipBurst       int
	idleTTL       time.Duration

	mu         sync.Mutex
	ipLimiters map[string]*ipEntry
	lastSweep  time.Time
	now        func() time.Time
}

// NewRateLimiter 创建限流器
func NewRateLimiter(cfg *config.RateLimitConfig) *RateLimiter {
	idleTTL := cfg.IdleTTL
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}
	return &RateLimiter{
		globalLimiter: rate.NewLimiter(rate.Limit(cfg.GlobalRPS), cfg.Burst*2),
		ipRPS:         rate.Limit(cfg.IPRPS),
		ipBurst:       cfg.Burst,
		idleTTL:       idleTTL,
		ipLimiters:    make(map[string]*ipEntry),
		lastSweep:     time.Now(),
		now:           time.Now,
	}
}

// getIPLimiter 获取 IP 限流器, 每隔 idleTTL 回收一次空闲条目
func (rl *RateLimiter) getIPLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		rl.sweep(now)
	}

	entry, ok := rl.ipLimiters[ip]
	if !ok {
		entry = &ipEntry{limiter: rate.NewLimiter(rl.ipRPS, rl.ipBurst)}
		rl.ipLimiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep 删除超过 idleTTL 未访问的条目, 调用方需持有锁
func (rl *RateLimiter) sweep(now time.Time) {
	for ip, entry := range rl.ipLimiters {
		if now.Sub(entry.lastSeen) >= rl.idleTTL {
			delete(rl.ipLimiters, ip)
		}
	}
	rl.lastSweep = now
}

// IPRateLimit IP 限流中间件
func IPRateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 全局限流
		if !rl.globalLimiter.Allow() {
			models.AbortWithError(c, http.StatusTooManyRequests, "global rate limit exceeded, please try again later")
			return
		}

		// IP 限流
		if !rl.getIPLimiter(c.ClientIP()).Allow() {
			models.AbortWithError(c, http.StatusTooManyRequests, "ip rate limit exceeded, please try again later")
			return
		}

		c.Next()
	}
}
