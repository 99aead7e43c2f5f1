// Package ratelimiter はクライアント単位のリクエスト頻度制限を提供します。
package ratelimiter

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Config はレート制限の設定です。
type Config struct {
	Rate            rate.Limit    // 1秒あたりの許可数
	Burst           int           // 瞬間的に許可する最大数
	CleanupInterval time.Duration // 使われなくなったエントリを掃除する間隔
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter はキー（クライアントIP）ごとにトークンバケットを持ちます。
type RateLimiter struct {
	cfg Config

	mu       sync.Mutex
	limiters map[string]*clientLimiter
	now      func() time.Time
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(cfg Config) *RateLimiter {
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}
	return &RateLimiter{
		cfg:      cfg,
		limiters: make(map[string]*clientLimiter),
		now:      time.Now,
	}
}

// Allow はキーに対するリクエストを許可するかを返します。
func (rl *RateLimiter) Allow(key string) bool {
	return rl.get(key).Allow()
}

// Len は現在保持しているキーの数です。
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if cl, ok := rl.limiters[key]; ok {
		cl.lastAccess = now
		return cl.limiter
	}
	rl.evictLocked(now)

	cl := &clientLimiter{limiter: rate.NewLimiter(rl.cfg.Rate, rl.cfg.Burst), lastAccess: now}
	rl.limiters[key] = cl
	return cl.limiter
}

// evictLocked は最終アクセスから CleanupInterval の2倍を過ぎたエントリを削除します。
func (rl *RateLimiter) evictLocked(now time.Time) {
	ttl := rl.cfg.CleanupInterval * 2
	for k, cl := range rl.limiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.limiters, k)
		}
	}
}

// Middleware はクライアントIP単位で制限し、超過時は429とRetry-Afterを返すginミドルウェアです。
func (rl *RateLimiter) Middleware(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.Allow(scope + ":" + ip) {
			slog.Warn("rate limit exceeded", "scope", scope, "remote_addr", ip)
			c.Header("Retry-After", strconv.Itoa(rl.retryAfterSeconds()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) retryAfterSeconds() int {
	if rl.cfg.Rate <= 0 || rl.cfg.Rate == rate.Inf {
		return 1
	}
	sec := int(math.Ceil(1.0 / float64(rl.cfg.Rate)))
	if sec < 1 {
		sec = 1
	}
	return sec
}
