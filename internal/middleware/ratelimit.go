package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTimeout = 5 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client key.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rate     rate.Limit
	burst    int
	idle     time.Duration
	done     chan struct{}
	once     sync.Once
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		rate:     rate.Limit(rps),
		burst:    burst,
		idle:     limiterIdleTimeout,
		done:     make(chan struct{}),
	}

	go rl.cleanupLoop()
	return rl
}

// Allow reports whether the client identified by key may proceed now.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	cl, exists := rl.limiters[key]
	if !exists {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastSeen = time.Now()
	rl.mu.Unlock()

	return cl.limiter.Allow()
}

// Close stops the cleanup goroutine.
func (rl *RateLimiter) Close() {
	rl.once.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.idle)
	defer ticker.Stop()
	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.evictIdle(time.Now())
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, cl := range rl.limiters {
		if now.Sub(cl.lastSeen) > rl.idle {
			delete(rl.limiters, key)
		}
	}
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}
