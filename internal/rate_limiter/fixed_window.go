package ratelimiter

import (
	"sync"
	"time"

	"github.com/skillvento/skillvento/internal/config"
	"go.uber.org/zap"
)

// FixedWindowRateLimiter counts requests per client within a fixed
// time frame. Counters reset when their window elapses.
type FixedWindowRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	cfg     config.RateLimiterConfig
	logger  *zap.SugaredLogger
}

type window struct {
	count   int
	startAt time.Time
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*window),
		cfg:     cfg,
		logger:  logger,
	}
}

// Allow reports whether the client may proceed, and if not, how long
// until its window resets.
func (rl *FixedWindowRateLimiter) Allow(clientId string) (bool, time.Duration) {
	if !rl.cfg.Enabled {
		return true, 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	w, ok := rl.clients[clientId]
	if !ok || now.Sub(w.startAt) >= rl.cfg.TimeFrame {
		rl.clients[clientId] = &window{count: 1, startAt: now}
		return true, 0
	}

	if w.count >= rl.cfg.RequestsPerTimeFrame {
		retryAfter := rl.cfg.TimeFrame - now.Sub(w.startAt)
		rl.logger.Debugf("Rate limit exceeded for client: %s", clientId)
		return false, retryAfter
	}

	w.count++
	return true, 0
}
