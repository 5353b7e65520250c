package ratelimiter

import (
	"sync"
	"time"

	"github.com/narith-dev/RentSign/internal/config"
	"github.com/narith-dev/RentSign/internal/util"
	"go.uber.org/zap"
)

func NewRateLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	// For unit test
	if logger == nil {
		logger = util.NewLogger()
	}

	return NewFixedWindowLimiter(cfg, logger)
}

type window struct {
	count   int
	startAt time.Time
}

// FixedWindowRateLimiter counts requests per client in fixed time windows.
// Counters live in memory, so limits apply per process.
type FixedWindowRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	frame   time.Duration
	logger  *zap.SugaredLogger
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*window),
		limit:   cfg.RequestsPerTimeFrame,
		frame:   cfg.TimeFrame,
		logger:  logger,
	}
}

// Allow reports whether the client may proceed. When the limit is hit it
// returns the time left until the window resets.
func (rl *FixedWindowRateLimiter) Allow(clientID string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	w, ok := rl.clients[clientID]
	if !ok || now.Sub(w.startAt) >= rl.frame {
		rl.clients[clientID] = &window{count: 1, startAt: now}
		return true, 0
	}

	if w.count >= rl.limit {
		return false, rl.frame - now.Sub(w.startAt)
	}

	w.count++
	return true, 0
}

// Cleanup drops windows that ended, bounding memory on long-running
// processes. Meant to be called periodically from a goroutine.
func (rl *FixedWindowRateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for clientID, w := range rl.clients {
		if now.Sub(w.startAt) >= rl.frame {
			delete(rl.clients, clientID)
		}
	}
}
