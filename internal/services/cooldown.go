package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cooldown limits how often a user may call an expensive operation.
type Cooldown interface {
	// Acquire reports whether userID may proceed now. A successful call
	// starts a new window for that user.
	Acquire(ctx context.Context, userID uint64) (bool, error)
}

// RedisCooldown keeps one expiring key per user so the window is shared by
// every server instance.
type RedisCooldown struct {
	client *redis.Client
	window time.Duration
	prefix string
}

// NewRedisCooldown creates a RedisCooldown with the given window.
func NewRedisCooldown(client *redis.Client, window time.Duration) *RedisCooldown {
	return &RedisCooldown{
		client: client,
		window: window,
		prefix: "onestep:recommend:",
	}
}

func (c *RedisCooldown) Acquire(ctx context.Context, userID uint64) (bool, error) {
	if c.window <= 0 {
		return true, nil
	}
	key := c.prefix + strconv.FormatUint(userID, 10)
	ok, err := c.client.SetNX(ctx, key, time.Now().Unix(), c.window).Result()
	if err != nil {
		return false, fmt.Errorf("cooldown: %w", err)
	}
	return ok, nil
}

// MemoryCooldown is the single-process fallback used when redis is not available.
// Users whose window has passed are swept out on Acquire.
type MemoryCooldown struct {
	mu        sync.Mutex
	window    time.Duration
	now       func() time.Time
	last      map[uint64]time.Time
	lastSweep time.Time
}

// NewMemoryCooldown creates a MemoryCooldown with the given window.
func NewMemoryCooldown(window time.Duration) *MemoryCooldown {
	return &MemoryCooldown{
		window: window,
		now:    time.Now,
		last:   make(map[uint64]time.Time),
	}
}

func (c *MemoryCooldown) Acquire(_ context.Context, userID uint64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.lastSweep) >= c.window {
		for id, last := range c.last {
			if now.Sub(last) >= c.window {
				delete(c.last, id)
			}
		}
		c.lastSweep = now
	}

	if last, ok := c.last[userID]; ok && now.Sub(last) < c.window {
		return false, nil
	}
	c.last[userID] = now
	return true, nil
}
