// Package throttle holds the attempt counters behind the login throttle.
package throttle

import (
	"context"
	"sync"
	"time"
)

// MemoryCounter is process-local. Its state is lost on restart.
// Attempts older than retention are swept from every key at most once per retention period.
type MemoryCounter struct {
	mu        sync.Mutex
	attempts  map[string][]time.Time
	retention time.Duration
	lastSweep time.Time
}

func NewMemoryCounter(retention time.Duration) *MemoryCounter {
	return &MemoryCounter{attempts: make(map[string][]time.Time), retention: retention}
}

func (c *MemoryCounter) Recent(_ context.Context, key string, since time.Time) ([]time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := prune(c.attempts[key], since)
	if len(kept) == 0 {
		delete(c.attempts, key)
		return nil, nil
	}
	c.attempts[key] = kept

	out := make([]time.Time, len(kept))
	copy(out, kept)
	return out, nil
}

func (c *MemoryCounter) Add(_ context.Context, key string, at time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.attempts[key]
	i := len(list)
	for i > 0 && list[i-1].After(at) {
		i--
	}
	list = append(list, time.Time{})
	copy(list[i+1:], list[i:])
	list[i] = at
	c.attempts[key] = list

	c.sweep(at)
	return nil
}

// Keys reports how many keys are tracked.
func (c *MemoryCounter) Keys() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.attempts)
}

// sweep must be called with mu held.
func (c *MemoryCounter) sweep(now time.Time) {
	if c.retention <= 0 || now.Sub(c.lastSweep) < c.retention {
		return
	}
	c.lastSweep = now

	cutoff := now.Add(-c.retention)
	for key, list := range c.attempts {
		kept := prune(list, cutoff)
		if len(kept) == 0 {
			delete(c.attempts, key)
			continue
		}
		c.attempts[key] = kept
	}
}

func (c *MemoryCounter) Clear(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.attempts, key)
	return nil
}

func prune(list []time.Time, since time.Time) []time.Time {
	i := 0
	for i < len(list) && list[i].Before(since) {
		i++
	}
	return list[i:]
}
