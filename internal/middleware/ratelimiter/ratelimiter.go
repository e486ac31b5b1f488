package ratelimiter

import (
	"sync"
	"time"
)

// bucket is a token bucket for a single client key.
type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// Limiter keeps one token bucket per key. Idle buckets are dropped on a later
// call once they have been unused for longer than expiration.
type Limiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	rate       float64 // tokens per second
	capacity   float64
	expiration time.Duration
	lastSweep  time.Time
	now        func() time.Time
}

// New creates a limiter refilling perMinute tokens a minute up to burst.
func New(perMinute float64, burst int, expiration time.Duration) *Limiter {
	return &Limiter{
		buckets:    make(map[string]*bucket),
		rate:       perMinute / 60,
		capacity:   float64(burst),
		expiration: expiration,
		now:        time.Now,
	}
}

// Allow takes one token from key's bucket if one is available.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, lastSeen: now}
		l.buckets[key] = b
	}

	b.tokens += now.Sub(b.lastSeen).Seconds() * l.rate
	if b.tokens > l.capacity {
		b.tokens = l.capacity
	}
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Len reports the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.expiration {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.expiration {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}
