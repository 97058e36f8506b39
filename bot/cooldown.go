package bot

import (
	"sync"
	"time"
)

// CooldownTracker rate-limits command use per key. Keys are either a fixed
// sentinel for global cooldowns (e.g. "discord") or a username for per-user
// cooldowns. Entries are created on first use and overwritten on each
// qualifying use.
type CooldownTracker struct {
	duration time.Duration

	mu       sync.Mutex
	lastUsed map[string]time.Time
}

// NewCooldownTracker creates a tracker with the given cooldown duration.
func NewCooldownTracker(d time.Duration) *CooldownTracker {
	return &CooldownTracker{
		duration: d,
		lastUsed: make(map[string]time.Time),
	}
}

// Remaining reports how long until key is ready again. An unseen key is
// always ready.
func (t *CooldownTracker) Remaining(key string, now time.Time) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remainingLocked(key, now)
}

func (t *CooldownTracker) remainingLocked(key string, now time.Time) time.Duration {
	last, ok := t.lastUsed[key]
	if !ok {
		return 0
	}
	if rem := t.duration - now.Sub(last); rem > 0 {
		return rem
	}
	return 0
}

// MarkUsed records a use of key at now, overwriting any earlier timestamp.
func (t *CooldownTracker) MarkUsed(key string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastUsed[key] = now
}

// Acquire atomically checks and marks the cooldown: if key is ready it is
// marked used at now and (0, true) is returned; otherwise the remaining wait
// is returned with false. Concurrent callers for the same key cannot both
// pass the check.
func (t *CooldownTracker) Acquire(key string, now time.Time) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if rem := t.remainingLocked(key, now); rem > 0 {
		return rem, false
	}
	t.lastUsed[key] = now
	return 0, true
}
