package bot

import (
	"sync"
	"testing"
	"time"
)

func TestCooldownRemaining(t *testing.T) {
	const d = 30 * time.Second
	tr := NewCooldownTracker(d)
	t0 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	if rem := tr.Remaining("discord", t0); rem != 0 {
		t.Errorf("unseen key Remaining = %v, want 0", rem)
	}

	tr.MarkUsed("discord", t0)
	for _, elapsed := range []time.Duration{0, time.Second, 29 * time.Second, 30 * time.Second, time.Minute} {
		want := d - elapsed
		if want < 0 {
			want = 0
		}
		if rem := tr.Remaining("discord", t0.Add(elapsed)); rem != want {
			t.Errorf("Remaining after %v = %v, want %v", elapsed, rem, want)
		}
	}
}

func TestCooldownOverwrite(t *testing.T) {
	tr := NewCooldownTracker(10 * time.Second)
	t0 := time.Now()
	tr.MarkUsed("alice", t0)
	tr.MarkUsed("alice", t0.Add(5*time.Second))
	if rem := tr.Remaining("alice", t0.Add(6*time.Second)); rem != 9*time.Second {
		t.Errorf("Remaining = %v, want 9s after overwrite", rem)
	}
}

func TestCooldownKeysIndependent(t *testing.T) {
	tr := NewCooldownTracker(10 * time.Second)
	t0 := time.Now()
	tr.MarkUsed("alice", t0)
	if rem := tr.Remaining("bob", t0); rem != 0 {
		t.Errorf("bob Remaining = %v, want 0", rem)
	}
}

func TestAcquire(t *testing.T) {
	tr := NewCooldownTracker(10 * time.Second)
	t0 := time.Now()
	if rem, ok := tr.Acquire("alice", t0); !ok || rem != 0 {
		t.Fatalf("first Acquire = (%v, %v), want (0, true)", rem, ok)
	}
	if rem, ok := tr.Acquire("alice", t0.Add(4*time.Second)); ok || rem != 6*time.Second {
		t.Fatalf("second Acquire = (%v, %v), want (6s, false)", rem, ok)
	}
	if _, ok := tr.Acquire("alice", t0.Add(10*time.Second)); !ok {
		t.Fatalf("Acquire after expiry should succeed")
	}
}

// Two concurrent invocations for the same key must not both pass the check.
func TestAcquireSerializesPerKey(t *testing.T) {
	tr := NewCooldownTracker(time.Minute)
	now := time.Now()
	const n = 32
	var wg sync.WaitGroup
	passed := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := tr.Acquire("alice", now); ok {
				passed <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(passed)
	count := 0
	for range passed {
		count++
	}
	if count != 1 {
		t.Errorf("%d goroutines passed the cooldown check, want exactly 1", count)
	}
}
