package resilience

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestKeyedLock_SerializesSameKey(t *testing.T) {
	locks := NewKeyedLock()

	const workers = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock, err := locks.Lock(context.Background(), "squad-1")
			if err != nil {
				t.Errorf("lock: %v", err)
				return
			}
			defer unlock()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("expected one holder at a time, saw %d", maxSeen)
	}
	if locks.Len() != 0 {
		t.Fatalf("expected entries to be released, got %d", locks.Len())
	}
}

func TestKeyedLock_DifferentKeysDoNotBlock(t *testing.T) {
	locks := NewKeyedLock()

	unlockA, err := locks.Lock(context.Background(), "squad-a")
	if err != nil {
		t.Fatalf("lock a: %v", err)
	}
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := locks.Lock(ctx, "squad-b")
	if err != nil {
		t.Fatalf("lock b should not wait on a: %v", err)
	}
	unlockB()
}

func TestKeyedLock_ContextCancelled(t *testing.T) {
	locks := NewKeyedLock()

	unlock, err := locks.Lock(context.Background(), "squad-1")
	if err != nil {
		t.Fatalf("lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := locks.Lock(ctx, "squad-1"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	unlock()
	unlock()
	if locks.Len() != 0 {
		t.Fatalf("expected no entries after release, got %d", locks.Len())
	}
}
