package userlock_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tventura/mibot/internal/userlock"
)

func TestAcquireSerializesSameUser(t *testing.T) {
	reg := userlock.NewRegistry()

	var inside atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := reg.Acquire("user-1")
			defer release()

			if n := inside.Add(1); n != 1 {
				t.Errorf("observed %d goroutines inside the critical section", n)
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
		}()
	}
	wg.Wait()

	if got := reg.Active(); got != 0 {
		t.Fatalf("Active() = %d after all releases, want 0", got)
	}
}

func TestAcquireIndependentUsers(t *testing.T) {
	reg := userlock.NewRegistry()

	releaseA := reg.Acquire("user-a")
	defer releaseA()

	acquired := make(chan struct{})
	go func() {
		release := reg.Acquire("user-b")
		defer release()
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("lock for a different user blocked behind user-a")
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	reg := userlock.NewRegistry()

	release := reg.Acquire("user-1")
	release()
	release()

	// A fresh acquire must still work after the double release.
	release2 := reg.Acquire("user-1")
	release2()

	if got := reg.Active(); got != 0 {
		t.Fatalf("Active() = %d, want 0", got)
	}
}

func TestEntriesEvictedAfterLastRelease(t *testing.T) {
	reg := userlock.NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		for _, id := range []string{"u1", "u2", "u3"} {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				release := reg.Acquire(id)
				defer release()
				time.Sleep(time.Millisecond)
			}(id)
		}
	}
	wg.Wait()

	if got := reg.Active(); got != 0 {
		t.Fatalf("Active() = %d after all work finished, want 0", got)
	}
}

func TestWaiterProceedsAfterHolderReleases(t *testing.T) {
	reg := userlock.NewRegistry()

	release := reg.Acquire("user-1")

	done := make(chan struct{})
	go func() {
		r := reg.Acquire("user-1")
		r()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("second acquire succeeded while the lock was held")
	case <-time.After(50 * time.Millisecond):
	}

	release()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("waiter never acquired the lock after release")
	}

	if got := reg.Active(); got != 0 {
		t.Fatalf("Active() = %d, want 0", got)
	}
}
