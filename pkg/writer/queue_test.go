package writer

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestQueue_AppliesJobsInOrder(t *testing.T) {
	q := New(Config{QueueSize: 16})
	defer q.Close()

	var mu sync.Mutex
	var applied []int

	for i := 0; i < 10; i++ {
		i := i
		err := q.Enqueue(Job{
			Name: "job",
			Run: func() error {
				mu.Lock()
				applied = append(applied, i)
				mu.Unlock()
				return nil
			},
		})
		if err != nil {
			t.Fatalf("Enqueue failed: %v", err)
		}
	}

	if err := q.Flush(time.Second); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(applied) != 10 {
		t.Fatalf("Expected 10 applied jobs, got %d", len(applied))
	}
	for i, v := range applied {
		if v != i {
			t.Fatalf("Jobs applied out of order: %v", applied)
		}
	}
}

func TestQueue_CountsFailures(t *testing.T) {
	q := New(Config{QueueSize: 4})
	defer q.Close()

	q.Enqueue(Job{Name: "ok", Run: func() error { return nil }})
	q.Enqueue(Job{Name: "bad", Run: func() error { return errors.New("boom") }})

	if err := q.Flush(time.Second); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	stats := q.Stats()
	if stats.TotalJobs != 2 {
		t.Errorf("Expected 2 total jobs, got %d", stats.TotalJobs)
	}
	if stats.FailedJobs != 1 {
		t.Errorf("Expected 1 failed job, got %d", stats.FailedJobs)
	}
}

func TestQueue_CloseDrains(t *testing.T) {
	q := New(Config{QueueSize: 32})

	var applied int64
	for i := 0; i < 20; i++ {
		q.Enqueue(Job{
			Name: "job",
			Run: func() error {
				atomic.AddInt64(&applied, 1)
				return nil
			},
		})
	}

	if err := q.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if n := atomic.LoadInt64(&applied); n != 20 {
		t.Errorf("Expected all 20 jobs applied before Close returns, got %d", n)
	}
}

func TestQueue_EnqueueAfterClose(t *testing.T) {
	q := New(Config{})
	q.Close()

	err := q.Enqueue(Job{Name: "late", Run: func() error { return nil }})
	if !errors.Is(err, ErrQueueClosed) {
		t.Errorf("Expected ErrQueueClosed, got %v", err)
	}
}

func TestQueue_FlushTimeout(t *testing.T) {
	q := New(Config{QueueSize: 4})
	defer q.Close()

	release := make(chan struct{})
	q.Enqueue(Job{
		Name: "slow",
		Run: func() error {
			<-release
			return nil
		},
	})

	err := q.Flush(20 * time.Millisecond)
	if !errors.Is(err, ErrFlushTimeout) {
		t.Errorf("Expected ErrFlushTimeout, got %v", err)
	}
	close(release)
}
