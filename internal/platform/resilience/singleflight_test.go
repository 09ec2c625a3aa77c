package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGroup_Do(t *testing.T) {
	var g Group[string]
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, _ := g.Do("game-key", func() (string, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if v != "ok" {
				t.Errorf("unexpected value %q", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestGroup_Do_SharesFailure(t *testing.T) {
	var g Group[int]
	var counter int32
	wantErr := errors.New("backing store down")

	const workers = 8
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, err, _ := g.Do("same-id", func() (int, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(10 * time.Millisecond)
				return 0, wantErr
			})
			if !errors.Is(err, wantErr) {
				t.Errorf("expected shared failure, got %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestGroup_Do_RunsAgainAfterSettle(t *testing.T) {
	var g Group[string]
	var counter int32

	for i := 0; i < 2; i++ {
		if _, err, _ := g.Do("k", func() (string, error) {
			atomic.AddInt32(&counter, 1)
			return "v", nil
		}); err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}

	if got := atomic.LoadInt32(&counter); got != 2 {
		t.Fatalf("expected function to run twice after settle, got %d", got)
	}
}
