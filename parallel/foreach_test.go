package parallel

import "context"
import "sync/atomic"
import "testing"

func TestForEach(t *testing.T) {
	for _, limit := range []int{-1, 0, 1, 3, 100} {
		var visited = make([]int32, 50)
		ForEach(len(visited), limit, func(i int) {
			atomic.AddInt32(&visited[i], 1)
		})
		for i, v := range visited {
			if v != 1 {
				t.Errorf("limit %d: index %d visited %d times", limit, i, v)
			}
		}
	}
	ForEach(0, 4, func(int) {
		t.Errorf("body called for zero length")
	})
}

func TestForEachLimit(t *testing.T) {
	var running, peak int32
	ForEach(40, 4, func(int) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		atomic.AddInt32(&running, -1)
	})
	if peak > 4 {
		t.Errorf("peak concurrency %d exceeds limit 4", peak)
	}
}

func TestForEachContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, limit := range []int{1, 4} {
		var calls int32
		err := ForEachContext(ctx, 10, limit, func(int) {
			atomic.AddInt32(&calls, 1)
		})
		if err != context.Canceled {
			t.Errorf("limit %d: err = %v, want context.Canceled", limit, err)
		}
		if calls != 0 {
			t.Errorf("limit %d: %d iterations ran after cancel", limit, calls)
		}
	}
}
