package engine

import (
	"sync"
	"testing"
	"time"
)

func TestMonotonicTimeProviderAdvances(t *testing.T) {
	p := NewMonotonicTimeProvider()
	t1 := p.Now()
	time.Sleep(5 * time.Millisecond)
	if d := p.Now().Sub(t1); d < 5*time.Millisecond {
		t.Errorf("elapsed = %v, want >= 5ms", d)
	}
}

func TestMockTimeProviderAdvance(t *testing.T) {
	mock := NewMockTimeProvider(epoch)
	if !mock.Now().Equal(epoch) {
		t.Fatalf("start = %v", mock.Now())
	}

	mock.Advance(time.Second)
	if got := mock.Advance(500 * time.Millisecond); !got.Equal(epoch.Add(1500 * time.Millisecond)) {
		t.Errorf("after advances = %v", got)
	}
}

func TestMockTimeProviderConcurrentAdvance(t *testing.T) {
	mock := NewMockTimeProvider(epoch)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				mock.Advance(time.Millisecond)
				_ = mock.Now()
			}
		}()
	}
	wg.Wait()

	if got := mock.Now().Sub(epoch); got != 800*time.Millisecond {
		t.Errorf("total advance = %v, want 800ms", got)
	}
}
