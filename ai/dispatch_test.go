package ai

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherReturnsResult(t *testing.T) {
	d := NewDispatcher(2, time.Second)

	out, err := d.Call(context.Background(), func(ctx context.Context) (string, error) {
		return "hello", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestDispatcherWrapsVendorError(t *testing.T) {
	d := NewDispatcher(2, time.Second)

	_, err := d.Call(context.Background(), func(ctx context.Context) (string, error) {
		return "", errors.New("boom")
	})
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestDispatcherTimeout(t *testing.T) {
	d := NewDispatcher(2, 50*time.Millisecond)

	start := time.Now()
	_, err := d.Call(context.Background(), func(ctx context.Context) (string, error) {
		select {
		case <-time.After(5 * time.Second):
			return "too late", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Less(t, time.Since(start), time.Second, "timeout should fire fast")
}

func TestDispatcherBoundsConcurrency(t *testing.T) {
	const workers = 2
	d := NewDispatcher(workers, 5*time.Second)

	var inFlight, peak int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = d.Call(context.Background(), func(ctx context.Context) (string, error) {
				n := atomic.AddInt32(&inFlight, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
				return "ok", nil
			})
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(workers))
}

func TestDispatcherLateResultIsDiscarded(t *testing.T) {
	d := NewDispatcher(1, 30*time.Millisecond)

	var finished int32
	_, err := d.Call(context.Background(), func(ctx context.Context) (string, error) {
		// ignora o cancelamento de propósito: simula vendor lento
		time.Sleep(100 * time.Millisecond)
		atomic.StoreInt32(&finished, 1)
		return "stale", nil
	})
	require.True(t, errors.Is(err, ErrUnavailable))

	// a goroutine termina e escreve no canal bufferizado sem travar;
	// o slot volta a ficar livre para a próxima chamada
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&finished) == 1
	}, time.Second, 10*time.Millisecond)

	out, err := d.Call(context.Background(), func(ctx context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", out)
}
