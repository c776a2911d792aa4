package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunsEveryTask(t *testing.T) {
	pool := New(context.Background(), 4)

	var count atomic.Int64
	for i := 0; i < 100; i++ {
		require.NoError(t, pool.Submit(func(context.Context) error {
			count.Add(1)
			return nil
		}))
	}

	require.NoError(t, pool.Wait())
	assert.EqualValues(t, 100, count.Load())
}

func TestBoundedConcurrency(t *testing.T) {
	pool := New(context.Background(), 3)

	var running, peak atomic.Int64
	for i := 0; i < 30; i++ {
		require.NoError(t, pool.Submit(func(context.Context) error {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			running.Add(-1)
			return nil
		}))
	}

	require.NoError(t, pool.Wait())
	assert.LessOrEqual(t, peak.Load(), int64(3))
}

func TestFirstErrorWinsAndCancels(t *testing.T) {
	pool := New(context.Background(), 1)
	boom := errors.New("boom")

	require.NoError(t, pool.Submit(func(context.Context) error { return boom }))

	var skipped atomic.Bool
	skipped.Store(true)
	// may be rejected with boom if the first task already failed
	_ = pool.Submit(func(context.Context) error {
		skipped.Store(false)
		return nil
	})

	assert.ErrorIs(t, pool.Wait(), boom)
	assert.True(t, skipped.Load())
}

func TestPanicBecomesError(t *testing.T) {
	pool := New(context.Background(), 2)
	require.NoError(t, pool.Submit(func(context.Context) error { panic("bad task") }))

	err := pool.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad task")
}

func TestSubmitAfterWait(t *testing.T) {
	pool := New(context.Background(), 1)
	require.NoError(t, pool.Wait())
	require.NoError(t, pool.Wait())

	assert.ErrorIs(t, pool.Submit(func(context.Context) error { return nil }), ErrPoolClosed)
}

func TestParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := New(ctx, 1)
	cancel()

	assert.ErrorIs(t, pool.Wait(), context.Canceled)
}
