package session

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

func TestGetCoalescesConcurrentFetches(t *testing.T) {
	cache := NewCache[string]()
	var calls atomic.Int32
	release := make(chan struct{})

	fetch := func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "value", nil
	}

	const workers = 5
	results := make([]string, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.Get(context.Background(), "token", fetch)
		}(i)
	}

	// Let every worker reach the cache before the fetch resolves.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "value", results[i])
	}
}

func TestGetServesCachedValueWithoutFetching(t *testing.T) {
	cache := NewCache[int]()
	var calls atomic.Int32
	fetch := func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 7, nil
	}

	v, err := cache.Get(context.Background(), "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = cache.Get(context.Background(), "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetDoesNotCacheFailures(t *testing.T) {
	cache := NewCache[string]()
	var calls atomic.Int32
	boom := errors.New("backend down")

	fetch := func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "", boom
		}
		return "recovered", nil
	}

	_, err := cache.Get(context.Background(), "k", fetch)
	require.ErrorIs(t, err, boom)

	v, err := cache.Get(context.Background(), "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestInvalidateForcesRefetch(t *testing.T) {
	cache := NewCache[int]()
	var calls atomic.Int32
	fetch := func(ctx context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}

	v, err := cache.Get(context.Background(), "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	cache.Invalidate("k")
	_, ok := cache.Peek("k")
	assert.False(t, ok)

	v, err = cache.Get(context.Background(), "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestInvalidateAll(t *testing.T) {
	cache := NewCache[int]()
	fetch := func(ctx context.Context) (int, error) { return 1, nil }

	_, err := cache.Get(context.Background(), "a", fetch)
	require.NoError(t, err)
	_, err = cache.Get(context.Background(), "b", fetch)
	require.NoError(t, err)

	cache.InvalidateAll()
	_, ok := cache.Peek("a")
	assert.False(t, ok)
	_, ok = cache.Peek("b")
	assert.False(t, ok)
}

func TestGetHonoursCallerCancellation(t *testing.T) {
	cache := NewCache[string]()
	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	fetch := func(ctx context.Context) (string, error) {
		close(started)
		<-release
		return "late", nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := cache.Get(ctx, "k", fetch)
		done <- err
	}()

	<-started
	cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKeysAreIndependent(t *testing.T) {
	cache := NewCache[string]()
	fetchA := func(ctx context.Context) (string, error) { return "alice", nil }
	fetchB := func(ctx context.Context) (string, error) { return "bob", nil }

	a, err := cache.Get(context.Background(), "token-a", fetchA)
	require.NoError(t, err)
	b, err := cache.Get(context.Background(), "token-b", fetchB)
	require.NoError(t, err)

	assert.Equal(t, "alice", a)
	assert.Equal(t, "bob", b)

	cache.Invalidate("token-a")
	v, ok := cache.Peek("token-b")
	assert.True(t, ok)
	assert.Equal(t, "bob", v)
}
