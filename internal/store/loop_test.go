package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-file-manager/internal/model"
)

func startLoop(t *testing.T) (*Loop, context.CancelFunc) {
	t.Helper()

	s, err := New(8)
	require.NoError(t, err)

	loop := NewLoop(s)
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-loop.Done()
	})

	return loop, cancel
}

func TestLoopSerialisesConcurrentWriters(t *testing.T) {
	t.Parallel()

	loop, _ := startLoop(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := loop.Do(ctx, func(s *Store) {
				s.Add(model.Entry{ID: fmt.Sprintf("entry-%d", n)})
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	var count int
	require.NoError(t, loop.Do(ctx, func(s *Store) { count = s.Len() }))
	require.Equal(t, 50, count)
}

func TestLoopPostRunsInOrder(t *testing.T) {
	t.Parallel()

	loop, _ := startLoop(t)

	require.True(t, loop.Post(func(s *Store) { s.Add(model.Entry{ID: "one"}) }))
	require.True(t, loop.Post(func(s *Store) { s.Add(model.Entry{ID: "two"}) }))

	var snapshot []model.Entry
	require.NoError(t, loop.Do(context.Background(), func(s *Store) { snapshot = s.Snapshot() }))
	require.Len(t, snapshot, 2)
	require.Equal(t, "one", snapshot[0].ID)
	require.Equal(t, "two", snapshot[1].ID)
}

func TestLoopRecoversFromPanics(t *testing.T) {
	t.Parallel()

	loop, _ := startLoop(t)
	ctx := context.Background()

	err := loop.Do(ctx, func(*Store) { panic("boom") })
	require.ErrorContains(t, err, "boom")

	require.NoError(t, loop.Do(ctx, func(s *Store) { s.Add(model.Entry{ID: "after"}) }))
}

func TestLoopStopped(t *testing.T) {
	t.Parallel()

	loop, cancel := startLoop(t)
	cancel()
	<-loop.Done()

	require.ErrorIs(t, loop.Do(context.Background(), func(*Store) {}), model.ErrLoopStopped)
	require.False(t, loop.Post(func(*Store) {}))
}

func TestLoopDoHonoursContextBeforeAcceptance(t *testing.T) {
	t.Parallel()

	s, err := New(1)
	require.NoError(t, err)
	loop := NewLoop(s)

	// Fill the queue while nothing drains it.
	for i := 0; i < cap(loop.ops); i++ {
		require.True(t, loop.Post(func(*Store) {}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, loop.Do(ctx, func(*Store) {}), context.DeadlineExceeded)
}
