package loop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountedRunsExactly(t *testing.T) {
	calls := 0
	l := New(Counted(10), func() { calls++ })

	require.NoError(t, l.Run(context.Background()))

	assert.Equal(t, 10, calls)
	assert.Equal(t, uint64(10), l.Frames())
}

func TestCountedZero(t *testing.T) {
	calls := 0
	l := New(Counted(0), func() { calls++ })
	require.NoError(t, l.Run(context.Background()))
	assert.Zero(t, calls)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	forever := SchedulerFunc(func(context.Context) bool { return true })
	l := New(forever, func() {
		calls++
		if calls == 3 {
			cancel()
		}
	})

	err := l.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, calls)
}

func TestNextPrecedesActivation(t *testing.T) {
	var order []string
	sched := SchedulerFunc(func(context.Context) bool {
		order = append(order, "next")
		return len(order) < 4
	})
	l := New(sched, func() { order = append(order, "activate") })

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, []string{"next", "activate", "next", "activate", "next"}, order)
}

func TestTickerStopsWithContext(t *testing.T) {
	tk := NewTicker(time.Millisecond)
	defer tk.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	calls := 0
	err := New(tk, func() { calls++ }).Run(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, calls)
}
