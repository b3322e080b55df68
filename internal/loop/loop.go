// Package loop drives per-frame activations from an external schedule.
package loop

import (
	"context"
	"time"
)

// Scheduler decides when the next frame happens. Next blocks until the frame
// is due and reports false when no further frames will come.
type Scheduler interface {
	Next(ctx context.Context) bool
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(ctx context.Context) bool

func (f SchedulerFunc) Next(ctx context.Context) bool {
	return f(ctx)
}

// Loop calls its activation once per scheduled frame. The schedule is the
// only thing that can stop it; the activation always runs to completion.
type Loop struct {
	sched    Scheduler
	activate func()
	frames   uint64
}

func New(sched Scheduler, activate func()) *Loop {
	return &Loop{sched: sched, activate: activate}
}

// Run activates once per frame until the scheduler stops or ctx is done.
// It returns ctx.Err() when cancelled and nil when the scheduler ran out.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.sched.Next(ctx) {
			return ctx.Err()
		}
		l.Step()
	}
}

// Step runs a single activation.
func (l *Loop) Step() {
	l.activate()
	l.frames++
}

// Frames is the number of activations so far.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Counted schedules exactly n frames back to back.
func Counted(n int) Scheduler {
	remaining := n
	return SchedulerFunc(func(ctx context.Context) bool {
		if remaining <= 0 {
			return false
		}
		remaining--
		return true
	})
}

// Ticker schedules a frame per tick of a time.Ticker.
type Ticker struct {
	t *time.Ticker
}

func NewTicker(interval time.Duration) *Ticker {
	return &Ticker{t: time.NewTicker(interval)}
}

func (t *Ticker) Next(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-t.t.C:
		return true
	}
}

func (t *Ticker) Stop() {
	t.t.Stop()
}
