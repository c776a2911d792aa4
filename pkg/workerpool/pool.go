// Package workerpool runs error-returning tasks on a bounded number of
// goroutines and reports the first failure.
//
//	pool := workerpool.New(ctx, 8)
//	for _, name := range names {
//	    pool.Submit(func(ctx context.Context) error { return upload(ctx, name) })
//	}
//	err := pool.Wait()
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrPoolClosed is returned by Submit after Wait has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Task is one unit of work. ctx is cancelled once any task fails.
type Task func(ctx context.Context) error

type Pool struct {
	parent context.Context
	ctx    context.Context
	group  *errgroup.Group

	mu     sync.Mutex
	closed bool
	err    error
}

// New returns a pool running at most size tasks at once. size below 1 is
// treated as 1.
func New(ctx context.Context, size int) *Pool {
	if size < 1 {
		size = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(size)
	return &Pool{parent: ctx, ctx: gctx, group: g}
}

// Submit blocks until a slot frees up. Once the pool has failed it returns
// the first error instead, and tasks still waiting for a slot are skipped.
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	closed, err := p.closed, p.err
	p.mu.Unlock()
	if closed {
		return ErrPoolClosed
	}
	if err != nil {
		return err
	}

	p.group.Go(func() error {
		if p.ctx.Err() != nil {
			return nil
		}
		if err := run(p.ctx, task); err != nil {
			p.mu.Lock()
			if p.err == nil {
				p.err = err
			}
			p.mu.Unlock()
			return err
		}
		return nil
	})
	return nil
}

// Wait stops accepting tasks, waits for the running ones and returns the
// first error, or the parent context's error if it was cancelled. It is
// safe to call more than once.
func (p *Pool) Wait() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	if err := p.group.Wait(); err != nil {
		return err
	}
	return p.parent.Err()
}

// run turns a panicking task into an error.
func run(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("workerpool: task panicked: %v", r)
		}
	}()
	return task(ctx)
}
