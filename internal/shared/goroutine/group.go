// Package goroutine runs background work that must not crash the process
// and that shutdown can wait for.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/garagehq/repairshop/internal/shared/logger"
)

// Group tracks fire-and-forget goroutines. A panic in one of them is logged
// with its stack and swallowed.
type Group struct {
	wg  sync.WaitGroup
	log logger.Interface
}

func NewGroup(log logger.Interface) *Group {
	return &Group{log: log}
}

// Go runs fn in a new goroutine. name identifies it in panic logs.
func (g *Group) Go(name string, fn func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				g.log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}

// Wait blocks until every started goroutine has returned or ctx is done.
// Goroutines still running when ctx expires are left behind.
func (g *Group) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
