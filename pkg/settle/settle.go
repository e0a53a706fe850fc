// Package settle runs independent tasks concurrently and waits until every
// one of them has settled, successfully or not. Unlike errgroup, the first
// failure neither cancels nor hides the remaining tasks.
package settle

import (
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// Outcome is the settlement slot of one task.
// It must not be read before the owning Group's Wait returns.
type Outcome[T any] struct {
	Value T
	Err   error
}

// OK reports whether the task succeeded.
func (o *Outcome[T]) OK() bool { return o.Err == nil }

// Group joins a set of tasks started with Go.
// The zero value is ready to use; a Group must not be reused after Wait.
type Group struct {
	wg conc.WaitGroup
}

// Go starts fn on its own goroutine and returns the slot its outcome will be
// written to. A panic inside fn settles the slot with an error.
func Go[T any](g *Group, fn func() (T, error)) *Outcome[T] {
	out := new(Outcome[T])
	g.wg.Go(func() {
		var c panics.Catcher
		c.Try(func() {
			out.Value, out.Err = fn()
		})
		if r := c.Recovered(); r != nil {
			var zero T
			out.Value, out.Err = zero, r.AsError()
		}
	})
	return out
}

// Wait blocks until every task started on g has settled.
func (g *Group) Wait() {
	g.wg.Wait()
}
