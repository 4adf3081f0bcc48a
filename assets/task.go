package assets

import "sync"

// Task runs a loader on its own goroutine. The game loop polls it once per
// frame instead of blocking on I/O.
type Task[T any] struct {
	done chan struct{}
	once sync.Once
	val  T
	err  error
}

// Go starts fn and returns a task for its result.
func Go[T any](fn func() (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.val, t.err = fn()
	}()
	return t
}

// Done reports whether the loader has returned.
func (t *Task[T]) Done() bool {
	if t == nil {
		return false
	}
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Result returns the loader's result. It must only be called after Done
// reports true, or it blocks until then.
func (t *Task[T]) Result() (T, error) {
	<-t.done
	return t.val, t.err
}

// Take returns the result exactly once after completion. Later calls, and
// calls before completion, report ok=false.
func (t *Task[T]) Take() (val T, ok bool, err error) {
	if !t.Done() {
		return val, false, nil
	}
	t.once.Do(func() {
		val, ok, err = t.val, true, t.err
	})
	return val, ok, err
}
