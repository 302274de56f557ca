package bosun

import "sync"

// Future holds the eventual outcome of an asynchronous invocation. It is
// completed exactly once; Get blocks until then and is safe to call from any
// number of goroutines, before or after completion.
type Future[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Get waits for completion and returns the settled value. Repeated calls
// return the same pair.
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.value, f.err
}

func (f *Future[T]) complete(value T, err error) {
	f.once.Do(func() {
		f.value, f.err = value, err
		close(f.done)
	})
}
