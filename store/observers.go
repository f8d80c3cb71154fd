package store

import "sync"

// observers is the subscription list shared by the stores. Listeners run
// synchronously, in subscription order, on the goroutine that changed the
// state, so every change is visible to all observers before the mutating
// call returns.
type observers[S any] struct {
	mu      sync.Mutex
	nextID  int
	entries []observer[S]
}

type observer[S any] struct {
	id int
	fn func(S)
}

// add registers fn and returns a function that removes it.
func (o *observers[S]) add(fn func(S)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.nextID++
	id := o.nextID
	o.entries = append(o.entries, observer[S]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			for i, e := range o.entries {
				if e.id == id {
					o.entries = append(o.entries[:i:i], o.entries[i+1:]...)
					return
				}
			}
		})
	}
}

// publish hands state to every current listener. It must be called without
// the store lock held so listeners may read the store.
func (o *observers[S]) publish(state S) {
	o.mu.Lock()
	fns := make([]func(S), len(o.entries))
	for i, e := range o.entries {
		fns[i] = e.fn
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
