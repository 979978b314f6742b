// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import "sync"

// Observable is an embeddable change-notification hub. Types that embed it
// gain Subscribe; their mutating methods call Notify to fan out the change.
// Callbacks run on the mutating goroutine, outside the internal lock, so a
// callback may subscribe or unsubscribe without deadlocking.
type Observable struct {
	mu   sync.Mutex
	subs map[int]func()
	next int
}

// Subscribe registers fn to run after every observed mutation. The returned
// function removes the subscription; calling it more than once is harmless.
func (o *Observable) Subscribe(fn func()) (unsubscribe func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.subs == nil {
		o.subs = make(map[int]func())
	}
	id := o.next
	o.next++
	o.subs[id] = fn
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.subs, id)
	}
}

// Notify invokes all current subscribers with the lock released. It is
// meant to be called by the embedding type after a completed mutation.
func (o *Observable) Notify() {
	o.mu.Lock()
	fns := make([]func(), 0, len(o.subs))
	for _, fn := range o.subs {
		fns = append(fns, fn)
	}
	o.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
