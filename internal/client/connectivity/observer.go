// Package connectivity tracks the client's online/offline state from
// transition reports rather than polling.
package connectivity

import "sync"

// Observer holds the current boolean connectivity state. Callbacks
// registered with OnOnline fire exactly once per offline-to-online
// transition: reporting online while already online is a no-op, so
// duplicate reports for the same transition cannot trigger a second
// sync.
type Observer struct {
	mu       sync.Mutex
	online   bool
	onOnline []func()
}

func New(initiallyOnline bool) *Observer {
	return &Observer{online: initiallyOnline}
}

// OnOnline registers fn to run on each offline-to-online transition.
func (o *Observer) OnOnline(fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onOnline = append(o.onOnline, fn)
}

// Report feeds a connectivity observation. Callbacks run outside the
// lock, so they may report connectivity themselves without deadlock.
func (o *Observer) Report(online bool) {
	o.mu.Lock()
	wasOnline := o.online
	o.online = online
	var callbacks []func()
	if online && !wasOnline {
		callbacks = append(callbacks, o.onOnline...)
	}
	o.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

func (o *Observer) Online() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.online
}
