package client

import "sync"

// refreshCoordinator guarantees a single in-flight refresh. The check of the
// in-flight flag and its setting happen under one lock in acquireOrWait, and
// no I/O ever runs while the lock is held.
type refreshCoordinator struct {
	mu       sync.Mutex
	inFlight bool
	waiters  []chan error
}

// acquireOrWait makes the caller the refresh leader when no refresh is in
// flight. Otherwise it enqueues a one-shot result channel that receives the
// outcome of the running refresh.
func (r *refreshCoordinator) acquireOrWait() (leader bool, wait <-chan error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inFlight {
		r.inFlight = true
		return true, nil
	}

	ch := make(chan error, 1)
	r.waiters = append(r.waiters, ch)
	return false, ch
}

// resolveAll ends the refresh successfully and releases every waiter in
// enqueue order. It returns the number of waiters released.
func (r *refreshCoordinator) resolveAll() int {
	return r.settle(nil)
}

// rejectAll ends the refresh with err and fails every waiter with it.
func (r *refreshCoordinator) rejectAll(err error) int {
	return r.settle(err)
}

func (r *refreshCoordinator) settle(err error) int {
	r.mu.Lock()
	waiters := r.waiters
	r.waiters = nil
	r.inFlight = false
	r.mu.Unlock()

	// Channels are buffered, so a waiter that gave up never blocks us.
	for _, ch := range waiters {
		ch <- err
	}
	return len(waiters)
}

func (r *refreshCoordinator) pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.waiters)
}

func (r *refreshCoordinator) refreshing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inFlight
}
