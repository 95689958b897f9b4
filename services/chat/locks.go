package chat

import "sync"

// sessionLocks serializes turns within one session while letting distinct
// sessions proceed in parallel. Lock entries are never evicted; one mutex per
// seen session is an acceptable footprint for a single-node deployment.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sync.Mutex)}
}

func (sl *sessionLocks) lock(sessionID string) *sync.Mutex {
	sl.mu.Lock()
	m, ok := sl.locks[sessionID]
	if !ok {
		m = &sync.Mutex{}
		sl.locks[sessionID] = m
	}
	sl.mu.Unlock()

	m.Lock()
	return m
}
