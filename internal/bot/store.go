package bot

import "sync"

// Store owns all session state. Get returns a fresh StepInitial session for
// unknown users without persisting it; only Put (or Update) writes. Update
// runs fn under a per-user lock so the get-step-put cycle is atomic for a
// given user while distinct users proceed in parallel.
type Store interface {
	Get(userID string) Session
	Put(userID string, s Session)
	Update(userID string, fn func(Session) Session) Session
}

// MemoryStore is an in-memory Store for the lifetime of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	locks    map[string]*sync.Mutex
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		locks:    make(map[string]*sync.Mutex),
	}
}

// Get retrieves the session for userID, or a fresh one if none exists.
func (m *MemoryStore) Get(userID string) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[userID]
	if !ok {
		return NewSession(userID)
	}
	return s
}

// Put stores the session for userID.
func (m *MemoryStore) Put(userID string, s Session) {
	m.mu.Lock()
	m.sessions[userID] = s
	m.mu.Unlock()
}

// Update applies fn to the current session for userID and persists the
// result, holding the user's lock for the whole read-modify-write so two
// near-simultaneous messages from one user cannot both observe the same
// state and lose a transition.
func (m *MemoryStore) Update(userID string, fn func(Session) Session) Session {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	next := fn(m.Get(userID))
	m.Put(userID, next)
	return next
}

func (m *MemoryStore) userLock(userID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[userID] = lock
	}
	return lock
}
