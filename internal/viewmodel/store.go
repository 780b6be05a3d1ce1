package viewmodel

import "sync"

// Store is the single source of truth for one session's dashboard state.
// Rendering, polling, real-time patches and form submissions all go through
// it; nothing else holds a copy of the snapshot.
//
// Replace is an atomic full swap: the last completed fetch always wins, and
// any patch applied against the previous snapshot is discarded with it.
// PatchReferral applies a field-level update to a single referral and is a
// silent no-op when nothing matches, so a push event for a referral the
// store has not seen yet is dropped rather than queued.
type Store struct {
	mu       sync.RWMutex
	snapshot DashboardSnapshot
	loaded   bool

	subMu   sync.Mutex
	nextSub int
	subs    map[int]chan struct{}
}

// NewStore creates an empty store. Loaded() stays false until the first
// Replace.
func NewStore() *Store {
	return &Store{
		subs: make(map[int]chan struct{}),
	}
}

// Snapshot returns a deep copy of the current snapshot. The second return
// is false until the first full fetch has been applied.
func (s *Store) Snapshot() (DashboardSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return DashboardSnapshot{}, false
	}
	return s.snapshot.clone(), true
}

// Loaded reports whether a snapshot has been applied yet.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Replace swaps in a new snapshot wholesale. Prior state, including any
// patches applied to it, is discarded.
func (s *Store) Replace(snapshot DashboardSnapshot) {
	s.mu.Lock()
	s.snapshot = snapshot.clone()
	s.loaded = true
	s.mu.Unlock()

	s.notify()
}

// PatchReferral finds the first referral accepted by match and applies
// update to it in place. Returns whether a referral matched. A miss is not
// an error: the next full snapshot will carry the authoritative state.
func (s *Store) PatchReferral(match func(Referral) bool, update func(*Referral)) bool {
	s.mu.Lock()
	patched := false
	if s.loaded {
		for i := range s.snapshot.Referrals {
			if match(s.snapshot.Referrals[i]) {
				update(&s.snapshot.Referrals[i])
				patched = true
				break
			}
		}
	}
	s.mu.Unlock()

	if patched {
		s.notify()
	}
	return patched
}

// Subscribe registers for change notifications. The returned channel
// receives a coalesced signal after each Replace or successful patch; the
// cancel func must be called to release the subscription.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
	return ch, cancel
}

func (s *Store) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
			// subscriber already has a pending signal
		}
	}
}
