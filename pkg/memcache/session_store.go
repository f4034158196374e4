// pkg/memcache/session_store.go
package mem

import (
	"sync"
	"time"

	"menuadvisor/internal/questionnaire"
)

type SessionStore interface {
	Set(id string, session *questionnaire.Session, ttl time.Duration)

	// Get returns the session for id and extends its expiry.
	// Expired sessions are dropped and reported as missing.
	Get(id string) (*questionnaire.Session, bool)

	Delete(id string) bool

	// Sweep removes every expired session and returns how many were dropped.
	Sweep() int

	Len() int
}

type entry struct {
	session   *questionnaire.Session
	ttl       time.Duration
	expiresAt time.Time
}

type Sessions struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

func NewSessions() *Sessions {
	return &Sessions{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *Sessions) Set(id string, session *questionnaire.Session, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = entry{
		session:   session,
		ttl:       ttl,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *Sessions) Get(id string) (*questionnaire.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.After(e.expiresAt) {
		delete(s.data, id) // cleanup expired
		return nil, false
	}
	e.expiresAt = now.Add(e.ttl)
	s.data[id] = e
	return e.session, true
}

func (s *Sessions) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[id]
	delete(s.data, id)
	return ok
}

func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Janitor sweeps a store on a fixed interval until Stop is called.
type Janitor struct {
	store    SessionStore
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
	onSweep  func(removed int)
}

func NewJanitor(store SessionStore, interval time.Duration, onSweep func(removed int)) *Janitor {
	return &Janitor{
		store:    store,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		onSweep:  onSweep,
	}
}

// Start is a no-op sweep loop when interval is not positive; Get still drops expired sessions.
func (j *Janitor) Start() {
	if j.interval <= 0 {
		close(j.done)
		return
	}
	go func() {
		defer close(j.done)
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := j.store.Sweep(); n > 0 && j.onSweep != nil {
					j.onSweep(n)
				}
			case <-j.stop:
				return
			}
		}
	}()
}

func (j *Janitor) Stop() {
	close(j.stop)
	<-j.done
}
