package questionnaire

import "sync"

// AnswerMap is an immutable, insertion-ordered snapshot of answers keyed by question text.
// Updating an already answered question keeps its original position.
type AnswerMap struct {
	order   []string
	entries map[string]Answer
}

func (m AnswerMap) Len() int { return len(m.order) }

func (m AnswerMap) Get(question string) (Answer, bool) {
	a, ok := m.entries[question]
	return a, ok
}

// Keys returns answered question texts in insertion order.
func (m AnswerMap) Keys() []string {
	return append([]string{}, m.order...)
}

// Each visits answers in insertion order.
func (m AnswerMap) Each(fn func(question string, answer Answer)) {
	for _, q := range m.order {
		fn(q, m.entries[q])
	}
}

// with returns a copy of m carrying answer for question; m itself is left untouched.
func (m AnswerMap) with(question string, answer Answer) AnswerMap {
	next := AnswerMap{
		order:   m.order,
		entries: make(map[string]Answer, len(m.entries)+1),
	}
	for k, v := range m.entries {
		next.entries[k] = v
	}
	if _, exists := m.entries[question]; !exists {
		next.order = make([]string, len(m.order), len(m.order)+1)
		copy(next.order, m.order)
		next.order = append(next.order, question)
	}
	next.entries[question] = answer
	return next
}

// AnswerStore holds the current AnswerMap. Mutators replace the map as a whole,
// so a snapshot obtained earlier stays consistent while it is being read.
type AnswerStore struct {
	mu      sync.RWMutex
	current AnswerMap
}

func NewAnswerStore() *AnswerStore {
	return &AnswerStore{}
}

// SetSingle stores value as-is; callers are trusted to offer only valid options.
func (s *AnswerStore) SetSingle(question, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.current.with(question, SingleAnswer{Value: value})
}

// ToggleMulti adds value to the selection for question, or removes it if already selected.
// A missing or non-multi entry starts from the empty set.
func (s *AnswerStore) ToggleMulti(question, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var prev MultiAnswer
	if a, ok := s.current.Get(question); ok {
		if m, isMulti := a.(MultiAnswer); isMulti {
			prev = m
		}
	}
	s.current = s.current.with(question, prev.Toggle(value))
}

func (s *AnswerStore) SetText(question, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.current.with(question, TextAnswer{Text: text})
}

func (s *AnswerStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = AnswerMap{}
}

func (s *AnswerStore) Get(question string) (Answer, bool) {
	return s.Snapshot().Get(question)
}

func (s *AnswerStore) Snapshot() AnswerMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
