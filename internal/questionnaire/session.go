package questionnaire

import (
	"context"
	"fmt"
	"log"
	"sync"
)

type State int

const (
	Idle State = iota
	FetchingQuestions
	SubmittingPreferences
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case FetchingQuestions:
		return "fetching_questions"
	case SubmittingPreferences:
		return "submitting_preferences"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrorReporter receives failed upstream calls. Nothing else observes them.
type ErrorReporter func(op string, err error)

type Option func(*Session)

func WithErrorReporter(r ErrorReporter) Option {
	return func(s *Session) {
		if r != nil {
			s.report = r
		}
	}
}

// Session drives the fetch-questions and submit-preferences cycles and owns
// the question set, the answers and the last dish list.
//
// Only one upstream call runs at a time; a second trigger while loading gets ErrInFlight.
// State changes happen only after a call succeeds, so a failed call leaves everything as it was.
type Session struct {
	params   SessionParams
	upstream Upstream
	report   ErrorReporter
	answers  *AnswerStore

	mu        sync.RWMutex
	state     State
	questions QuestionSet
	dishes    []Dish
}

func NewSession(params SessionParams, upstream Upstream, opts ...Option) *Session {
	s := &Session{
		params:   params,
		upstream: upstream,
		answers:  NewAnswerStore(),
		report: func(op string, err error) {
			log.Printf("%s failed: %v", op, err)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Params() SessionParams { return s.params }

// begin moves Idle to next, or reports that another call owns the session.
func (s *Session) begin(next State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Idle {
		return fmt.Errorf("%w: %s", ErrInFlight, s.state)
	}
	s.state = next
	return nil
}

func (s *Session) fail(op string, err error) error {
	s.mu.Lock()
	s.state = Idle
	s.mu.Unlock()
	s.report(op, err)
	return fmt.Errorf("%s: %w: %w", op, ErrOperationFailed, err)
}

// FetchQuestions loads a new question set. On success answers and dishes are cleared.
func (s *Session) FetchQuestions(ctx context.Context) error {
	if err := s.begin(FetchingQuestions); err != nil {
		return err
	}

	questions, err := s.upstream.GenerateQuestions(ctx, s.params)
	if err != nil {
		return s.fail("generate questions", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = Load(questions)
	s.answers.Reset()
	s.dishes = nil
	s.state = Idle
	return nil
}

// Submit sends the current answers and replaces the dish list with the suggestions.
// An empty question set submits an empty preference list.
func (s *Session) Submit(ctx context.Context) error {
	if err := s.begin(SubmittingPreferences); err != nil {
		return err
	}

	prefs := Serialize(s.answers.Snapshot())
	dishes, err := s.upstream.SuggestDishes(ctx, s.params, prefs)
	if err != nil {
		return s.fail("suggest dishes", err)
	}
	if dishes == nil {
		dishes = []Dish{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dishes = dishes
	s.state = Idle
	return nil
}

// withQuestion runs write while holding the read lock, so a concurrent FetchQuestions
// cannot swap the question set or reset answers between the kind check and the write.
func (s *Session) withQuestion(text string, want Kind, write func()) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions.Lookup(text)
	if !ok {
		return fmt.Errorf("%w: %q", ErrQuestionNotFound, text)
	}
	if q.Kind != want {
		return fmt.Errorf("%w: %q is %s", ErrKindMismatch, text, q.Kind)
	}
	write()
	return nil
}

func (s *Session) SetSingle(question, value string) error {
	return s.withQuestion(question, SingleSelect, func() {
		s.answers.SetSingle(question, value)
	})
}

func (s *Session) ToggleMulti(question, value string) error {
	return s.withQuestion(question, MultiSelect, func() {
		s.answers.ToggleMulti(question, value)
	})
}

func (s *Session) SetText(question, text string) error {
	return s.withQuestion(question, OpenText, func() {
		s.answers.SetText(question, text)
	})
}

func (s *Session) Answer(question string) (Answer, bool) {
	return s.answers.Get(question)
}

func (s *Session) Answers() AnswerMap {
	return s.answers.Snapshot()
}

// Preferences is the payload Submit would send right now.
func (s *Session) Preferences() UserPreferences {
	return Serialize(s.answers.Snapshot())
}

func (s *Session) Questions() QuestionSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.questions
}

// Dishes returns a copy of the last suggestion list.
func (s *Session) Dishes() []Dish {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Dish{}, s.dishes...)
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Loading() bool {
	return s.State() != Idle
}
