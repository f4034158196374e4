package questionnaire

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
)

type fakeUpstream struct {
	questions   []Question
	dishes      []Dish
	questionErr error
	dishErr     error

	lastParams SessionParams
	lastPrefs  UserPreferences
	submits    int

	// block, when set, is waited on inside every call.
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeUpstream) wait() {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeUpstream) GenerateQuestions(ctx context.Context, params SessionParams) ([]Question, error) {
	f.wait()
	f.lastParams = params
	if f.questionErr != nil {
		return nil, f.questionErr
	}
	return f.questions, nil
}

func (f *fakeUpstream) SuggestDishes(ctx context.Context, params SessionParams, prefs UserPreferences) ([]Dish, error) {
	f.wait()
	f.lastParams = params
	f.lastPrefs = prefs
	f.submits++
	if f.dishErr != nil {
		return nil, f.dishErr
	}
	return f.dishes, nil
}

var testParams = SessionParams{MerchantID: "m1", MenuID: "menu", Language: "en"}

func newTestSession(up *fakeUpstream) (*Session, *[]error) {
	var reported []error
	s := NewSession(testParams, up, WithErrorReporter(func(op string, err error) {
		reported = append(reported, err)
	}))
	return s, &reported
}

func TestScenarioSingleSelectSubmit(t *testing.T) {
	up := &fakeUpstream{
		questions: []Question{NewQuestion("Spicy?", SingleSelect, []string{"Yes", "No"})},
	}
	s, _ := newTestSession(up)
	ctx := context.Background()

	if err := s.FetchQuestions(ctx); err != nil {
		t.Fatalf("FetchQuestions: %v", err)
	}
	if err := s.SetSingle("Spicy?", "Yes"); err != nil {
		t.Fatalf("SetSingle: %v", err)
	}
	if err := s.Submit(ctx); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	want := []Preference{{Question: "Spicy?", Answer: "Yes"}}
	if !reflect.DeepEqual(up.lastPrefs.Preferences, want) {
		t.Fatalf("preferences = %+v, want %+v", up.lastPrefs.Preferences, want)
	}
	if up.lastParams != testParams {
		t.Fatalf("params = %+v", up.lastParams)
	}
}

func TestScenarioMultiSelectToggleOff(t *testing.T) {
	up := &fakeUpstream{
		questions: []Question{NewQuestion("Allergens?", MultiSelect, []string{"Nuts", "Dairy", "Gluten"})},
	}
	s, _ := newTestSession(up)
	ctx := context.Background()

	if err := s.FetchQuestions(ctx); err != nil {
		t.Fatal(err)
	}
	for _, o := range []string{"Nuts", "Dairy", "Nuts"} {
		if err := s.ToggleMulti("Allergens?", o); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Submit(ctx); err != nil {
		t.Fatal(err)
	}

	want := []Preference{{Question: "Allergens?", Answer: "Dairy"}}
	if !reflect.DeepEqual(up.lastPrefs.Preferences, want) {
		t.Fatalf("preferences = %+v, want %+v", up.lastPrefs.Preferences, want)
	}
}

func TestScenarioRefetchClearsDishesAndAnswers(t *testing.T) {
	up := &fakeUpstream{
		questions: []Question{NewQuestion("Spicy?", SingleSelect, []string{"Yes", "No"})},
		dishes:    []Dish{{ID: "1"}, {ID: "2"}, {ID: "3"}},
	}
	s, _ := newTestSession(up)
	ctx := context.Background()

	if err := s.FetchQuestions(ctx); err != nil {
		t.Fatal(err)
	}
	_ = s.SetSingle("Spicy?", "No")
	if err := s.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(s.Dishes()); n != 3 {
		t.Fatalf("expected 3 dishes, got %d", n)
	}

	up.questions = []Question{NewQuestion("Sweet?", SingleSelect, []string{"Yes", "No"})}
	if err := s.FetchQuestions(ctx); err != nil {
		t.Fatal(err)
	}

	if n := len(s.Dishes()); n != 0 {
		t.Errorf("dishes not cleared: %d", n)
	}
	if n := s.Answers().Len(); n != 0 {
		t.Errorf("answers not cleared: %d", n)
	}
	if s.Loading() || s.State() != Idle {
		t.Errorf("state = %s", s.State())
	}
	if _, ok := s.Questions().Lookup("Sweet?"); !ok {
		t.Error("new question set not loaded")
	}
}

func TestSubmitFailureKeepsDishes(t *testing.T) {
	up := &fakeUpstream{
		questions: []Question{NewQuestion("Notes?", OpenText, nil)},
		dishes:    []Dish{{ID: "d1", Name: "Pho", Price: 9.5, Allergens: []string{"Gluten"}}},
	}
	s, reported := newTestSession(up)
	ctx := context.Background()

	if err := s.FetchQuestions(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	before := s.Dishes()

	_ = s.SetText("Notes?", "extra spicy")
	up.dishErr = errors.New("boom")
	err := s.Submit(ctx)
	if !errors.Is(err, ErrOperationFailed) {
		t.Fatalf("expected ErrOperationFailed, got %v", err)
	}

	if after := s.Dishes(); !reflect.DeepEqual(before, after) {
		t.Fatalf("dishes changed after failed submit: %+v", after)
	}
	if a, ok := s.Answer("Notes?"); !ok || a.String() != "extra spicy" {
		t.Fatalf("answers lost after failed submit: %v", a)
	}
	if s.State() != Idle {
		t.Fatalf("state = %s", s.State())
	}
	if len(*reported) != 1 {
		t.Fatalf("expected one reported failure, got %d", len(*reported))
	}
}

func TestFetchFailureKeepsEverything(t *testing.T) {
	up := &fakeUpstream{
		questions: []Question{NewQuestion("Spicy?", SingleSelect, []string{"Yes", "No"})},
		dishes:    []Dish{{ID: "d1"}},
	}
	s, _ := newTestSession(up)
	ctx := context.Background()

	_ = s.FetchQuestions(ctx)
	_ = s.SetSingle("Spicy?", "Yes")
	_ = s.Submit(ctx)

	up.questionErr = errors.New("dns")
	if err := s.FetchQuestions(ctx); !errors.Is(err, ErrOperationFailed) {
		t.Fatalf("expected ErrOperationFailed, got %v", err)
	}

	if _, ok := s.Questions().Lookup("Spicy?"); !ok {
		t.Error("question set replaced by failed fetch")
	}
	if a, ok := s.Answer("Spicy?"); !ok || a.String() != "Yes" {
		t.Error("answers cleared by failed fetch")
	}
	if len(s.Dishes()) != 1 {
		t.Error("dishes cleared by failed fetch")
	}
	if s.Loading() {
		t.Error("still loading")
	}
}

func TestSubmitWithoutQuestionsSendsEmptyList(t *testing.T) {
	up := &fakeUpstream{}
	s, _ := newTestSession(up)

	if err := s.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	if up.lastPrefs.Preferences == nil || len(up.lastPrefs.Preferences) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", up.lastPrefs.Preferences)
	}
}

func TestSecondTriggerWhileLoadingIsRejected(t *testing.T) {
	up := &fakeUpstream{
		questions: []Question{NewQuestion("Spicy?", SingleSelect, []string{"Yes"})},
		block:     make(chan struct{}),
		entered:   make(chan struct{}, 1),
	}
	s, _ := newTestSession(up)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- s.FetchQuestions(ctx) }()
	<-up.entered

	if !s.Loading() || s.State() != FetchingQuestions {
		t.Fatalf("state = %s", s.State())
	}
	if err := s.Submit(ctx); !errors.Is(err, ErrInFlight) {
		t.Fatalf("Submit during fetch: %v", err)
	}
	if err := s.FetchQuestions(ctx); !errors.Is(err, ErrInFlight) {
		t.Fatalf("FetchQuestions during fetch: %v", err)
	}

	close(up.block)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if s.Loading() {
		t.Fatal("still loading after completion")
	}
	if up.submits != 0 {
		t.Fatalf("rejected submit reached upstream")
	}
}

func TestAnswerValidation(t *testing.T) {
	up := &fakeUpstream{
		questions: []Question{
			NewQuestion("Spicy?", SingleSelect, []string{"Yes", "No"}),
			NewQuestion("Allergens?", MultiSelect, []string{"Nuts"}),
			NewQuestion("Notes?", OpenText, nil),
		},
	}
	s, _ := newTestSession(up)
	if err := s.FetchQuestions(context.Background()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		op   func() error
		want error
	}{
		{"unknown question", func() error { return s.SetSingle("Sweet?", "Yes") }, ErrQuestionNotFound},
		{"toggle on single", func() error { return s.ToggleMulti("Spicy?", "Yes") }, ErrKindMismatch},
		{"text on multi", func() error { return s.SetText("Allergens?", "x") }, ErrKindMismatch},
		{"single on text", func() error { return s.SetSingle("Notes?", "x") }, ErrKindMismatch},
		{"valid text", func() error { return s.SetText("Notes?", "") }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}

	if s.Answers().Len() != 1 {
		t.Fatalf("rejected operations recorded answers: %v", s.Answers().Keys())
	}
}

func TestAnswerRacingRefetchNeverOutlivesReset(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 2000; i++ {
		up := &fakeUpstream{questions: []Question{NewQuestion("X", SingleSelect, []string{"a", "b"})}}
		s, _ := newTestSession(up)
		if err := s.FetchQuestions(ctx); err != nil {
			t.Fatal(err)
		}
		up.questions = []Question{NewQuestion("X", MultiSelect, []string{"a", "b"})}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.SetSingle("X", "a")
		}()
		go func() {
			defer wg.Done()
			if err := s.FetchQuestions(ctx); err != nil {
				t.Error(err)
			}
		}()
		wg.Wait()

		q, _ := s.Questions().Lookup("X")
		if a, ok := s.Answer("X"); ok {
			t.Fatalf("iteration %d: %s question X kept %T from before the refetch", i, q.Kind, a)
		}
	}
}
