package questionnaire

import "strings"

// Answer is one of SingleAnswer, MultiAnswer or TextAnswer.
type Answer interface {
	Kind() Kind
	// String is the value sent to the recommendation service.
	String() string
	isAnswer()
}

type SingleAnswer struct {
	Value string
}

func (SingleAnswer) Kind() Kind       { return SingleSelect }
func (a SingleAnswer) String() string { return a.Value }
func (SingleAnswer) isAnswer()        {}

type TextAnswer struct {
	Text string
}

func (TextAnswer) Kind() Kind       { return OpenText }
func (a TextAnswer) String() string { return a.Text }
func (TextAnswer) isAnswer()        {}

// MultiAnswer is an insertion-ordered set of selected options.
// Values are never mutated after construction; Toggle returns a new answer.
type MultiAnswer struct {
	values []string
}

func NewMultiAnswer(values ...string) MultiAnswer {
	var a MultiAnswer
	for _, v := range values {
		if !a.Contains(v) {
			a.values = append(a.values, v)
		}
	}
	return a
}

func (MultiAnswer) Kind() Kind { return MultiSelect }
func (MultiAnswer) isAnswer()  {}

func (a MultiAnswer) String() string { return strings.Join(a.values, ", ") }

func (a MultiAnswer) Values() []string {
	return append([]string{}, a.values...)
}

func (a MultiAnswer) Len() int { return len(a.values) }

func (a MultiAnswer) Contains(value string) bool {
	for _, v := range a.values {
		if v == value {
			return true
		}
	}
	return false
}

// Toggle removes value if selected, appends it otherwise.
func (a MultiAnswer) Toggle(value string) MultiAnswer {
	next := make([]string, 0, len(a.values)+1)
	removed := false
	for _, v := range a.values {
		if v == value {
			removed = true
			continue
		}
		next = append(next, v)
	}
	if !removed {
		next = append(next, value)
	}
	return MultiAnswer{values: next}
}
