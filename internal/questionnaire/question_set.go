package questionnaire

// QuestionSet is the immutable list of questions for one session.
//
// Question texts double as answer keys. Blank or duplicate texts coming from upstream are
// kept as they are: answers for questions sharing a text overwrite each other.
type QuestionSet struct {
	questions []Question
}

// Load builds a new set from questions. The input slice is copied.
func Load(questions []Question) QuestionSet {
	qs := QuestionSet{questions: make([]Question, len(questions))}
	copy(qs.questions, questions)
	return qs
}

func (qs QuestionSet) Len() int { return len(qs.questions) }

func (qs QuestionSet) Questions() []Question {
	return append([]Question{}, qs.questions...)
}

// Lookup returns the first question with the given text.
func (qs QuestionSet) Lookup(text string) (Question, bool) {
	for _, q := range qs.questions {
		if q.Text == text {
			return q, true
		}
	}
	return Question{}, false
}
