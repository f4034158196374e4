package questionnaire

type Preference struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type UserPreferences struct {
	Preferences []Preference `json:"preferences"`
}

// Serialize turns answered questions into preference entries, in the order they were first
// answered. Unanswered questions are omitted; empty answers are kept.
func Serialize(answers AnswerMap) UserPreferences {
	out := UserPreferences{Preferences: make([]Preference, 0, answers.Len())}
	answers.Each(func(question string, answer Answer) {
		out.Preferences = append(out.Preferences, Preference{
			Question: question,
			Answer:   answer.String(),
		})
	})
	return out
}
