package questionnaire

import "fmt"

// Kind determines the shape a valid answer takes.
type Kind string

const (
	SingleSelect Kind = "single-selection"
	MultiSelect  Kind = "multi-selection"
	OpenText     Kind = "open-text"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case SingleSelect, MultiSelect, OpenText:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown question type %q", s)
	}
}

// Question is identified by its Text; upstream sends no separate id.
type Question struct {
	Text    string
	Kind    Kind
	Options []string
}

// NewQuestion normalizes options for the kind: open-text questions never carry options.
func NewQuestion(text string, kind Kind, options []string) Question {
	q := Question{Text: text, Kind: kind}
	if kind != OpenText && len(options) > 0 {
		q.Options = append([]string(nil), options...)
	}
	return q
}

func (q Question) HasOption(value string) bool {
	for _, o := range q.Options {
		if o == value {
			return true
		}
	}
	return false
}
