package questionnaire

import "errors"

var (
	ErrInFlight         = errors.New("a request is already in flight")
	ErrOperationFailed  = errors.New("operation did not complete")
	ErrQuestionNotFound = errors.New("question not found")
	ErrKindMismatch     = errors.New("answer does not match question type")
)
