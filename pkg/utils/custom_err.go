package utils

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidAnswer    = errors.New("invalid answer for question type")
	ErrRequestInFlight  = errors.New("request already in flight")
	ErrUpstreamFailure  = errors.New("advisor service unavailable")
	ErrInvalidInput     = errors.New("invalid input")
)
