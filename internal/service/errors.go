package service

import (
	"errors"
	"fmt"
)

var (
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrAttemptNotFound = errors.New("attempt not found")
)

// GenerationError means the model's payload parsed as JSON but failed the
// question-set invariants. The whole batch is rejected; there is no partial
// acceptance.
type GenerationError struct {
	Reason string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generated question set is invalid: %s", e.Reason)
}

// EvaluationError means the grading payload parsed as JSON but failed the
// evaluation-result invariants. The attempt must not be completed.
type EvaluationError struct {
	Reason string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation result is invalid: %s", e.Reason)
}

// InvalidStateError rejects an operation attempted against the wrong attempt
// state, e.g. saving an answer after completion.
type InvalidStateError struct {
	Op    string
	State string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s: attempt is %s", e.Op, e.State)
}
