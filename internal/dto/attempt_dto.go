package dto

import "time"

type StartAttemptDTO struct {
	UserID string `json:"user_id" binding:"required"`
}

// SaveAnswerDTO merges one answer into the attempt. Value is free-form: a
// number for a multiple-choice index, a string for text answers; no shape
// validation happens against the question kind.
type SaveAnswerDTO struct {
	QuestionID string `json:"question_id" binding:"required"`
	Value      any    `json:"value" binding:"required"`
}

type AttemptResponseDTO struct {
	ID               string               `json:"id"`
	QuizID           string               `json:"quiz_id"`
	UserID           string               `json:"user_id"`
	Status           string               `json:"status"`
	Answers          map[string]any       `json:"answers"`
	TotalMarks       int                  `json:"total_marks"`
	Score            *float64             `json:"score,omitempty"`
	EvaluationResult *EvaluationResultDTO `json:"evaluation_result,omitempty"`
	StartedAt        time.Time            `json:"started_at"`
	CompletedAt      *time.Time           `json:"completed_at,omitempty"`
}

// AttemptSummaryDTO is the history list view.
type AttemptSummaryDTO struct {
	ID          string     `json:"id"`
	QuizID      string     `json:"quiz_id"`
	Status      string     `json:"status"`
	TotalMarks  int        `json:"total_marks"`
	Score       *float64   `json:"score,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
