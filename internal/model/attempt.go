package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attempt states. An attempt is in progress until evaluation succeeds; completed
// is terminal and no further mutation is allowed.
const (
	AttemptInProgress = "in_progress"
	AttemptCompleted  = "completed"
)

type QuizAttempt struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID string `gorm:"type:uuid;not null;index:idx_attempt_quiz_user,unique,where:completed_at IS NULL" json:"quiz_id"`
	UserID string `gorm:"not null;index:idx_attempt_quiz_user,unique,where:completed_at IS NULL" json:"user_id"`
	Quiz   Quiz   `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`

	Answers    datatypes.JSONMap `json:"answers" gorm:"type:jsonb"` // questionID -> free-form answer value
	TotalMarks int               `json:"total_marks" gorm:"not null"`
	Score      *float64          `json:"score,omitempty"`

	Strengths        datatypes.JSON `json:"strengths,omitempty" gorm:"type:jsonb"`
	Weaknesses       datatypes.JSON `json:"weaknesses,omitempty" gorm:"type:jsonb"`
	Improvements     datatypes.JSON `json:"improvements,omitempty" gorm:"type:jsonb"`
	DetailedFeedback string         `json:"detailed_feedback,omitempty" gorm:"type:text"`

	StartedAt   time.Time      `json:"started_at" gorm:"autoCreateTime"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Status derives the lifecycle state from CompletedAt.
func (a *QuizAttempt) Status() string {
	if a.CompletedAt != nil {
		return AttemptCompleted
	}
	return AttemptInProgress
}
