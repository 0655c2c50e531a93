package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question kinds supported by the generation and evaluation pipeline.
const (
	KindMultipleChoice = "multiple_choice"
	KindShortAnswer    = "short_answer"
	KindEssay          = "essay"
)

type Quiz struct {
	ID                string         `gorm:"type:uuid;primaryKey" json:"id"`
	Title             string         `json:"title" gorm:"not null"`
	Description       string         `json:"description,omitempty"`
	Topic             string         `json:"topic,omitempty"`
	SourceDocumentURL string         `json:"source_document_url,omitempty"`
	TotalQuestions    int            `json:"total_questions" gorm:"not null"`
	TotalMarks        int            `json:"total_marks" gorm:"not null"` // always the sum of question marks
	EvaluationPrompts datatypes.JSON `json:"evaluation_prompts,omitempty" gorm:"type:jsonb"`
	CreatedBy         string         `json:"created_by" gorm:"index"`
	Questions         []QuizQuestion `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

type QuizQuestion struct {
	ID            string         `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID        string         `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Text          string         `json:"text" gorm:"type:text;not null"`
	Kind          string         `json:"kind" gorm:"not null"` // multiple_choice, short_answer, essay
	Options       datatypes.JSON `json:"options,omitempty" gorm:"type:jsonb"`
	CorrectAnswer string         `json:"correct_answer,omitempty"`
	Marks         int            `json:"marks" gorm:"not null"`
	Position      int            `json:"position" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
