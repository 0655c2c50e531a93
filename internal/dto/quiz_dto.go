package dto

import "time"

// QuestionCreateDTO is one authored question inside QuizCreateDTO.
type QuestionCreateDTO struct {
	Text          string   `json:"text" binding:"required"`
	Kind          string   `json:"kind" binding:"required,oneof=multiple_choice short_answer essay"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Marks         int      `json:"marks" binding:"required,min=1"`
}

// QuizCreateDTO is for authoring a quiz directly. Total marks are always
// computed server-side as the sum of question marks.
type QuizCreateDTO struct {
	Title             string              `json:"title" binding:"required"`
	Description       string              `json:"description,omitempty"`
	Topic             string              `json:"topic,omitempty"`
	EvaluationPrompts []string            `json:"evaluation_prompts,omitempty"`
	CreatedBy         string              `json:"created_by" binding:"required"`
	Questions         []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

type QuestionResponseDTO struct {
	ID            string   `json:"id"`
	QuizID        string   `json:"quiz_id"`
	Text          string   `json:"text"`
	Kind          string   `json:"kind"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Marks         int      `json:"marks"`
	Position      int      `json:"position"`
}

type QuizResponseDTO struct {
	ID                string                `json:"id"`
	Title             string                `json:"title"`
	Description       string                `json:"description,omitempty"`
	Topic             string                `json:"topic,omitempty"`
	SourceDocumentURL string                `json:"source_document_url,omitempty"`
	TotalQuestions    int                   `json:"total_questions"`
	TotalMarks        int                   `json:"total_marks"`
	EvaluationPrompts []string              `json:"evaluation_prompts,omitempty"`
	CreatedBy         string                `json:"created_by"`
	Questions         []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// QuizSummaryDTO is the list view without question bodies.
type QuizSummaryDTO struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Topic          string    `json:"topic,omitempty"`
	TotalQuestions int       `json:"total_questions"`
	TotalMarks     int       `json:"total_marks"`
	CreatedAt      time.Time `json:"created_at"`
}
