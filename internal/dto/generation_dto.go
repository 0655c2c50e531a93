package dto

// ProviderConfigDTO is the wire form of a per-call provider override.
type ProviderConfigDTO struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIKey   string `json:"api_key,omitempty"`
}

// GenerationRequestDTO selects topic-based or document-grounded generation.
// DocumentURL must already point at an accessible resource; uploading is the
// object-storage collaborator's job.
type GenerationRequestDTO struct {
	Topic       string `json:"topic,omitempty"`
	DocumentURL string `json:"document_url,omitempty"`
	Count       int    `json:"count" binding:"required,min=1,max=50"`
}

// GeneratedQuestionDTO is one question as emitted by the model, validated
// against the question invariants before anything is persisted.
type GeneratedQuestionDTO struct {
	Text          string   `json:"text"`
	Kind          string   `json:"kind"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Marks         int      `json:"marks"`
}

// GenerateQuizDTO asks the server to generate questions and persist them as
// a new quiz in one step.
type GenerateQuizDTO struct {
	Title             string               `json:"title" binding:"required"`
	Description       string               `json:"description,omitempty"`
	EvaluationPrompts []string             `json:"evaluation_prompts,omitempty"`
	CreatedBy         string               `json:"created_by" binding:"required"`
	Generation        GenerationRequestDTO `json:"generation" binding:"required"`
	ProviderConfig    *ProviderConfigDTO   `json:"provider_config,omitempty"`
}

// EvaluationResultDTO is the structured grading payload. Score is bounded by
// the attempt's total marks; the lists may be empty but never null.
type EvaluationResultDTO struct {
	Score            float64  `json:"score"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	Improvements     []string `json:"improvements"`
	DetailedFeedback string   `json:"detailed_feedback"`
}

// GenerateFunctionRequestDTO is the serverless-style generation endpoint body.
type GenerateFunctionRequestDTO struct {
	Topic          string             `json:"topic,omitempty"`
	DocumentURL    string             `json:"document_url,omitempty"`
	Count          int                `json:"count"`
	ProviderConfig *ProviderConfigDTO `json:"provider_config,omitempty"`
	UserID         string             `json:"user_id,omitempty"`
}

// InlineQuestionDTO is one question carried inside an inline quiz payload.
// ID is optional; when present the answers map may key on it.
type InlineQuestionDTO struct {
	ID            string   `json:"id,omitempty"`
	Text          string   `json:"text"`
	Kind          string   `json:"kind"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Marks         int      `json:"marks"`
}

// InlineQuizDTO is a full quiz supplied in the request body, graded without
// ever being persisted.
type InlineQuizDTO struct {
	Title             string              `json:"title"`
	EvaluationPrompts []string            `json:"evaluation_prompts,omitempty"`
	Questions         []InlineQuestionDTO `json:"questions" binding:"required,min=1"`
}

// EvaluateFunctionRequestDTO is the serverless-style evaluation endpoint body.
// Callers pass either a full inline quiz or the ID of a stored one; an inline
// quiz wins when both are present.
type EvaluateFunctionRequestDTO struct {
	Quiz           *InlineQuizDTO     `json:"quiz,omitempty"`
	QuizID         string             `json:"quiz_id,omitempty"`
	Answers        map[string]any     `json:"answers"`
	ProviderConfig *ProviderConfigDTO `json:"provider_config,omitempty"`
	UserID         string             `json:"user_id,omitempty"`
}
