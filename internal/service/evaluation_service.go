package service

import (
	"context"
	"encoding/json"
	"fmt"

	"quizforge/internal/dto"
	"quizforge/internal/llm"
	"quizforge/internal/model"

	"github.com/rs/zerolog/log"
)

const (
	evaluationTemperature = 0.2
	evaluationMaxTokens   = 4096
)

// EvaluationService grades a submitted answer set against its quiz via the
// configured LLM provider and validates the structured result.
type EvaluationService interface {
	Evaluate(ctx context.Context, quiz *model.Quiz, answers map[string]any, cfg llm.Config) (*dto.EvaluationResultDTO, error)
}

type evaluationService struct {
	providers llm.Factory
}

func NewEvaluationService(providers llm.Factory) EvaluationService {
	return &evaluationService{providers: providers}
}

func (s *evaluationService) Evaluate(ctx context.Context, quiz *model.Quiz, answers map[string]any, cfg llm.Config) (*dto.EvaluationResultDTO, error) {
	if quiz == nil || len(quiz.Questions) == 0 {
		return nil, &EvaluationError{Reason: "quiz has no questions to grade"}
	}

	provider, err := s.providers(cfg)
	if err != nil {
		return nil, err
	}

	raw, err := provider.Generate(ctx, llm.Request{
		Prompt:          buildEvaluationPrompt(quiz, answers),
		Temperature:     evaluationTemperature,
		MaxOutputTokens: evaluationMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	payload, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var result dto.EvaluationResultDTO
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, &EvaluationError{Reason: fmt.Sprintf("payload does not match the evaluation shape: %v", err)}
	}
	if err := validateEvaluation(&result, quiz.TotalMarks); err != nil {
		return nil, err
	}

	log.Info().Str("quiz_id", quiz.ID).Float64("score", result.Score).Int("total_marks", quiz.TotalMarks).Msg("evaluation completed")
	return &result, nil
}

// validateEvaluation rejects out-of-range scores outright rather than
// clamping: a model that grades 150/100 cannot be trusted on the rest of the
// payload either.
func validateEvaluation(r *dto.EvaluationResultDTO, totalMarks int) error {
	if r.Score < 0 || r.Score > float64(totalMarks) {
		return &EvaluationError{Reason: fmt.Sprintf("score %.2f is outside [0, %d]", r.Score, totalMarks)}
	}
	if r.DetailedFeedback == "" {
		return &EvaluationError{Reason: "detailed feedback is empty"}
	}
	if r.Strengths == nil {
		r.Strengths = []string{}
	}
	if r.Weaknesses == nil {
		r.Weaknesses = []string{}
	}
	if r.Improvements == nil {
		r.Improvements = []string{}
	}
	return nil
}
