package service

import (
	"context"
	"errors"
	"fmt"

	"quizforge/internal/dto"
	"quizforge/internal/llm"
	"quizforge/internal/model"
	"quizforge/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuizService persists quizzes whether authored by hand or produced by the
// generation pipeline. Authored questions pass through the same invariants
// as generated ones; total marks are always computed, never trusted from
// the request.
type QuizService interface {
	CreateQuiz(ctx context.Context, req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error)
	CreateFromGeneration(ctx context.Context, req dto.GenerateQuizDTO, cfg llm.Config) (*dto.QuizResponseDTO, error)
	GetQuizWithQuestions(ctx context.Context, quizID string) (*dto.QuizResponseDTO, error)
	ListQuizzes(ctx context.Context) ([]dto.QuizSummaryDTO, error)
}

type quizService struct {
	quizRepo  repository.QuizRepository
	generator GenerationService
}

func NewQuizService(quizRepo repository.QuizRepository, generator GenerationService) QuizService {
	return &quizService{quizRepo: quizRepo, generator: generator}
}

func (s *quizService) CreateQuiz(ctx context.Context, req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error) {
	generated := make([]dto.GeneratedQuestionDTO, 0, len(req.Questions))
	for _, q := range req.Questions {
		generated = append(generated, dto.GeneratedQuestionDTO{
			Text:          q.Text,
			Kind:          q.Kind,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Marks:         q.Marks,
		})
	}
	for i, q := range generated {
		if err := validateGeneratedQuestion(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	quiz := buildQuiz(req.Title, req.Description, req.Topic, "", req.EvaluationPrompts, req.CreatedBy, generated)
	if err := s.quizRepo.Create(quiz); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create quiz in DB")
		return nil, err
	}

	log.Info().Str("quizId", quiz.ID).Int("questions", len(quiz.Questions)).Msg("Quiz created")
	return quizToDTO(quiz, true), nil
}

func (s *quizService) CreateFromGeneration(ctx context.Context, req dto.GenerateQuizDTO, cfg llm.Config) (*dto.QuizResponseDTO, error) {
	questions, err := s.generator.GenerateQuestions(ctx, req.Generation, cfg)
	if err != nil {
		return nil, err
	}

	quiz := buildQuiz(req.Title, req.Description, req.Generation.Topic, req.Generation.DocumentURL, req.EvaluationPrompts, req.CreatedBy, questions)
	if err := s.quizRepo.Create(quiz); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to persist generated quiz")
		return nil, err
	}

	log.Info().Str("quizId", quiz.ID).Int("questions", len(quiz.Questions)).Str("provider", cfg.Provider).Msg("Generated quiz created")
	return quizToDTO(quiz, true), nil
}

func (s *quizService) GetQuizWithQuestions(ctx context.Context, quizID string) (*dto.QuizResponseDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return quizToDTO(quiz, true), nil
}

func (s *quizService) ListQuizzes(ctx context.Context) ([]dto.QuizSummaryDTO, error) {
	quizzes, err := s.quizRepo.FindAll()
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.QuizSummaryDTO, 0, len(quizzes))
	for _, quiz := range quizzes {
		summaries = append(summaries, dto.QuizSummaryDTO{
			ID:             quiz.ID,
			Title:          quiz.Title,
			Description:    quiz.Description,
			Topic:          quiz.Topic,
			TotalQuestions: quiz.TotalQuestions,
			TotalMarks:     quiz.TotalMarks,
			CreatedAt:      quiz.CreatedAt,
		})
	}
	return summaries, nil
}

// AssembleQuiz turns an inline quiz payload into a model.Quiz without
// persisting it. Questions pass through the same invariants as generated
// ones, and total marks are computed from the questions. Caller-supplied
// question IDs are kept so an answers map can reference them.
func AssembleQuiz(title string, evaluationPrompts []string, questions []dto.InlineQuestionDTO) (*model.Quiz, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz has no questions")
	}
	quiz := &model.Quiz{
		ID:                uuid.NewString(),
		Title:             title,
		TotalQuestions:    len(questions),
		EvaluationPrompts: encodeStringList(evaluationPrompts),
	}
	for i, q := range questions {
		gen := dto.GeneratedQuestionDTO{
			Text:          q.Text,
			Kind:          q.Kind,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Marks:         q.Marks,
		}
		if err := validateGeneratedQuestion(gen); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		id := q.ID
		if id == "" {
			id = uuid.NewString()
		}
		quiz.TotalMarks += q.Marks
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			ID:            id,
			QuizID:        quiz.ID,
			Text:          q.Text,
			Kind:          q.Kind,
			Options:       encodeStringList(q.Options),
			CorrectAnswer: q.CorrectAnswer,
			Marks:         q.Marks,
			Position:      i + 1,
		})
	}
	return quiz, nil
}

func buildQuiz(title, description, topic, documentURL string, evaluationPrompts []string, createdBy string, questions []dto.GeneratedQuestionDTO) *model.Quiz {
	quiz := &model.Quiz{
		ID:                uuid.NewString(),
		Title:             title,
		Description:       description,
		Topic:             topic,
		SourceDocumentURL: documentURL,
		TotalQuestions:    len(questions),
		EvaluationPrompts: encodeStringList(evaluationPrompts),
		CreatedBy:         createdBy,
	}
	for i, q := range questions {
		quiz.TotalMarks += q.Marks
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			ID:            uuid.NewString(),
			QuizID:        quiz.ID,
			Text:          q.Text,
			Kind:          q.Kind,
			Options:       encodeStringList(q.Options),
			CorrectAnswer: q.CorrectAnswer,
			Marks:         q.Marks,
			Position:      i + 1,
		})
	}
	return quiz
}

func quizToDTO(quiz *model.Quiz, includeQuestions bool) *dto.QuizResponseDTO {
	resp := &dto.QuizResponseDTO{
		ID:                quiz.ID,
		Title:             quiz.Title,
		Description:       quiz.Description,
		Topic:             quiz.Topic,
		SourceDocumentURL: quiz.SourceDocumentURL,
		TotalQuestions:    quiz.TotalQuestions,
		TotalMarks:        quiz.TotalMarks,
		EvaluationPrompts: decodeStringList(quiz.EvaluationPrompts),
		CreatedBy:         quiz.CreatedBy,
		CreatedAt:         quiz.CreatedAt,
		UpdatedAt:         quiz.UpdatedAt,
	}
	if includeQuestions {
		for _, q := range quiz.Questions {
			resp.Questions = append(resp.Questions, questionToResponseDTO(q))
		}
	}
	return resp
}
