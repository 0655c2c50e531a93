package service

import (
	"context"
	"errors"
	"time"

	"quizforge/internal/dto"
	"quizforge/internal/model"
	"quizforge/internal/repository"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttemptService drives the attempt lifecycle: idempotent start, incremental
// answer saves while in progress, and submission through the evaluation
// service. Completed is terminal; nothing mutates a completed attempt.
type AttemptService interface {
	Start(ctx context.Context, quizID, userID string) (*dto.AttemptResponseDTO, error)
	SaveAnswer(ctx context.Context, attemptID, questionID string, value any) (*dto.AttemptResponseDTO, error)
	Submit(ctx context.Context, attemptID string) (*dto.AttemptResponseDTO, error)
	GetAttempt(ctx context.Context, attemptID string) (*dto.AttemptResponseDTO, error)
	ListByUser(ctx context.Context, userID string) ([]dto.AttemptSummaryDTO, error)
}

type attemptService struct {
	attemptRepo repository.AttemptRepository
	quizRepo    repository.QuizRepository
	evaluator   EvaluationService
	settings    SettingsService
	now         func() time.Time
}

func NewAttemptService(
	attemptRepo repository.AttemptRepository,
	quizRepo repository.QuizRepository,
	evaluator EvaluationService,
	settings SettingsService,
) AttemptService {
	return &attemptService{
		attemptRepo: attemptRepo,
		quizRepo:    quizRepo,
		evaluator:   evaluator,
		settings:    settings,
		now:         time.Now,
	}
}

// Start returns the user's existing in-progress attempt when one exists;
// otherwise it creates one with the quiz's total marks snapshotted. A
// unique-constraint conflict from a concurrent start is folded into the
// "already exists" path.
func (s *attemptService) Start(ctx context.Context, quizID, userID string) (*dto.AttemptResponseDTO, error) {
	if existing, err := s.attemptRepo.FindInProgress(quizID, userID); err == nil {
		log.Info().Str("attemptId", existing.ID).Str("quizId", quizID).Str("userId", userID).Msg("Returning existing in-progress attempt")
		return attemptToDTO(existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	attempt := &model.QuizAttempt{
		ID:         uuid.NewString(),
		QuizID:     quiz.ID,
		UserID:     userID,
		Answers:    datatypes.JSONMap{},
		TotalMarks: quiz.TotalMarks,
		StartedAt:  s.now(),
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a concurrent start; the winner's row is the attempt.
			existing, findErr := s.attemptRepo.FindInProgress(quizID, userID)
			if findErr != nil {
				return nil, findErr
			}
			return attemptToDTO(existing), nil
		}
		log.Error().Err(err).Str("quizId", quizID).Msg("Failed to create attempt in DB")
		return nil, err
	}

	log.Info().Str("attemptId", attempt.ID).Str("quizId", quizID).Str("userId", userID).Msg("Attempt started")
	return attemptToDTO(attempt), nil
}

// SaveAnswer merges one answer, last write wins per question. The value is
// stored as-is; its shape is never checked against the question kind.
// Writing to a completed attempt is rejected, not silently dropped.
func (s *attemptService) SaveAnswer(ctx context.Context, attemptID, questionID string, value any) (*dto.AttemptResponseDTO, error) {
	attempt, err := s.loadAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.CompletedAt != nil {
		return nil, &InvalidStateError{Op: "save answer", State: model.AttemptCompleted}
	}

	if attempt.Answers == nil {
		attempt.Answers = datatypes.JSONMap{}
	}
	attempt.Answers[questionID] = value
	if err := s.attemptRepo.UpdateAnswers(attempt.ID, attempt.Answers); err != nil {
		log.Error().Err(err).Str("attemptId", attempt.ID).Msg("Failed to persist answer")
		return nil, err
	}
	return attemptToDTO(attempt), nil
}

// Submit grades the attempt and, on success, transitions it to completed.
// Evaluation failure leaves the attempt in progress so submission can be
// retried; a concurrent submission losing the conditional update is reported
// as an invalid-state rejection.
func (s *attemptService) Submit(ctx context.Context, attemptID string) (*dto.AttemptResponseDTO, error) {
	attempt, err := s.loadAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.CompletedAt != nil {
		return nil, &InvalidStateError{Op: "submit", State: model.AttemptCompleted}
	}

	quiz, err := s.quizRepo.FindByIDWithQuestions(attempt.QuizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	cfg, err := s.settings.Resolve(ctx, attempt.UserID)
	if err != nil {
		return nil, err
	}

	result, err := s.evaluator.Evaluate(ctx, quiz, attempt.Answers, cfg)
	if err != nil {
		log.Warn().Err(err).Str("attemptId", attempt.ID).Msg("Evaluation failed, attempt stays in progress")
		return nil, err
	}

	completedAt := s.now()
	attempt.Score = &result.Score
	attempt.Strengths = encodeStringList(result.Strengths)
	attempt.Weaknesses = encodeStringList(result.Weaknesses)
	attempt.Improvements = encodeStringList(result.Improvements)
	attempt.DetailedFeedback = result.DetailedFeedback
	attempt.CompletedAt = &completedAt

	updated, err := s.attemptRepo.CompleteInProgress(attempt)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Another submission completed the attempt first.
		return nil, &InvalidStateError{Op: "submit", State: model.AttemptCompleted}
	}

	log.Info().Str("attemptId", attempt.ID).Float64("score", result.Score).Msg("Attempt completed")
	return attemptToDTO(attempt), nil
}

func (s *attemptService) GetAttempt(ctx context.Context, attemptID string) (*dto.AttemptResponseDTO, error) {
	attempt, err := s.loadAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	return attemptToDTO(attempt), nil
}

func (s *attemptService) ListByUser(ctx context.Context, userID string) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByUser(userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	for _, attempt := range attempts {
		var summary dto.AttemptSummaryDTO
		if err := copier.Copy(&summary, &attempt); err != nil {
			log.Error().Err(err).Str("attemptId", attempt.ID).Msg("Failed to copy attempt summary")
			continue
		}
		summary.Status = attempt.Status()
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *attemptService) loadAttempt(attemptID string) (*model.QuizAttempt, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	return attempt, nil
}

func attemptToDTO(attempt *model.QuizAttempt) *dto.AttemptResponseDTO {
	resp := &dto.AttemptResponseDTO{
		ID:          attempt.ID,
		QuizID:      attempt.QuizID,
		UserID:      attempt.UserID,
		Status:      attempt.Status(),
		Answers:     attempt.Answers,
		TotalMarks:  attempt.TotalMarks,
		Score:       attempt.Score,
		StartedAt:   attempt.StartedAt,
		CompletedAt: attempt.CompletedAt,
	}
	if resp.Answers == nil {
		resp.Answers = map[string]any{}
	}
	if attempt.CompletedAt != nil && attempt.Score != nil {
		resp.EvaluationResult = &dto.EvaluationResultDTO{
			Score:            *attempt.Score,
			Strengths:        decodeStringList(attempt.Strengths),
			Weaknesses:       decodeStringList(attempt.Weaknesses),
			Improvements:     decodeStringList(attempt.Improvements),
			DetailedFeedback: attempt.DetailedFeedback,
		}
	}
	return resp
}
