package repository

import (
	"quizforge/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.QuizAttempt) error
	FindByID(id string) (*model.QuizAttempt, error)
	FindInProgress(quizID, userID string) (*model.QuizAttempt, error)
	FindAllByUser(userID string) ([]model.QuizAttempt, error)
	UpdateAnswers(id string, answers datatypes.JSONMap) error
	CompleteInProgress(attempt *model.QuizAttempt) (bool, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByID(id string) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.db.First(&attempt, "id = ?", id).Error
	return &attempt, err
}

func (r *attemptRepository) FindInProgress(quizID, userID string) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.db.
		Where("quiz_id = ? AND user_id = ? AND completed_at IS NULL", quizID, userID).
		First(&attempt).Error
	return &attempt, err
}

func (r *attemptRepository) FindAllByUser(userID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.db.
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) UpdateAnswers(id string, answers datatypes.JSONMap) error {
	return r.db.Model(&model.QuizAttempt{}).
		Where("id = ?", id).
		Update("answers", answers).Error
}

// CompleteInProgress stores the evaluation outcome with a conditional update.
// The completed_at IS NULL guard makes a double submission race lose cleanly:
// the second writer affects zero rows and reports false.
func (r *attemptRepository) CompleteInProgress(attempt *model.QuizAttempt) (bool, error) {
	res := r.db.Model(&model.QuizAttempt{}).
		Where("id = ? AND completed_at IS NULL", attempt.ID).
		Updates(map[string]any{
			"score":             attempt.Score,
			"strengths":         attempt.Strengths,
			"weaknesses":        attempt.Weaknesses,
			"improvements":      attempt.Improvements,
			"detailed_feedback": attempt.DetailedFeedback,
			"completed_at":      attempt.CompletedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
