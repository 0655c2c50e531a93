package service_test

import (
	"context"
	"sync"

	"quizforge/internal/dto"
	"quizforge/internal/llm"
	"quizforge/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// stubProvider returns a canned response and records the last request so
// tests can assert on the prompt or attached document.
type stubProvider struct {
	output  string
	err     error
	lastReq *llm.Request
}

func (p *stubProvider) Generate(ctx context.Context, req llm.Request) (string, error) {
	p.lastReq = &req
	if p.err != nil {
		return "", p.err
	}
	return p.output, nil
}

func stubFactory(p *stubProvider) llm.Factory {
	return func(cfg llm.Config) (llm.Provider, error) {
		return p, nil
	}
}

type fakeQuizRepo struct {
	mu      sync.Mutex
	quizzes map[string]*model.Quiz
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: map[string]*model.Quiz{}}
}

func (r *fakeQuizRepo) Create(quiz *model.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quizzes[quiz.ID] = quiz
	return nil
}

func (r *fakeQuizRepo) FindByID(id string) (*model.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	quiz, ok := r.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return quiz, nil
}

func (r *fakeQuizRepo) FindByIDWithQuestions(id string) (*model.Quiz, error) {
	return r.FindByID(id)
}

func (r *fakeQuizRepo) FindAll() ([]model.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Quiz, 0, len(r.quizzes))
	for _, q := range r.quizzes {
		out = append(out, *q)
	}
	return out, nil
}

// fakeAttemptRepo mimics the partial unique index: creating a second
// in-progress attempt for the same quiz and user fails with
// gorm.ErrDuplicatedKey.
type fakeAttemptRepo struct {
	mu           sync.Mutex
	attempts     map[string]*model.QuizAttempt
	lookupMisses int // force FindInProgress to miss this many times
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{attempts: map[string]*model.QuizAttempt{}}
}

func (r *fakeAttemptRepo) Create(attempt *model.QuizAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.attempts {
		if existing.QuizID == attempt.QuizID && existing.UserID == attempt.UserID && existing.CompletedAt == nil {
			return gorm.ErrDuplicatedKey
		}
	}
	copied := *attempt
	r.attempts[attempt.ID] = &copied
	return nil
}

func (r *fakeAttemptRepo) FindByID(id string) (*model.QuizAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	attempt, ok := r.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *attempt
	return &copied, nil
}

func (r *fakeAttemptRepo) FindInProgress(quizID, userID string) (*model.QuizAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupMisses > 0 {
		r.lookupMisses--
		return nil, gorm.ErrRecordNotFound
	}
	for _, attempt := range r.attempts {
		if attempt.QuizID == quizID && attempt.UserID == userID && attempt.CompletedAt == nil {
			copied := *attempt
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAttemptRepo) FindAllByUser(userID string) ([]model.QuizAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.QuizAttempt
	for _, attempt := range r.attempts {
		if attempt.UserID == userID {
			out = append(out, *attempt)
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) UpdateAnswers(id string, answers datatypes.JSONMap) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	attempt, ok := r.attempts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	attempt.Answers = answers
	return nil
}

func (r *fakeAttemptRepo) CompleteInProgress(attempt *model.QuizAttempt) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.attempts[attempt.ID]
	if !ok || stored.CompletedAt != nil {
		return false, nil
	}
	stored.Score = attempt.Score
	stored.Strengths = attempt.Strengths
	stored.Weaknesses = attempt.Weaknesses
	stored.Improvements = attempt.Improvements
	stored.DetailedFeedback = attempt.DetailedFeedback
	stored.CompletedAt = attempt.CompletedAt
	return true, nil
}

type fakeSettingRepo struct {
	mu       sync.Mutex
	settings map[string]*model.ProviderSetting
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{settings: map[string]*model.ProviderSetting{}}
}

func (r *fakeSettingRepo) FindByUser(userID string) (*model.ProviderSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	setting, ok := r.settings[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *setting
	return &copied, nil
}

func (r *fakeSettingRepo) Upsert(setting *model.ProviderSetting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *setting
	r.settings[setting.UserID] = &copied
	return nil
}

// stubEvaluator lets attempt tests force grading success or failure without
// any provider plumbing.
type stubEvaluator struct {
	result *dto.EvaluationResultDTO
	err    error
	calls  int
}

func (e *stubEvaluator) Evaluate(ctx context.Context, quiz *model.Quiz, answers map[string]any, cfg llm.Config) (*dto.EvaluationResultDTO, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return e.result, nil
}

type stubSettings struct {
	cfg llm.Config
}

func (s *stubSettings) Resolve(ctx context.Context, userID string) (llm.Config, error) {
	return s.cfg, nil
}

func (s *stubSettings) ResolveWithOverride(ctx context.Context, userID string, override *dto.ProviderConfigDTO) (llm.Config, error) {
	return s.cfg, nil
}

func (s *stubSettings) Get(ctx context.Context, userID string) (*dto.ProviderSettingResponseDTO, error) {
	return &dto.ProviderSettingResponseDTO{Provider: s.cfg.Provider, Model: s.cfg.Model, IsDefault: true}, nil
}

func (s *stubSettings) Save(ctx context.Context, userID string, req dto.ProviderSettingSaveDTO) (*dto.ProviderSettingResponseDTO, error) {
	return &dto.ProviderSettingResponseDTO{Provider: req.Provider, Model: req.Model}, nil
}
