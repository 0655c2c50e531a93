package service_test

import (
	"context"
	"testing"

	"quizforge/internal/dto"
	"quizforge/internal/llm"
	"quizforge/internal/model"
	"quizforge/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradableQuiz() *model.Quiz {
	return &model.Quiz{
		ID:         "quiz-1",
		Title:      "European Capitals",
		TotalMarks: 100,
		Questions: []model.QuizQuestion{
			{ID: "q1", Text: "Capital of France?", Kind: model.KindShortAnswer, Marks: 40, Position: 1},
			{ID: "q2", Text: "Discuss the role of capitals in nation building.", Kind: model.KindEssay, Marks: 60, Position: 2},
		},
	}
}

func TestEvaluateParsesStructuredResult(t *testing.T) {
	provider := &stubProvider{output: "```json\n" + `{
		"score": 85.5,
		"strengths": ["clear writing"],
		"weaknesses": [],
		"improvements": ["cite sources"],
		"detailed_feedback": "A strong submission overall."
	}` + "\n```"}
	svc := service.NewEvaluationService(stubFactory(provider))

	result, err := svc.Evaluate(context.Background(), gradableQuiz(), map[string]any{"q1": "Paris"}, testConfig)
	require.NoError(t, err)
	assert.Equal(t, 85.5, result.Score)
	assert.Equal(t, []string{"clear writing"}, result.Strengths)
	assert.Equal(t, "A strong submission overall.", result.DetailedFeedback)

	assert.Contains(t, provider.lastReq.Prompt, "Capital of France?")
	assert.Contains(t, provider.lastReq.Prompt, "Paris")
	assert.Contains(t, provider.lastReq.Prompt, "No answer provided", "unanswered questions must be marked explicitly")
}

func TestEvaluateGradesUnpersistedQuiz(t *testing.T) {
	quiz, err := service.AssembleQuiz("Inline Capitals", nil, []dto.InlineQuestionDTO{
		{ID: "caller-q1", Text: "Capital of France?", Kind: "multiple_choice", Options: []string{"Paris", "Berlin"}, CorrectAnswer: "Paris", Marks: 2},
		{Text: "Name the capital of Portugal.", Kind: "short_answer", Marks: 3},
	})
	require.NoError(t, err)

	provider := &stubProvider{output: `{"score": 4, "strengths": [], "weaknesses": [], "improvements": [], "detailed_feedback": "One slip."}`}
	svc := service.NewEvaluationService(stubFactory(provider))

	result, err := svc.Evaluate(context.Background(), quiz, map[string]any{"caller-q1": "Paris"}, testConfig)
	require.NoError(t, err)
	assert.Equal(t, 4.0, result.Score)

	assert.Contains(t, provider.lastReq.Prompt, "Total marks available: 5")
	assert.Contains(t, provider.lastReq.Prompt, "Learner's answer: Paris", "answers keyed by caller-supplied IDs must reach the prompt")
	assert.Contains(t, provider.lastReq.Prompt, "No answer provided")
}

func TestEvaluateRejectsScoreAboveTotalMarks(t *testing.T) {
	provider := &stubProvider{output: `{"score": 150, "strengths": [], "weaknesses": [], "improvements": [], "detailed_feedback": "Great."}`}
	svc := service.NewEvaluationService(stubFactory(provider))

	result, err := svc.Evaluate(context.Background(), gradableQuiz(), nil, testConfig)
	assert.Nil(t, result, "an out-of-range score must not be clamped into validity")
	var evalErr *service.EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.Contains(t, evalErr.Reason, "150")
}

func TestEvaluateRejectsNegativeScore(t *testing.T) {
	provider := &stubProvider{output: `{"score": -3, "detailed_feedback": "Hmm."}`}
	svc := service.NewEvaluationService(stubFactory(provider))

	_, err := svc.Evaluate(context.Background(), gradableQuiz(), nil, testConfig)
	var evalErr *service.EvaluationError
	require.ErrorAs(t, err, &evalErr)
}

func TestEvaluateRejectsEmptyFeedback(t *testing.T) {
	provider := &stubProvider{output: `{"score": 50, "strengths": [], "weaknesses": [], "improvements": [], "detailed_feedback": ""}`}
	svc := service.NewEvaluationService(stubFactory(provider))

	_, err := svc.Evaluate(context.Background(), gradableQuiz(), nil, testConfig)
	var evalErr *service.EvaluationError
	require.ErrorAs(t, err, &evalErr)
}

func TestEvaluateNormalizesMissingListsToEmpty(t *testing.T) {
	provider := &stubProvider{output: `{"score": 70, "detailed_feedback": "Solid work."}`}
	svc := service.NewEvaluationService(stubFactory(provider))

	result, err := svc.Evaluate(context.Background(), gradableQuiz(), nil, testConfig)
	require.NoError(t, err)
	assert.NotNil(t, result.Strengths)
	assert.NotNil(t, result.Weaknesses)
	assert.NotNil(t, result.Improvements)
	assert.Empty(t, result.Strengths)
}

func TestEvaluateSurfacesParseError(t *testing.T) {
	provider := &stubProvider{output: "The learner did fine, I would say around 70 points."}
	svc := service.NewEvaluationService(stubFactory(provider))

	_, err := svc.Evaluate(context.Background(), gradableQuiz(), nil, testConfig)
	var parseErr *llm.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestEvaluateRejectsQuizWithoutQuestions(t *testing.T) {
	svc := service.NewEvaluationService(stubFactory(&stubProvider{output: "{}"}))
	_, err := svc.Evaluate(context.Background(), &model.Quiz{ID: "empty", TotalMarks: 10}, nil, testConfig)
	var evalErr *service.EvaluationError
	require.ErrorAs(t, err, &evalErr)
}
