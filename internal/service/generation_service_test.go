package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"quizforge/internal/dto"
	"quizforge/internal/llm"
	"quizforge/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = llm.Config{Provider: llm.ProviderOpenAI, Model: "gpt-4o-mini", APIKey: "test-key"}

func fencedQuestions(t *testing.T, questions []dto.GeneratedQuestionDTO) string {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"questions": questions})
	require.NoError(t, err)
	return "Here is your quiz:\n```json\n" + string(payload) + "\n```\nGood luck!"
}

func validMCQuestions(n int) []dto.GeneratedQuestionDTO {
	out := make([]dto.GeneratedQuestionDTO, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, dto.GeneratedQuestionDTO{
			Text:          "What is the capital of country " + string(rune('A'+i)) + "?",
			Kind:          "multiple_choice",
			Options:       []string{"Paris", "Berlin", "Madrid", "Rome"},
			CorrectAnswer: "Paris",
			Marks:         2,
		})
	}
	return out
}

func TestGenerateQuestionsFromFencedOutput(t *testing.T) {
	questions := validMCQuestions(5)
	provider := &stubProvider{output: fencedQuestions(t, questions)}
	svc := service.NewGenerationService(stubFactory(provider))

	got, err := svc.GenerateQuestions(context.Background(), dto.GenerationRequestDTO{Topic: "geography", Count: 5}, testConfig)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, questions, got, "validated questions must come back unmodified")
	require.NotNil(t, provider.lastReq)
	assert.Contains(t, provider.lastReq.Prompt, "geography")
}

func TestGenerateQuestionsRejectsWholeBatchOnOneBadQuestion(t *testing.T) {
	questions := validMCQuestions(3)
	questions[1].Options = []string{"only one"} // below the minimum
	provider := &stubProvider{output: fencedQuestions(t, questions)}
	svc := service.NewGenerationService(stubFactory(provider))

	got, err := svc.GenerateQuestions(context.Background(), dto.GenerationRequestDTO{Topic: "geography", Count: 3}, testConfig)
	assert.Nil(t, got)
	var genErr *service.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Reason, "question 2")
}

func TestGenerateQuestionsRejectsUnreferencedCorrectAnswer(t *testing.T) {
	questions := validMCQuestions(1)
	questions[0].CorrectAnswer = "London" // not among the options
	provider := &stubProvider{output: fencedQuestions(t, questions)}
	svc := service.NewGenerationService(stubFactory(provider))

	_, err := svc.GenerateQuestions(context.Background(), dto.GenerationRequestDTO{Topic: "geography", Count: 1}, testConfig)
	var genErr *service.GenerationError
	require.ErrorAs(t, err, &genErr)
}

func TestGenerateQuestionsAcceptsIndexCorrectAnswer(t *testing.T) {
	questions := validMCQuestions(1)
	questions[0].CorrectAnswer = "2" // index into the options list
	provider := &stubProvider{output: fencedQuestions(t, questions)}
	svc := service.NewGenerationService(stubFactory(provider))

	got, err := svc.GenerateQuestions(context.Background(), dto.GenerationRequestDTO{Topic: "geography", Count: 1}, testConfig)
	require.NoError(t, err)
	assert.Equal(t, "2", got[0].CorrectAnswer)
}

func TestGenerateQuestionsRejectsIndexWithTrailingGarbage(t *testing.T) {
	questions := validMCQuestions(1)
	questions[0].CorrectAnswer = "2abc"
	provider := &stubProvider{output: fencedQuestions(t, questions)}
	svc := service.NewGenerationService(stubFactory(provider))

	_, err := svc.GenerateQuestions(context.Background(), dto.GenerationRequestDTO{Topic: "geography", Count: 1}, testConfig)
	var genErr *service.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Reason, "2abc")
}

func TestGenerateQuestionsCountBounds(t *testing.T) {
	provider := &stubProvider{output: "{}"}
	svc := service.NewGenerationService(stubFactory(provider))

	for _, count := range []int{0, -1, 51} {
		_, err := svc.GenerateQuestions(context.Background(), dto.GenerationRequestDTO{Topic: "x", Count: count}, testConfig)
		assert.Error(t, err, "count %d must be rejected", count)
	}
	assert.Nil(t, provider.lastReq, "out-of-range counts must never reach the provider")
}

func TestGenerateQuestionsRequiresTopicOrDocument(t *testing.T) {
	svc := service.NewGenerationService(stubFactory(&stubProvider{output: "{}"}))
	_, err := svc.GenerateQuestions(context.Background(), dto.GenerationRequestDTO{Count: 3}, testConfig)
	assert.Error(t, err)
}

func TestGenerateQuestionsToleratesCountMismatch(t *testing.T) {
	// The model returned 3 valid questions for a request of 5: callers get
	// what validated, not an error.
	provider := &stubProvider{output: fencedQuestions(t, validMCQuestions(3))}
	svc := service.NewGenerationService(stubFactory(provider))

	got, err := svc.GenerateQuestions(context.Background(), dto.GenerationRequestDTO{Topic: "geography", Count: 5}, testConfig)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestGenerateQuestionsAttachesDocumentForGemini(t *testing.T) {
	provider := &stubProvider{output: fencedQuestions(t, validMCQuestions(2))}
	fetched := false
	svc := service.NewGenerationServiceWithFetcher(stubFactory(provider), func(ctx context.Context, url string) (*llm.DocumentPart, error) {
		fetched = true
		return &llm.DocumentPart{Data: []byte("%PDF-1.4"), MIMEType: "application/pdf"}, nil
	})

	geminiCfg := llm.Config{Provider: llm.ProviderGemini, Model: "gemini-1.5-flash", APIKey: "k"}
	_, err := svc.GenerateQuestions(context.Background(), dto.GenerationRequestDTO{DocumentURL: "https://cdn.example.com/notes.pdf", Count: 2}, geminiCfg)
	require.NoError(t, err)
	assert.True(t, fetched)
	require.NotNil(t, provider.lastReq.Document)
	assert.Equal(t, "application/pdf", provider.lastReq.Document.MIMEType)
}

func TestGenerateQuestionsFoldsDocumentURLIntoPromptForTextProviders(t *testing.T) {
	provider := &stubProvider{output: fencedQuestions(t, validMCQuestions(2))}
	svc := service.NewGenerationServiceWithFetcher(stubFactory(provider), func(ctx context.Context, url string) (*llm.DocumentPart, error) {
		t.Fatal("text-only providers must not fetch the document")
		return nil, nil
	})

	_, err := svc.GenerateQuestions(context.Background(), dto.GenerationRequestDTO{DocumentURL: "https://cdn.example.com/notes.pdf", Count: 2}, testConfig)
	require.NoError(t, err)
	assert.Nil(t, provider.lastReq.Document)
	assert.Contains(t, provider.lastReq.Prompt, "https://cdn.example.com/notes.pdf")
}

func TestGenerateQuestionsSurfacesParseError(t *testing.T) {
	provider := &stubProvider{output: "I could not produce a quiz today, sorry."}
	svc := service.NewGenerationService(stubFactory(provider))

	_, err := svc.GenerateQuestions(context.Background(), dto.GenerationRequestDTO{Topic: "geography", Count: 2}, testConfig)
	var parseErr *llm.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Snippet, "I could not produce")
}
