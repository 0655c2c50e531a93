package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"quizforge/internal/dto"
	"quizforge/internal/llm"
	"quizforge/internal/model"

	"github.com/rs/zerolog/log"
)

const (
	minQuestionCount = 1
	maxQuestionCount = 50

	generationTemperature = 0.7
	generationMaxTokens   = 8192
)

// GenerationService turns a topic or source document into a validated set of
// quiz questions via the configured LLM provider.
type GenerationService interface {
	GenerateQuestions(ctx context.Context, req dto.GenerationRequestDTO, cfg llm.Config) ([]dto.GeneratedQuestionDTO, error)
}

// DocumentFetcher downloads a source document for multimodal providers.
// Injected so tests never hit the network.
type DocumentFetcher func(ctx context.Context, url string) (*llm.DocumentPart, error)

type generationService struct {
	providers llm.Factory
	fetchDoc  DocumentFetcher
}

func NewGenerationService(providers llm.Factory) GenerationService {
	return &generationService{providers: providers, fetchDoc: llm.FetchDocument}
}

// NewGenerationServiceWithFetcher is used by tests to stub document fetching.
func NewGenerationServiceWithFetcher(providers llm.Factory, fetch DocumentFetcher) GenerationService {
	return &generationService{providers: providers, fetchDoc: fetch}
}

// questionsPayload is the expected envelope of the model output.
type questionsPayload struct {
	Questions []dto.GeneratedQuestionDTO `json:"questions"`
}

func (s *generationService) GenerateQuestions(ctx context.Context, req dto.GenerationRequestDTO, cfg llm.Config) ([]dto.GeneratedQuestionDTO, error) {
	if req.Count < minQuestionCount || req.Count > maxQuestionCount {
		return nil, fmt.Errorf("question count must be between %d and %d, got %d", minQuestionCount, maxQuestionCount, req.Count)
	}
	if req.Topic == "" && req.DocumentURL == "" {
		return nil, fmt.Errorf("either a topic or a document URL is required")
	}

	provider, err := s.providers(cfg)
	if err != nil {
		return nil, err
	}

	llmReq := llm.Request{
		Temperature:     generationTemperature,
		MaxOutputTokens: generationMaxTokens,
	}
	if req.DocumentURL != "" {
		// Only the Gemini family ingests documents directly; text-only
		// providers get the URL folded into the prompt instead.
		attached := false
		if cfg.Provider == llm.ProviderGemini {
			doc, fetchErr := s.fetchDoc(ctx, req.DocumentURL)
			if fetchErr != nil {
				return nil, fmt.Errorf("failed to load source document: %w", fetchErr)
			}
			llmReq.Document = doc
			attached = true
		}
		llmReq.Prompt = buildDocumentPrompt(req.DocumentURL, req.Topic, req.Count, attached)
	} else {
		llmReq.Prompt = buildTopicPrompt(req.Topic, req.Count)
	}

	raw, err := provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, err
	}

	payload, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var parsed questionsPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, &GenerationError{Reason: fmt.Sprintf("payload does not match the questions envelope: %v", err)}
	}
	if len(parsed.Questions) == 0 {
		return nil, &GenerationError{Reason: "payload contains no questions"}
	}

	// One bad question fails the whole batch; partial acceptance would hand
	// learners a quiz with holes in it.
	for i, q := range parsed.Questions {
		if err := validateGeneratedQuestion(q); err != nil {
			return nil, &GenerationError{Reason: fmt.Sprintf("question %d: %v", i+1, err)}
		}
	}

	if len(parsed.Questions) != req.Count {
		// Models under- and over-deliver; callers get what was validated.
		log.Warn().Int("requested", req.Count).Int("returned", len(parsed.Questions)).Msg("model returned a different question count than requested")
	}

	log.Info().Int("count", len(parsed.Questions)).Str("provider", cfg.Provider).Str("model", cfg.Model).Msg("generated question set")
	return parsed.Questions, nil
}

func validateGeneratedQuestion(q dto.GeneratedQuestionDTO) error {
	if q.Text == "" {
		return fmt.Errorf("text is empty")
	}
	if q.Marks < 1 {
		return fmt.Errorf("marks must be at least 1, got %d", q.Marks)
	}
	switch q.Kind {
	case model.KindMultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("multiple-choice question needs at least 2 options, got %d", len(q.Options))
		}
		if q.CorrectAnswer == "" {
			return fmt.Errorf("multiple-choice question is missing a correct answer")
		}
		if !answerReferencesOption(q.CorrectAnswer, q.Options) {
			return fmt.Errorf("correct answer %q does not reference any option", q.CorrectAnswer)
		}
	case model.KindShortAnswer, model.KindEssay:
		// Free-text kinds carry no options.
	default:
		return fmt.Errorf("unknown question kind %q", q.Kind)
	}
	return nil
}

// answerReferencesOption accepts either the exact option text or a numeric
// index into the options list, since models emit both forms. The index form
// must be a clean integer; "2abc" is not a reference.
func answerReferencesOption(answer string, options []string) bool {
	for _, opt := range options {
		if answer == opt {
			return true
		}
	}
	if idx, err := strconv.Atoi(answer); err == nil {
		return idx >= 0 && idx < len(options)
	}
	return false
}
