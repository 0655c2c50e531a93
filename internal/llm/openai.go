package llm

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// chatCompletionProvider covers the OpenAI-compatible chat-completion family.
// Groq exposes the same envelope under a different base URL, so both tags
// share this implementation.
type chatCompletionProvider struct {
	cfg     Config
	baseURL string
}

func (p *chatCompletionProvider) Generate(ctx context.Context, req Request) (string, error) {
	opts := []openai.Option{
		openai.WithToken(p.cfg.APIKey),
		openai.WithModel(p.cfg.Model),
	}
	if p.baseURL != "" {
		opts = append(opts, openai.WithBaseURL(p.baseURL))
	}
	client, err := openai.New(opts...)
	if err != nil {
		return "", wrapProviderErr(err)
	}

	callOpts := []llms.CallOption{}
	if req.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(req.Temperature))
	}
	if req.MaxOutputTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(req.MaxOutputTokens))
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, client, req.Prompt, callOpts...)
	if err != nil {
		log.Error().Err(err).Str("provider", p.cfg.Provider).Str("model", p.cfg.Model).Msg("chat completion call failed")
		return "", wrapProviderErr(err)
	}
	if out == "" {
		return "", wrapProviderErr(errors.New("model returned empty completion"))
	}
	return out, nil
}
