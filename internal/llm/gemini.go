package llm

import (
	"context"
	"errors"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// geminiProvider calls the Gemini generateContent API. The client is built
// per call because the API key is resolved per call (user overrides).
type geminiProvider struct {
	cfg Config
}

func (p *geminiProvider) Generate(ctx context.Context, req Request) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(p.cfg.APIKey))
	if err != nil {
		return "", wrapProviderErr(err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.cfg.Model)
	if req.Temperature > 0 {
		model.SetTemperature(float32(req.Temperature))
	}
	if req.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxOutputTokens))
	}

	var parts []genai.Part
	if req.Document != nil {
		parts = append(parts, genai.Blob{MIMEType: req.Document.MIMEType, Data: req.Document.Data})
	}
	parts = append(parts, genai.Text(req.Prompt))

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		log.Error().Err(err).Str("model", p.cfg.Model).Msg("Gemini generateContent call failed")
		return "", wrapProviderErr(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", wrapProviderErr(errors.New("gemini returned no content"))
	}

	out := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out += string(txt)
		}
	}
	if out == "" {
		return "", wrapProviderErr(errors.New("gemini returned no text content"))
	}
	return out, nil
}
