package ai

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/genai"

	"github.com/podut/wp-ai-studio/internal/models"
)

// imageModel is the Gemini model used for inline image generation
const imageModel = "gemini-2.5-flash-image"

// callGemini sends a prompt through the Gemini API. An empty response
// text is returned as an empty string, not an error.
func (s *Service) callGemini(ctx context.Context, settings models.AISettings, prompt string, structured bool) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  settings.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	config := &genai.GenerateContentConfig{}
	if structured {
		config.ResponseMIMEType = "application/json"
	} else {
		config.ResponseMIMEType = "text/plain"
	}

	resp, err := client.Models.GenerateContent(ctx, settings.Model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}

	return resp.Text(), nil
}

// callGeminiImage requests inline image data from the Gemini image
// model. Returns the base64-encoded image bytes of the first inline
// part, or an error when the response carries none.
func (s *Service) callGeminiImage(ctx context.Context, settings models.AISettings, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  settings.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, imageModel, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini image call failed: %w", err)
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return base64.StdEncoding.EncodeToString(part.InlineData.Data), nil
			}
		}
	}

	return "", fmt.Errorf("Gemini image response contained no inline image data")
}
