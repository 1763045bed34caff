package ai

import (
	"context"

	"github.com/podut/wp-ai-studio/internal/models"
)

// supportsInlineImages reports whether a provider can return image
// bytes directly. Only the Gemini backend exposes inline image output;
// every other provider goes straight to the prompt-text fallback.
func supportsInlineImages(provider models.Provider) bool {
	return provider == models.ProviderGoogle
}

// GenerateFeaturedImage produces a featured image for an article. When
// the active provider supports inline images the result carries base64
// image data; otherwise, or when image generation fails, the result
// degrades to a refined generation prompt the user can take elsewhere.
func (s *Service) GenerateFeaturedImage(ctx context.Context, title, content string, opts models.ImageOptions) (*models.ImageResult, error) {
	snapshot := s.snapshot()
	if snapshot.APIKey == "" {
		return nil, ErrMissingCredential
	}

	if supportsInlineImages(snapshot.Provider) {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		data, err := s.callGeminiImage(ctx, snapshot, imagePrompt(title, content, opts))
		if err == nil {
			return &models.ImageResult{Base64: data}, nil
		}
		s.logger.Warn().Err(err).Msg("Inline image generation failed, falling back to prompt text")
	}

	prompt, err := s.Run(ctx, imageFallbackPrompt(title, opts), false)
	if err != nil {
		return nil, err
	}
	return &models.ImageResult{Prompt: prompt}, nil
}
