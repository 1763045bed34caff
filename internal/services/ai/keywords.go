package ai

import (
	"context"

	"github.com/podut/wp-ai-studio/internal/models"
)

// GenerateKeywords produces SEO keyword ideas for a niche. Responses
// may arrive as a bare array or wrapped under "keywords"; any other
// valid JSON shape yields an empty list.
func (s *Service) GenerateKeywords(ctx context.Context, niche string, count int, details string, geo models.GeoSettings) ([]string, error) {
	raw, err := s.runStructured(ctx, keywordsPrompt(niche, count, details, geo))
	if err != nil {
		return nil, err
	}
	return decodeStringList(raw, "keywords"), nil
}

// GenerateClusterTopics produces a 10-item topic cluster: one pillar
// topic followed by nine supporting topics.
func (s *Service) GenerateClusterTopics(ctx context.Context, niche string, geo models.GeoSettings) ([]string, error) {
	raw, err := s.runStructured(ctx, clusterTopicsPrompt(niche, geo))
	if err != nil {
		return nil, err
	}
	return decodeStringList(raw, "topics"), nil
}
