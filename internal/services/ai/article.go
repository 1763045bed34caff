package ai

import (
	"context"
	"encoding/json"

	"github.com/podut/wp-ai-studio/internal/models"
)

// GenerateFullArticle writes a complete SEO-optimized article draft for
// a keyword. The optional articleContext carries constraints such as the
// planned title.
func (s *Service) GenerateFullArticle(ctx context.Context, keyword, articleContext string) (*models.ArticleContent, error) {
	raw, err := s.runStructured(ctx, articlePrompt(keyword, articleContext))
	if err != nil {
		return nil, err
	}

	var article models.ArticleContent
	if err := json.Unmarshal(raw, &article); err != nil {
		return nil, ErrUnparseableResponse
	}
	return &article, nil
}
