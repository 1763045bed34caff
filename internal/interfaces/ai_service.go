package interfaces

import (
	"context"

	"github.com/podut/wp-ai-studio/internal/models"
)

// AIService is the gateway for all AI provider operations.
// Configuration is replaced atomically; in-flight operations keep the
// settings they captured at call start.
type AIService interface {
	Configure(ctx context.Context, settings models.AISettings) error
	Settings() models.AISettings

	GenerateKeywords(ctx context.Context, niche string, count int, details string, geo models.GeoSettings) ([]string, error)
	GenerateClusterTopics(ctx context.Context, niche string, geo models.GeoSettings) ([]string, error)
	GenerateEditorialStrategy(ctx context.Context, keywords []string) ([]models.StrategyEntry, error)
	GenerateFullArticle(ctx context.Context, keyword, articleContext string) (*models.ArticleContent, error)

	GenerateAnswerParagraph(ctx context.Context, content string) (string, error)
	GenerateTLDR(ctx context.Context, content string) (string, error)
	GenerateFAQSchema(ctx context.Context, content string) (*models.FAQResult, error)
	CleanHTML(ctx context.Context, content, keyword string) (string, error)
	AuditContent(ctx context.Context, content, keyword, seoTitle, seoDesc string) (*models.AuditResult, error)
	GenerateSEOMetadata(ctx context.Context, content, keyword string) (*models.SEOMetadata, error)
	GenerateInternalLinks(ctx context.Context, content string, posts []models.Post) (string, error)
	GenerateFeaturedImage(ctx context.Context, title, content string, opts models.ImageOptions) (*models.ImageResult, error)
}
