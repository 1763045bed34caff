package models

// Provider identifies an AI provider backend
type Provider string

const (
	ProviderGoogle    Provider = "google"
	ProviderOpenAI    Provider = "openai"
	ProviderDeepSeek  Provider = "deepseek"
	ProviderAnthropic Provider = "anthropic"
)

// AISettings holds the active AI provider configuration
type AISettings struct {
	Provider Provider `json:"provider" validate:"oneof=google openai deepseek anthropic"`
	APIKey   string   `json:"apiKey"`
	Model    string   `json:"model"`
	BaseURL  string   `json:"baseUrl,omitempty"` // Endpoint override for OpenAI-compatible providers
}

// StrategyEntry is one row of a generated editorial strategy
type StrategyEntry struct {
	Keyword       string `json:"keyword"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	SuggestedDate string `json:"suggestedDate"`
}

// GeoSettings narrow keyword research to a locality
type GeoSettings struct {
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// ArticleContent is a fully generated article draft
type ArticleContent struct {
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	Content        string   `json:"content"` // HTML body
	Excerpt        string   `json:"excerpt"`
	SEOTitle       string   `json:"seoTitle"`
	SEODescription string   `json:"seoDesc"`
	FocusKeyword   string   `json:"focusKw"`
	SuggestedTags  []string `json:"suggestedTags"`
}

// SEOMetadata is a regenerated title/description pair
type SEOMetadata struct {
	SEOTitle       string `json:"seoTitle"`
	SEODescription string `json:"seoDesc"`
}

// FAQResult carries a generated FAQ block and its schema markup
type FAQResult struct {
	HTML   string `json:"html"`
	JSONLD string `json:"jsonLD"`
}

// AuditChecklist is the per-criterion breakdown of a content audit
type AuditChecklist struct {
	HasAnswerParagraph bool   `json:"hasAnswerParagraph"`
	HasTLDR            bool   `json:"hasTLDR"`
	HasFAQ             bool   `json:"hasFAQ"`
	StructureScore     int    `json:"structureScore"`
	KeywordDensity     string `json:"keywordDensity"`
}

// AuditResult is the outcome of an answer-engine content audit.
// It is ephemeral: injector operations may optimistically update the
// checklist and score without re-running the audit.
type AuditResult struct {
	Score              int            `json:"score"`
	InternalLinksCount int            `json:"internalLinksCount"`
	MetaAnalysis       string         `json:"metaAnalysis"`
	Checklist          AuditChecklist `json:"checklist"`
	Suggestions        []string       `json:"suggestions"`
}

// ImageOptions control featured image generation
type ImageOptions struct {
	Style          string `json:"style,omitempty"`
	TextOverlay    string `json:"textOverlay,omitempty"`
	BrandingColors string `json:"brandingColors,omitempty"`
	AspectRatio    string `json:"aspectRatio,omitempty"`
}

// ImageResult is either inline image data or, when the provider cannot
// produce images, a usable generation prompt
type ImageResult struct {
	Base64 string `json:"base64,omitempty"`
	Prompt string `json:"prompt,omitempty"`
}
