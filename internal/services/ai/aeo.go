package ai

import (
	"context"
	"encoding/json"

	"github.com/podut/wp-ai-studio/internal/models"
)

// GenerateAnswerParagraph builds a direct-answer HTML block for the
// start of an article. It first asks for a JSON-wrapped response; when
// that cannot be parsed it degrades to a plain-text request and returns
// the raw HTML.
func (s *Service) GenerateAnswerParagraph(ctx context.Context, content string) (string, error) {
	prompt := answerParagraphPrompt(content)

	raw, err := s.runStructured(ctx, prompt+"\nReturn JSON: { \"html\": \"...\" }")
	if err == nil {
		if html, fieldErr := decodeStringField(raw, "html"); fieldErr == nil {
			return html, nil
		}
	}

	return s.Run(ctx, prompt, false)
}

// GenerateTLDR builds a TL;DR summary block as HTML
func (s *Service) GenerateTLDR(ctx context.Context, content string) (string, error) {
	raw, err := s.runStructured(ctx, tldrPrompt(content))
	if err != nil {
		return "", err
	}
	return decodeStringField(raw, "html")
}

// GenerateFAQSchema builds an FAQ section with matching FAQPage JSON-LD
func (s *Service) GenerateFAQSchema(ctx context.Context, content string) (*models.FAQResult, error) {
	raw, err := s.runStructured(ctx, faqSchemaPrompt(content))
	if err != nil {
		return nil, err
	}

	// jsonLD may arrive as an object or as a string; normalize to string
	var wrapper struct {
		HTML   string          `json:"html"`
		JSONLD json.RawMessage `json:"jsonLD"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, ErrUnparseableResponse
	}
	if wrapper.HTML == "" {
		return nil, &MissingFieldError{Field: "html"}
	}

	result := &models.FAQResult{HTML: wrapper.HTML}
	if len(wrapper.JSONLD) > 0 {
		var asString string
		if err := json.Unmarshal(wrapper.JSONLD, &asString); err == nil {
			result.JSONLD = asString
		} else {
			result.JSONLD = string(wrapper.JSONLD)
		}
	}
	return result, nil
}

// CleanHTML normalizes article HTML: single leading H1, flattened
// JSON-LD, deduplicated FAQ blocks, empty tags removed
func (s *Service) CleanHTML(ctx context.Context, content, keyword string) (string, error) {
	raw, err := s.runStructured(ctx, cleanHTMLPrompt(content, keyword))
	if err != nil {
		return "", err
	}
	return decodeStringField(raw, "cleanedHtml")
}

// AuditContent runs the answer-engine audit over article HTML and its
// SEO metadata
func (s *Service) AuditContent(ctx context.Context, content, keyword, seoTitle, seoDesc string) (*models.AuditResult, error) {
	raw, err := s.runStructured(ctx, auditPrompt(content, keyword, seoTitle, seoDesc))
	if err != nil {
		return nil, err
	}

	var result models.AuditResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, ErrUnparseableResponse
	}
	return &result, nil
}

// GenerateSEOMetadata regenerates the SEO title and meta description
func (s *Service) GenerateSEOMetadata(ctx context.Context, content, keyword string) (*models.SEOMetadata, error) {
	raw, err := s.runStructured(ctx, seoMetadataPrompt(content, keyword))
	if err != nil {
		return nil, err
	}

	var meta models.SEOMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, ErrUnparseableResponse
	}
	if meta.SEOTitle == "" {
		return nil, &MissingFieldError{Field: "seoTitle"}
	}
	return &meta, nil
}

// GenerateInternalLinks weaves links to existing posts into article
// HTML and returns the linked content
func (s *Service) GenerateInternalLinks(ctx context.Context, content string, posts []models.Post) (string, error) {
	raw, err := s.runStructured(ctx, internalLinksPrompt(content, posts))
	if err != nil {
		return "", err
	}
	return decodeStringField(raw, "linkedContent")
}
