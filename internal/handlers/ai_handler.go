package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/podut/wp-ai-studio/internal/interfaces"
	"github.com/podut/wp-ai-studio/internal/models"
	"github.com/podut/wp-ai-studio/internal/services/ai"
)

// AIHandler exposes the AI gateway operations over HTTP
type AIHandler struct {
	ai       interfaces.AIService
	projects interfaces.ProjectStorage
	logger   arbor.ILogger
}

// NewAIHandler creates a new AI handler
func NewAIHandler(aiService interfaces.AIService, projects interfaces.ProjectStorage, logger arbor.ILogger) *AIHandler {
	return &AIHandler{
		ai:       aiService,
		projects: projects,
		logger:   logger,
	}
}

// GenerateKeywords generates SEO keywords for a niche
func (h *AIHandler) GenerateKeywords(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Niche   string             `json:"niche"`
		Count   int                `json:"count"`
		Details string             `json:"details"`
		Geo     models.GeoSettings `json:"geo"`
	}
	if !DecodeJSONBody(w, r, &req) {
		return
	}
	if req.Niche == "" {
		WriteError(w, http.StatusBadRequest, "niche is required")
		return
	}
	if req.Count <= 0 {
		req.Count = 10
	}

	keywords, err := h.ai.GenerateKeywords(r.Context(), req.Niche, req.Count, req.Details, req.Geo)
	if err != nil {
		h.writeAIError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"keywords": keywords})
}

// GenerateClusterTopics generates topic cluster ideas for a niche
func (h *AIHandler) GenerateClusterTopics(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Niche string             `json:"niche"`
		Geo   models.GeoSettings `json:"geo"`
	}
	if !DecodeJSONBody(w, r, &req) {
		return
	}
	if req.Niche == "" {
		WriteError(w, http.StatusBadRequest, "niche is required")
		return
	}

	topics, err := h.ai.GenerateClusterTopics(r.Context(), req.Niche, req.Geo)
	if err != nil {
		h.writeAIError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"topics": topics})
}

// GenerateArticle generates a full article for a keyword
func (h *AIHandler) GenerateArticle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Keyword string `json:"keyword"`
		Context string `json:"context"`
	}
	if !DecodeJSONBody(w, r, &req) {
		return
	}
	if req.Keyword == "" {
		WriteError(w, http.StatusBadRequest, "keyword is required")
		return
	}

	article, err := h.ai.GenerateFullArticle(r.Context(), req.Keyword, req.Context)
	if err != nil {
		h.writeAIError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, article)
}

type contentRequest struct {
	Content string `json:"content"`
	Keyword string `json:"keyword"`
}

func (h *AIHandler) decodeContentRequest(w http.ResponseWriter, r *http.Request) (*contentRequest, bool) {
	var req contentRequest
	if !DecodeJSONBody(w, r, &req) {
		return nil, false
	}
	if req.Content == "" {
		WriteError(w, http.StatusBadRequest, "content is required")
		return nil, false
	}
	return &req, true
}

// GenerateAnswerParagraph generates a direct-answer paragraph
func (h *AIHandler) GenerateAnswerParagraph(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeContentRequest(w, r)
	if !ok {
		return
	}
	html, err := h.ai.GenerateAnswerParagraph(r.Context(), req.Content)
	if err != nil {
		h.writeAIError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"html": html})
}

// GenerateTLDR generates a TL;DR summary block
func (h *AIHandler) GenerateTLDR(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeContentRequest(w, r)
	if !ok {
		return
	}
	html, err := h.ai.GenerateTLDR(r.Context(), req.Content)
	if err != nil {
		h.writeAIError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"html": html})
}

// GenerateFAQSchema generates an FAQ section with JSON-LD markup
func (h *AIHandler) GenerateFAQSchema(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeContentRequest(w, r)
	if !ok {
		return
	}
	result, err := h.ai.GenerateFAQSchema(r.Context(), req.Content)
	if err != nil {
		h.writeAIError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// CleanHTML normalizes article HTML structure
func (h *AIHandler) CleanHTML(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeContentRequest(w, r)
	if !ok {
		return
	}
	html, err := h.ai.CleanHTML(r.Context(), req.Content, req.Keyword)
	if err != nil {
		h.writeAIError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"cleanedHtml": html})
}

// GenerateSEOMetadata generates an SEO title and description
func (h *AIHandler) GenerateSEOMetadata(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeContentRequest(w, r)
	if !ok {
		return
	}
	meta, err := h.ai.GenerateSEOMetadata(r.Context(), req.Content, req.Keyword)
	if err != nil {
		h.writeAIError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, meta)
}

// AuditContent scores content against an SEO checklist
func (h *AIHandler) AuditContent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content  string `json:"content"`
		Keyword  string `json:"keyword"`
		SEOTitle string `json:"seoTitle"`
		SEODesc  string `json:"seoDesc"`
	}
	if !DecodeJSONBody(w, r, &req) {
		return
	}
	if req.Content == "" {
		WriteError(w, http.StatusBadRequest, "content is required")
		return
	}

	result, err := h.ai.AuditContent(r.Context(), req.Content, req.Keyword, req.SEOTitle, req.SEODesc)
	if err != nil {
		h.writeAIError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// GenerateInternalLinks weaves internal links to a project's existing
// posts into the content
func (h *AIHandler) GenerateInternalLinks(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content   string `json:"content"`
		ProjectID string `json:"projectId"`
	}
	if !DecodeJSONBody(w, r, &req) {
		return
	}
	if req.Content == "" {
		WriteError(w, http.StatusBadRequest, "content is required")
		return
	}
	if req.ProjectID == "" {
		WriteError(w, http.StatusBadRequest, "projectId is required")
		return
	}

	project, err := h.projects.Get(r.Context(), req.ProjectID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error().Err(err).Msg("Failed to get project")
		WriteError(w, http.StatusInternalServerError, "Failed to get project")
		return
	}

	linked, err := h.ai.GenerateInternalLinks(r.Context(), req.Content, project.Posts)
	if err != nil {
		h.writeAIError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"linkedContent": linked})
}

// GenerateFeaturedImage generates a featured image, or a descriptive
// prompt when the configured provider cannot return image bytes
func (h *AIHandler) GenerateFeaturedImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string              `json:"title"`
		Content string              `json:"content"`
		Options models.ImageOptions `json:"options"`
	}
	if !DecodeJSONBody(w, r, &req) {
		return
	}
	if req.Title == "" {
		WriteError(w, http.StatusBadRequest, "title is required")
		return
	}

	result, err := h.ai.GenerateFeaturedImage(r.Context(), req.Title, req.Content, req.Options)
	if err != nil {
		h.writeAIError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

func (h *AIHandler) writeAIError(w http.ResponseWriter, err error) {
	var providerErr *ai.ProviderHTTPError
	switch {
	case errors.Is(err, ai.ErrMissingCredential):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &providerErr):
		h.logger.Warn().Err(err).Msg("AI provider request failed")
		WriteError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, ai.ErrUnparseableResponse), errors.Is(err, ai.ErrInvalidStrategyFormat):
		h.logger.Warn().Err(err).Msg("AI response could not be parsed")
		WriteError(w, http.StatusBadGateway, err.Error())
	default:
		h.logger.Error().Err(err).Msg("AI operation failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
