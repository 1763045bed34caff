package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/podut/wp-ai-studio/internal/models"
)

const (
	openAIDefaultBaseURL   = "https://api.openai.com/v1"
	deepSeekDefaultBaseURL = "https://api.deepseek.com"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Temperature    float64         `json:"temperature"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// resolveBaseURL returns the endpoint root for an OpenAI-compatible
// provider: an explicit override wins, otherwise the provider default.
// A trailing slash is stripped so path joining is deterministic.
func resolveBaseURL(settings models.AISettings) string {
	url := settings.BaseURL
	if url == "" {
		if settings.Provider == models.ProviderDeepSeek {
			url = deepSeekDefaultBaseURL
		} else {
			url = openAIDefaultBaseURL
		}
	}
	return strings.TrimRight(url, "/")
}

// callOpenAICompatible posts a chat completion to an OpenAI-compatible
// endpoint (OpenAI, DeepSeek, or a user-supplied base URL). The JSON
// response_format directive is attached only for structured requests.
func (s *Service) callOpenAICompatible(ctx context.Context, settings models.AISettings, prompt string, structured bool) (string, error) {
	endpoint := resolveBaseURL(settings) + "/chat/completions"

	reqBody := chatCompletionRequest{
		Model: settings.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a helpful assistant that returns strict JSON."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	}
	if structured {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+settings.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ProviderHTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat response contained no choices")
	}

	return completion.Choices[0].Message.Content, nil
}
