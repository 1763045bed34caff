package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/podut/wp-ai-studio/internal/models"
)

// anthropicMaxTokens is the fixed response budget for content operations
const anthropicMaxTokens = 4000

// callAnthropic sends a single-message completion through the Anthropic
// SDK. HTTP failures surface the status code and raw body through
// ProviderHTTPError so callers see provider diagnostics verbatim.
func (s *Service) callAnthropic(ctx context.Context, settings models.AISettings, prompt string) (string, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(settings.APIKey),
	)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(settings.Model),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	resp, err := client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &ProviderHTTPError{StatusCode: apiErr.StatusCode, Body: apiErr.RawJSON()}
		}
		return "", fmt.Errorf("Anthropic API call failed: %w", err)
	}

	var response strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			response.WriteString(block.Text)
		}
	}

	return response.String(), nil
}
