package ai

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/podut/wp-ai-studio/internal/models"
)

// strategyWrapperKeys is the ordered candidate list checked when a
// strategy response wraps its array in an object.
var strategyWrapperKeys = []string{"plan", "items", "strategy", "schedule", "articles"}

// GenerateEditorialStrategy turns a keyword list into an editorial plan.
// Returns ErrInvalidStrategyFormat when the response contains no array
// in any recognized position.
func (s *Service) GenerateEditorialStrategy(ctx context.Context, keywords []string) ([]models.StrategyEntry, error) {
	raw, err := s.runStructured(ctx, strategyPrompt(keywords))
	if err != nil {
		return nil, err
	}
	return extractStrategyEntries(raw)
}

// extractStrategyEntries locates the strategy array in a response.
// A bare array is used directly. For object responses the candidate
// keys are tried in order, then the remaining keys are scanned in
// sorted order so the fallback is deterministic.
func extractStrategyEntries(raw json.RawMessage) ([]models.StrategyEntry, error) {
	var entries []models.StrategyEntry
	if err := json.Unmarshal(raw, &entries); err == nil {
		return entries, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, ErrInvalidStrategyFormat
	}

	for _, key := range strategyWrapperKeys {
		if inner, ok := wrapper[key]; ok && isJSONArray(inner) {
			if err := json.Unmarshal(inner, &entries); err == nil {
				return entries, nil
			}
		}
	}

	keys := make([]string, 0, len(wrapper))
	for key := range wrapper {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !isJSONArray(wrapper[key]) {
			continue
		}
		if err := json.Unmarshal(wrapper[key], &entries); err == nil {
			return entries, nil
		}
	}

	return nil, ErrInvalidStrategyFormat
}

// isJSONArray reports whether raw holds a JSON array value
func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == '['
		}
	}
	return false
}
