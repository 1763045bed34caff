package ai

import (
	"encoding/json"
	"strings"
)

// ExtractJSON recovers a JSON document from a model response. Providers
// asked for JSON still occasionally wrap it in markdown fences or prose,
// so extraction runs a fixed fallback chain:
//
//  1. direct parse
//  2. parse after stripping ```json / ``` fences
//  3. parse the substring between the first '{' and the last '}'
//
// Returns ErrUnparseableResponse when every step fails.
func ExtractJSON(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), nil
	}

	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)
	if json.Valid([]byte(cleaned)) {
		return json.RawMessage(cleaned), nil
	}

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first != -1 && last != -1 && last > first {
		candidate := text[first : last+1]
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}

	return nil, ErrUnparseableResponse
}

// decodeStringList decodes a response that should be a list of strings.
// Accepts a bare array or an object wrapping the array under one of the
// given keys. Any other shape yields an empty list, not an error.
func decodeStringList(raw json.RawMessage, wrapperKeys ...string) []string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return []string{}
	}
	for _, key := range wrapperKeys {
		if inner, ok := wrapper[key]; ok {
			if err := json.Unmarshal(inner, &list); err == nil {
				return list
			}
		}
	}
	return []string{}
}

// decodeStringField decodes an object response and returns the named
// string field. A parseable object without the field is a
// MissingFieldError.
func decodeStringField(raw json.RawMessage, field string) (string, error) {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return "", ErrUnparseableResponse
	}
	inner, ok := wrapper[field]
	if !ok {
		return "", &MissingFieldError{Field: field}
	}
	var value string
	if err := json.Unmarshal(inner, &value); err != nil {
		return "", &MissingFieldError{Field: field}
	}
	return value, nil
}
