package ai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podut/wp-ai-studio/internal/models"
)

func TestExtractStrategyEntries(t *testing.T) {
	entry := `{"keyword": "seo", "title": "SEO Guide", "slug": "seo-guide", "suggestedDate": "2026-09-01"}`

	tests := []struct {
		name    string
		raw     string
		wantLen int
		wantErr bool
	}{
		{
			name:    "bare array",
			raw:     `[` + entry + `]`,
			wantLen: 1,
		},
		{
			name:    "wrapped under plan",
			raw:     `{"plan": [` + entry + `]}`,
			wantLen: 1,
		},
		{
			name:    "wrapped under schedule",
			raw:     `{"schedule": [` + entry + `, ` + entry + `]}`,
			wantLen: 2,
		},
		{
			name:    "unrecognized key still found",
			raw:     `{"editorial_calendar": [` + entry + `]}`,
			wantLen: 1,
		},
		{
			name:    "non-array candidate skipped in favor of real array",
			raw:     `{"plan": "March plan", "items": [` + entry + `]}`,
			wantLen: 1,
		},
		{
			name:    "candidate key holds null",
			raw:     `{"plan": null}`,
			wantErr: true,
		},
		{
			name:    "no array anywhere",
			raw:     `{"message": "cannot comply"}`,
			wantErr: true,
		},
		{
			name:    "scalar response",
			raw:     `"just a string"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := extractStrategyEntries(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStrategyFormat)
				return
			}
			require.NoError(t, err)
			assert.Len(t, entries, tt.wantLen)
		})
	}
}

func TestExtractStrategyEntriesFields(t *testing.T) {
	raw := json.RawMessage(`{"plan": [{"keyword": "local seo", "title": "Local SEO", "slug": "local-seo", "suggestedDate": "2026-09-15"}]}`)

	entries, err := extractStrategyEntries(raw)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, models.StrategyEntry{
		Keyword:       "local seo",
		Title:         "Local SEO",
		Slug:          "local-seo",
		SuggestedDate: "2026-09-15",
	}, entries[0])
}
