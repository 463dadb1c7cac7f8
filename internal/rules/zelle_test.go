package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"expense-reporter/internal/domain"
)

func TestIsTransfer(t *testing.T) {
	assert.True(t, IsTransfer("ZELLE TO JANE DOE ON 04/30"))
	assert.False(t, IsTransfer("ZELLE FROM JANE DOE"))
	assert.False(t, IsTransfer("ONLINE TRANSFER TO WAY2SAVE SAVINGS"))
	assert.False(t, IsTransfer(""))
}

func TestExtractTransferRecipient(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "name ends at date marker",
			input:    "ZELLE TO JANE DOE ON 04/30 REF #123",
			expected: "JANE DOE",
		},
		{
			name:     "name ends at reference marker",
			input:    "ZELLE TO JOHN SMITH REF #PP0ABC123",
			expected: "JOHN SMITH",
		},
		{
			name:     "date marker preferred over reference marker",
			input:    "ZELLE TO JANE DOE ON 04/30 REF PP0XYZ",
			expected: "JANE DOE",
		},
		{
			name:     "no marker takes first three tokens",
			input:    "ZELLE TO JOHN Q PUBLIC SMITH",
			expected: "JOHN Q PUBLIC",
		},
		{
			name:     "short name without marker kept whole",
			input:    "ZELLE TO JANE DOE",
			expected: "JANE DOE",
		},
		{
			name:     "lowercase input uppercased",
			input:    "zelle to jane doe on 04/30",
			expected: "JANE DOE",
		},
		{
			name:     "bare transfer verb",
			input:    "ZELLE TO",
			expected: domain.RecipientUnknown,
		},
		{
			name:     "not a transfer",
			input:    "CHECK # 1034",
			expected: domain.RecipientUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractTransferRecipient(tt.input))
		})
	}
}

func TestIsTransferFamily(t *testing.T) {
	assert.True(t, IsTransferFamily("ZELLE - JANE DOE"))
	assert.True(t, IsTransferFamily("zelle - jane doe"))
	assert.False(t, IsTransferFamily("ZELLE"), "combined transfer bucket is not a per-person family")
	assert.False(t, IsTransferFamily("KING SOOPERS"))
}

func TestFamilyKey(t *testing.T) {
	tests := []struct {
		name     string
		row      domain.ClassifiedTransaction
		expected string
	}{
		{
			name:     "peer transfer keys by recipient",
			row:      domain.ClassifiedTransaction{Recipient: "JANE DOE", MatchedPattern: "ZELLE"},
			expected: "ZELLE - JANE DOE",
		},
		{
			name:     "matched row keys by canonical pattern",
			row:      domain.ClassifiedTransaction{MatchedPattern: "KING SOOPERS", Normalized: "KING SOOPERS DENVER CO"},
			expected: "KING SOOPERS",
		},
		{
			name:     "unmatched row keys by first two tokens",
			row:      domain.ClassifiedTransaction{Normalized: "SOME RANDOM VENDOR LLC"},
			expected: "SOME RANDOM",
		},
		{
			name:     "single token unmatched row",
			row:      domain.ClassifiedTransaction{Normalized: "VENDCO"},
			expected: "VENDCO",
		},
		{
			name:     "empty description falls back to catch-all",
			row:      domain.ClassifiedTransaction{},
			expected: domain.GroupOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FamilyKey(tt.row))
		})
	}
}

func TestOrganizedKey(t *testing.T) {
	assert.Equal(t, "ZELLE",
		OrganizedKey(domain.ClassifiedTransaction{Recipient: "JANE DOE"}),
		"every recipient collapses into one combined bucket")
	assert.Equal(t, "ZELLE",
		OrganizedKey(domain.ClassifiedTransaction{Recipient: "JOHN SMITH"}))
	assert.Equal(t, "KING SOOPERS",
		OrganizedKey(domain.ClassifiedTransaction{MatchedPattern: "KING SOOPERS"}))
}

func TestGroupKey(t *testing.T) {
	row := domain.ClassifiedTransaction{Group: "GROCERIES / MARKETS"}
	assert.Equal(t, "GROCERIES / MARKETS", GroupKey(row))
}
