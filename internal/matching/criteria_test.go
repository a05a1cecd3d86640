// internal/matching/criteria_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sponsornest/internal/models"
)

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "lowercases and trims",
			input:    []string{"  Charity Event ", "SPORT EVENT"},
			expected: []string{"charity event", "sport event"},
		},
		{
			name:     "drops generic terms",
			input:    []string{"Event", "events", "tech conference"},
			expected: []string{"tech conference"},
		},
		{
			name:     "drops empty entries",
			input:    []string{"", "  ", "food festival"},
			expected: []string{"food festival"},
		},
		{
			name:     "nil input",
			input:    nil,
			expected: []string{},
		},
		{
			name:     "all generic",
			input:    []string{"Event", "Events"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_Normalize_Idempotent(t *testing.T) {
	n := NewNormalizer(nil)

	inputs := [][]string{
		{"Charity Event", "  Sport EVENT "},
		{"events", "tech conference", ""},
		{},
	}
	for _, input := range inputs {
		once := n.Normalize(input)
		assert.Equal(t, once, n.Normalize(once))
	}
}

func TestNormalizer_NormalizeEventCriteria_ReadmitsFirstRawEntry(t *testing.T) {
	n := NewNormalizer(nil)

	// All entries generic: the first raw entry comes back normalized so the
	// event still carries a matching key.
	out := n.NormalizeEventCriteria([]string{" Events ", "event"})
	assert.Equal(t, []string{"events"}, out)

	// Non-generic entries survive as usual.
	out = n.NormalizeEventCriteria([]string{"Events", "Charity Event"})
	assert.Equal(t, []string{"charity event"}, out)

	// Empty input stays empty.
	assert.Empty(t, n.NormalizeEventCriteria(nil))
}

func TestNormalizer_CustomGenericTerms(t *testing.T) {
	n := NewNormalizer([]string{"misc", "other"})

	out := n.Normalize([]string{"Misc", "event", "tech conference"})
	assert.Equal(t, []string{"event", "tech conference"}, out)
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name     string
		event    []string
		provider []string
		expected []string
	}{
		{
			name:     "single overlap",
			event:    []string{"charity event"},
			provider: []string{"charity event", "sport event"},
			expected: []string{"charity event"},
		},
		{
			name:     "multiple overlap sorted",
			event:    []string{"sport event", "charity event"},
			provider: []string{"charity event", "sport event"},
			expected: []string{"charity event", "sport event"},
		},
		{
			name:     "no overlap",
			event:    []string{"career event"},
			provider: []string{"food festival"},
			expected: nil,
		},
		{
			name:     "empty event side",
			event:    nil,
			provider: []string{"charity event"},
			expected: nil,
		},
		{
			name:     "empty provider side",
			event:    []string{"charity event"},
			provider: nil,
			expected: nil,
		},
		{
			name:     "duplicates collapse",
			event:    []string{"charity event", "charity event"},
			provider: []string{"charity event"},
			expected: []string{"charity event"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Intersect(tt.event, tt.provider))
		})
	}
}

func TestSelectFallback(t *testing.T) {
	providers := []models.Provider{
		{ID: "p1", BusinessName: "TechCorp", WillingToSponsorOtherCriteria: false},
		{ID: "p2", BusinessName: "OpenSponsor", BusinessType: "Retail", Email: "open@example.com",
			SponsorshipAmount: 2500, EventCount: 7, WillingToSponsorOtherCriteria: true},
	}

	out := SelectFallback(providers)

	assert.Len(t, out, 1)
	assert.Equal(t, "p2", out[0].ProviderID)
	assert.Equal(t, "OpenSponsor", out[0].BusinessName)
	assert.Equal(t, 0, out[0].MatchStrength)
	assert.Empty(t, out[0].MatchedCriteria)
	assert.Equal(t, models.FallbackNote, out[0].Note)
}

func TestSelectFallback_NoneWilling(t *testing.T) {
	providers := []models.Provider{
		{ID: "p1", WillingToSponsorOtherCriteria: false},
	}
	assert.Empty(t, SelectFallback(providers))
}
