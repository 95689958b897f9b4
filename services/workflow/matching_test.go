package workflow

import (
	"context"
	"errors"
	"testing"

	"careflow/models"
	"careflow/services/retrieval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearcher returns canned hits per index, or an error.
type fakeSearcher struct {
	hits map[string][]retrieval.Scored
	err  error
}

func (f *fakeSearcher) Search(ctx context.Context, index, query string, k int) ([]retrieval.Scored, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hits[index], nil
}

func providerHits(typesByDistance map[string]float64) []retrieval.Scored {
	var hits []retrieval.Scored
	for id, d := range typesByDistance {
		hits = append(hits, retrieval.Scored{DocID: id, Distance: d})
	}
	return hits
}

func TestMatchProvidersPriorityFilter(t *testing.T) {
	engine := &DefaultEngine{
		Retriever: &fakeSearcher{hits: map[string][]retrieval.Scored{
			retrieval.IndexProviders: {
				{DocID: "primary_care", Distance: 0.1},
				{DocID: "urgent_care", Distance: 0.3},
				{DocID: "emergency_room", Distance: 0.5},
			},
		}},
	}

	// Urgent priority excludes routine providers even when they score better.
	result := engine.MatchProviders(context.Background(), "severe pain in my arm", models.PriorityUrgent, nil)
	require.NotNil(t, result.PrimaryProvider)
	assert.Equal(t, "urgent_care", result.PrimaryProvider.Type)
	for _, m := range result.MatchedProviders {
		assert.Contains(t, []string{"urgent_care", "emergency_room"}, m.Type)
	}

	// Emergency keeps only the emergency room.
	result = engine.MatchProviders(context.Background(), "chest pain", models.PriorityEmergency, nil)
	require.NotNil(t, result.PrimaryProvider)
	assert.Equal(t, "emergency_room", result.PrimaryProvider.Type)

	// Routine excludes the emergency room.
	result = engine.MatchProviders(context.Background(), "checkup", models.PriorityRoutine, nil)
	require.NotNil(t, result.PrimaryProvider)
	assert.Equal(t, "primary_care", result.PrimaryProvider.Type)
}

func TestMatchProvidersPriorityFilterRevertsWhenEmpty(t *testing.T) {
	engine := &DefaultEngine{
		Retriever: &fakeSearcher{hits: map[string][]retrieval.Scored{
			retrieval.IndexProviders: {
				{DocID: "dermatologist", Distance: 0.2},
			},
		}},
	}

	// No emergency-capable candidate survives the filter, so the original
	// candidate list is kept.
	result := engine.MatchProviders(context.Background(), "bad rash", models.PriorityEmergency, nil)
	require.NotNil(t, result.PrimaryProvider)
	assert.Equal(t, "dermatologist", result.PrimaryProvider.Type)
}

func TestMatchProvidersAgeFilter(t *testing.T) {
	engine := &DefaultEngine{
		Retriever: &fakeSearcher{hits: map[string][]retrieval.Scored{
			retrieval.IndexProviders: {
				{DocID: "pediatrician", Distance: 0.4},
				{DocID: "primary_care", Distance: 0.2},
			},
		}},
	}

	// An adult patient filters out the pediatrician.
	result := engine.MatchProviders(context.Background(), "mild cough", models.PriorityRoutine, map[string]any{"age": 40})
	for _, m := range result.MatchedProviders {
		assert.NotEqual(t, "pediatrician", m.Type)
	}

	// A child keeps both; the closer match still wins.
	result = engine.MatchProviders(context.Background(), "mild cough", models.PriorityRoutine, map[string]any{"age": 8})
	require.NotNil(t, result.PrimaryProvider)
	assert.Equal(t, "primary_care", result.PrimaryProvider.Type)
	assert.Len(t, result.MatchedProviders, 2)
}

func TestMatchProvidersContextPriorityOverride(t *testing.T) {
	engine := &DefaultEngine{
		Retriever: &fakeSearcher{hits: map[string][]retrieval.Scored{
			retrieval.IndexProviders: providerHits(map[string]float64{
				"primary_care":   0.1,
				"emergency_room": 0.9,
			}),
		}},
	}

	result := engine.MatchProviders(context.Background(), "checkup", models.PriorityRoutine,
		map[string]any{"priority": "emergency"})
	require.NotNil(t, result.PrimaryProvider)
	assert.Equal(t, "emergency_room", result.PrimaryProvider.Type)
}

func TestMatchProvidersSortedByDistance(t *testing.T) {
	engine := &DefaultEngine{
		Retriever: &fakeSearcher{hits: map[string][]retrieval.Scored{
			retrieval.IndexProviders: {
				{DocID: "orthopedist", Distance: 0.7},
				{DocID: "primary_care", Distance: 0.2},
				{DocID: "dermatologist", Distance: 0.5},
			},
		}},
	}

	result := engine.MatchProviders(context.Background(), "joint pain", models.PriorityRoutine, nil)
	require.Len(t, result.MatchedProviders, 3)
	assert.Equal(t, "primary_care", result.MatchedProviders[0].Type)
	assert.Equal(t, "dermatologist", result.MatchedProviders[1].Type)
	assert.Equal(t, "orthopedist", result.MatchedProviders[2].Type)

	// Display scores decrease with distance and stay in (0, 1].
	for i := 1; i < len(result.MatchedProviders); i++ {
		assert.LessOrEqual(t, result.MatchedProviders[i].MatchScore, result.MatchedProviders[i-1].MatchScore)
	}
}

func TestMatchProvidersFallback(t *testing.T) {
	tests := []struct {
		name     string
		engine   *DefaultEngine
		priority models.Priority
		want     string
	}{
		{"nil retriever emergency", &DefaultEngine{}, models.PriorityEmergency, "emergency_room"},
		{"nil retriever urgent", &DefaultEngine{}, models.PriorityUrgent, "urgent_care"},
		{"nil retriever routine", &DefaultEngine{}, models.PriorityRoutine, "primary_care"},
		{
			"search error",
			&DefaultEngine{Retriever: &fakeSearcher{err: errors.New("connection refused")}},
			models.PriorityRoutine,
			"primary_care",
		},
		{
			"unknown doc ids",
			&DefaultEngine{Retriever: &fakeSearcher{hits: map[string][]retrieval.Scored{
				retrieval.IndexProviders: {{DocID: "nonexistent", Distance: 0.1}},
			}}},
			models.PriorityUrgent,
			"urgent_care",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.engine.MatchProviders(context.Background(), "symptoms", tt.priority, nil)
			require.NotNil(t, result.PrimaryProvider)
			assert.Equal(t, tt.want, result.PrimaryProvider.Type)
			assert.Contains(t, result.Reasoning, "Fallback mode")
			assert.Equal(t, 1.0, result.PrimaryProvider.MatchScore)
		})
	}
}
