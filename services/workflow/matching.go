package workflow

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"careflow/models"
	"careflow/services/retrieval"
)

const matchCandidates = 10
const matchLimit = 5

// MatchProviders matches symptoms to provider types via similarity search,
// then applies priority and age filters. A filter that would empty the
// candidate list is treated as a no-op for that step. When retrieval is
// unavailable the deterministic priority fallback is used instead.
func (e *DefaultEngine) MatchProviders(ctx context.Context, symptoms string, priority models.Priority, reqContext map[string]any) *models.ProviderMatchResult {
	// Context may override the triage priority.
	if p := contextPriority(reqContext); p != "" {
		priority = p
	}
	age, hasAge := contextAge(reqContext)

	if e.Retriever == nil {
		return fallbackMatch(symptoms, priority)
	}

	query := symptoms
	if priority != "" {
		query = fmt.Sprintf("%s priority: %s", priority, symptoms)
	}

	hits, err := e.Retriever.Search(ctx, retrieval.IndexProviders, query, matchCandidates)
	if err != nil {
		log.Printf("Provider retrieval failed, using fallback: %v", err)
		return fallbackMatch(symptoms, priority)
	}
	if len(hits) == 0 {
		return fallbackMatch(symptoms, priority)
	}

	candidates := make([]models.ProviderMatch, 0, len(hits))
	for _, hit := range hits {
		info, ok := providerCatalog[hit.DocID]
		if !ok {
			continue
		}
		candidates = append(candidates, matchFromInfo(info, hit.Distance))
	}
	if len(candidates) == 0 {
		return fallbackMatch(symptoms, priority)
	}

	filtered := filterByPriority(candidates, priority)
	if hasAge {
		filtered = filterByAge(filtered, age)
	}

	// Stable sort keeps retrieval order for equal distances.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Distance < filtered[j].Distance
	})

	primary := filtered[0]
	reasoning := fmt.Sprintf("Matched to %s using semantic search based on symptoms: %q.", primary.Name, symptoms)
	if priority != "" {
		reasoning += fmt.Sprintf(" Priority level: %s.", priority)
	}
	if hasAge && age < 18 {
		reasoning += " Pediatric care recommended based on age."
	}

	matched := filtered
	if len(matched) > matchLimit {
		matched = matched[:matchLimit]
	}

	return &models.ProviderMatchResult{
		MatchedProviders: matched,
		PrimaryProvider:  &primary,
		Reasoning:        reasoning,
		Symptoms:         symptoms,
		Priority:         priority,
	}
}

// filterByPriority narrows candidates to provider types appropriate for the
// triage priority. Falls back to the unfiltered list if nothing survives.
func filterByPriority(candidates []models.ProviderMatch, priority models.Priority) []models.ProviderMatch {
	if priority == "" {
		return candidates
	}

	var filtered []models.ProviderMatch
	for _, c := range candidates {
		switch priority {
		case models.PriorityEmergency:
			if c.Type == "emergency_room" {
				filtered = append(filtered, c)
			}
		case models.PriorityUrgent:
			if c.Type == "emergency_room" || c.Type == "urgent_care" {
				filtered = append(filtered, c)
			}
		default: // routine or unknown
			if c.Type != "emergency_room" {
				filtered = append(filtered, c)
			}
		}
	}

	if len(filtered) == 0 {
		return candidates
	}
	return filtered
}

// filterByAge keeps providers whose declared age range covers the patient.
// Providers without an age range accept all ages. Falls back to the
// unfiltered list if nothing survives.
func filterByAge(candidates []models.ProviderMatch, age int) []models.ProviderMatch {
	var filtered []models.ProviderMatch
	for _, c := range candidates {
		if c.AgeRange == nil || (c.AgeRange.Min <= age && age <= c.AgeRange.Max) {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return candidates
	}
	return filtered
}

// fallbackMatch maps priority directly to a provider type when retrieval is
// unavailable.
func fallbackMatch(symptoms string, priority models.Priority) *models.ProviderMatchResult {
	var providerType, reasoning string
	switch priority {
	case models.PriorityEmergency:
		providerType = "emergency_room"
		reasoning = "Emergency condition - recommend Emergency Room."
	case models.PriorityUrgent:
		providerType = "urgent_care"
		reasoning = "Urgent condition - recommend Urgent Care."
	default:
		providerType = "primary_care"
		reasoning = "Routine condition - recommend Primary Care Physician."
	}

	primary := matchFromInfo(providerCatalog[providerType], 0)
	primary.MatchScore = 1.0

	return &models.ProviderMatchResult{
		MatchedProviders: []models.ProviderMatch{primary},
		PrimaryProvider:  &primary,
		Reasoning:        reasoning + " (Fallback mode - retrieval unavailable)",
		Symptoms:         symptoms,
		Priority:         priority,
	}
}

func contextPriority(context map[string]any) models.Priority {
	if context == nil {
		return ""
	}
	if v, ok := context["priority"]; ok {
		if s, ok := v.(string); ok && s != "" {
			return models.Priority(strings.ToLower(s))
		}
	}
	return ""
}

func contextAge(context map[string]any) (int, bool) {
	if context == nil {
		return 0, false
	}
	if v, ok := context["age"]; ok {
		return toInt(v)
	}
	return 0, false
}

// runProviderMatching is the provider matching stage function.
func (e *DefaultEngine) runProviderMatching(ctx context.Context, wf *models.WorkflowContext) {
	symptoms := wf.Symptoms
	if symptoms == "" {
		symptoms = wf.UserMessage
	}

	result := e.MatchProviders(ctx, symptoms, wf.Priority, wf.Context)

	wf.ProviderMatch = result
	wf.MatchedProvider = result.PrimaryProvider
	wf.NextStep = models.StepScheduling
}
