package workflow

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"careflow/models"
	"careflow/services/retrieval"
)

const dateWindowDays = 3 // slots within ±3 days of the preferred date qualify (inclusive)

// ExtractSchedulingPrefs pulls scheduling preferences out of free text, then
// lets explicit context values override what was inferred.
func (e *DefaultEngine) ExtractSchedulingPrefs(request string, reqContext map[string]any) models.SchedulingPrefs {
	prefs := models.SchedulingPrefs{Urgency: "routine"}
	lower := strings.ToLower(request)

	for _, word := range []string{"urgent", "asap", "soon", "immediate", "emergency"} {
		if strings.Contains(lower, word) {
			prefs.Urgency = "urgent"
			break
		}
	}

	now := e.now()
	switch {
	case strings.Contains(lower, "today"):
		prefs.PreferredDate = now.Format("2006-01-02")
	case strings.Contains(lower, "tomorrow"):
		prefs.PreferredDate = now.AddDate(0, 0, 1).Format("2006-01-02")
	case strings.Contains(lower, "next week"):
		prefs.PreferredDate = now.AddDate(0, 0, 7).Format("2006-01-02")
	}

	switch {
	case strings.Contains(lower, "morning") || strings.Contains(lower, "am"):
		prefs.PreferredTime = "morning"
	case strings.Contains(lower, "afternoon") || strings.Contains(lower, "pm"):
		prefs.PreferredTime = "afternoon"
	case strings.Contains(lower, "evening"):
		prefs.PreferredTime = "evening"
	}

	// Explicit context values win over inferred ones. A triage priority of
	// emergency or urgent escalates the urgency unless the context pins it.
	if reqContext != nil {
		if v, ok := reqContext["priority"].(string); ok {
			switch models.Priority(strings.ToLower(v)) {
			case models.PriorityEmergency, models.PriorityUrgent:
				prefs.Urgency = "urgent"
			}
		}
		if v, ok := reqContext["urgency"].(string); ok && v != "" {
			prefs.Urgency = strings.ToLower(v)
		}
		if v, ok := reqContext["preferred_date"].(string); ok && v != "" {
			prefs.PreferredDate = v
		}
		if v, ok := reqContext["preferred_time"].(string); ok && v != "" {
			prefs.PreferredTime = v
		}
		if v, ok := reqContext["provider_type"].(string); ok && v != "" {
			prefs.ProviderType = v
		}
	}

	return prefs
}

// ScheduleAppointment finds candidate slots for a request via similarity
// search, applies the preference filters (each a no-op when it would empty
// the list), and recommends the best remaining slot. Retrieval failure or an
// empty result set drops down to direct catalog filtering.
func (e *DefaultEngine) ScheduleAppointment(ctx context.Context, request string, reqContext map[string]any) *models.SchedulingResult {
	prefs := e.ExtractSchedulingPrefs(request, reqContext)

	if e.Retriever == nil {
		return e.fallbackSchedule(request, prefs)
	}

	query := request
	if prefs.ProviderType != "" {
		query = fmt.Sprintf("%s appointment: %s", prefs.ProviderType, request)
	}

	hits, err := e.Retriever.Search(ctx, retrieval.IndexSlots, query, matchCandidates)
	if err != nil {
		log.Printf("Slot retrieval failed, using fallback: %v", err)
		return e.fallbackSchedule(request, prefs)
	}

	slotsByID := e.slotIndex()
	candidates := make([]models.Slot, 0, len(hits))
	for _, hit := range hits {
		slot, ok := slotsByID[hit.DocID]
		if !ok {
			continue
		}
		slot.Distance = hit.Distance
		slot.MatchScore = displayScore(hit.Distance)
		candidates = append(candidates, slot)
	}
	if len(candidates) == 0 {
		return e.fallbackSchedule(request, prefs)
	}

	filtered := e.applySlotFilters(candidates, prefs)

	// Stable sort keeps retrieval order for equal distances.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Distance < filtered[j].Distance
	})

	recommended := filtered[0]
	reasoning := fmt.Sprintf("Found appointment slot with %s on %s at %s. Matched based on: %q.",
		recommended.ProviderName, recommended.Date, recommended.Time, request)
	if prefs.Urgency == "urgent" {
		reasoning += " Prioritized for urgent scheduling."
	}

	available := filtered
	if len(available) > matchLimit {
		available = available[:matchLimit]
	}

	return &models.SchedulingResult{
		AvailableSlots:  available,
		RecommendedSlot: &recommended,
		Reasoning:       reasoning,
		Request:         request,
	}
}

// applySlotFilters runs the provider-type, urgency, date-window and
// time-of-day filters in sequence with the empty-result no-op policy.
func (e *DefaultEngine) applySlotFilters(slots []models.Slot, prefs models.SchedulingPrefs) []models.Slot {
	filtered := slots

	if prefs.ProviderType != "" {
		// The slot catalog has no emergency_room entries (walk-in only).
		providerType := prefs.ProviderType
		if providerType == "emergency_room" {
			providerType = "urgent_care"
		}
		filtered = keepOrRevert(filtered, func(s models.Slot) bool {
			return s.ProviderType == providerType
		})
	}

	if prefs.Urgency == "urgent" {
		today := e.now().Format("2006-01-02")
		tomorrow := e.now().AddDate(0, 0, 1).Format("2006-01-02")
		filtered = keepOrRevert(filtered, func(s models.Slot) bool {
			return s.Date == today || s.Date == tomorrow
		})
	}

	if prefs.PreferredDate != "" {
		filtered = keepOrRevert(filtered, func(s models.Slot) bool {
			return withinDateWindow(s.Date, prefs.PreferredDate)
		})
	}

	if prefs.PreferredTime != "" {
		filtered = keepOrRevert(filtered, func(s models.Slot) bool {
			return inTimeBucket(s.Time, prefs.PreferredTime)
		})
	}

	return filtered
}

// keepOrRevert filters slots by pred, reverting to the input when the filter
// would leave nothing.
func keepOrRevert(slots []models.Slot, pred func(models.Slot) bool) []models.Slot {
	var kept []models.Slot
	for _, s := range slots {
		if pred(s) {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return slots
	}
	return kept
}

// withinDateWindow reports whether slotDate falls within ±dateWindowDays of
// preferred, endpoints inclusive. Unparseable dates are excluded.
func withinDateWindow(slotDate, preferred string) bool {
	if slotDate == preferred {
		return true
	}
	sd, err := time.Parse("2006-01-02", slotDate)
	if err != nil {
		return false
	}
	pd, err := time.Parse("2006-01-02", preferred)
	if err != nil {
		return false
	}
	diff := sd.Sub(pd).Hours() / 24
	if diff < 0 {
		diff = -diff
	}
	return diff <= dateWindowDays
}

// inTimeBucket reports whether a HH:MM time falls in the named bucket:
// morning [6,12), afternoon [12,17), evening [17,21).
func inTimeBucket(slotTime, bucket string) bool {
	hour := 12
	if idx := strings.Index(slotTime, ":"); idx > 0 {
		var h int
		if _, err := fmt.Sscanf(slotTime[:idx], "%d", &h); err == nil {
			hour = h
		}
	}
	switch bucket {
	case "morning":
		return hour >= 6 && hour < 12
	case "afternoon":
		return hour >= 12 && hour < 17
	case "evening":
		return hour >= 17 && hour < 21
	default:
		return false
	}
}

// fallbackSchedule filters the static slot catalog directly when retrieval is
// unavailable, finally relaxing to any available slot.
func (e *DefaultEngine) fallbackSchedule(request string, prefs models.SchedulingPrefs) *models.SchedulingResult {
	available := make([]models.Slot, 0, len(e.Slots))
	for _, s := range e.Slots {
		if s.Available {
			available = append(available, s)
		}
	}

	filtered := available
	if prefs.ProviderType != "" {
		providerType := prefs.ProviderType
		if providerType == "emergency_room" {
			providerType = "urgent_care"
		}
		var kept []models.Slot
		for _, s := range filtered {
			if s.ProviderType == providerType {
				kept = append(kept, s)
			}
		}
		filtered = kept
	}
	if prefs.Urgency == "urgent" {
		today := e.now().Format("2006-01-02")
		tomorrow := e.now().AddDate(0, 0, 1).Format("2006-01-02")
		var kept []models.Slot
		for _, s := range filtered {
			if s.Date == today || s.Date == tomorrow {
				kept = append(kept, s)
			}
		}
		filtered = kept
	}
	if len(filtered) == 0 {
		filtered = available
	}

	if len(filtered) == 0 {
		return &models.SchedulingResult{
			AvailableSlots: []models.Slot{},
			Reasoning:      "No available slots found. Please try again later.",
			Request:        request,
		}
	}

	recommended := filtered[0]
	recommended.MatchScore = 1.0

	list := filtered
	if len(list) > matchLimit {
		list = list[:matchLimit]
	}
	for i := range list {
		list[i].MatchScore = 1.0
	}

	return &models.SchedulingResult{
		AvailableSlots:  list,
		RecommendedSlot: &recommended,
		Reasoning: fmt.Sprintf("Found appointment slot with %s on %s at %s. (Fallback mode - retrieval unavailable)",
			recommended.ProviderName, recommended.Date, recommended.Time),
		Request: request,
	}
}

// runScheduling is the scheduling stage function.
func (e *DefaultEngine) runScheduling(ctx context.Context, wf *models.WorkflowContext) {
	// Carry provider type and priority from earlier stages into the
	// scheduling context without mutating the caller's map.
	schedulingContext := make(map[string]any, len(wf.Context)+2)
	for k, v := range wf.Context {
		schedulingContext[k] = v
	}
	if wf.MatchedProvider != nil {
		if _, ok := schedulingContext["provider_type"]; !ok {
			schedulingContext["provider_type"] = wf.MatchedProvider.Type
		}
	}
	if wf.Priority != "" {
		schedulingContext["priority"] = string(wf.Priority)
	}

	result := e.ScheduleAppointment(ctx, wf.UserMessage, schedulingContext)

	wf.SchedulingResult = result
	wf.RecommendedSlot = result.RecommendedSlot
	wf.AvailableSlots = result.AvailableSlots
	wf.NextStep = models.StepHumanConfirmation
}
