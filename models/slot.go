package models

// Slot is an appointment opportunity from the scheduling catalog. The engine
// only ever holds a copy; the catalog owns the record.
type Slot struct {
	SlotID          string `json:"slot_id"`
	ProviderType    string `json:"provider_type"`
	ProviderName    string `json:"provider_name"`
	Date            string `json:"date"` // YYYY-MM-DD
	Time            string `json:"time"` // HH:MM
	DurationMinutes int    `json:"duration_minutes"`
	Available       bool   `json:"available"`
	Description     string `json:"description,omitempty"`
	// MatchScore is a similarity display score in (0, 1]; higher is better.
	MatchScore float64 `json:"match_score,omitempty"`
	// distance kept internally for sorting (lower is better).
	Distance float64 `json:"-"`
}

// SchedulingResult is the outcome of the scheduling stage.
type SchedulingResult struct {
	AvailableSlots  []Slot `json:"available_slots"`
	RecommendedSlot *Slot  `json:"recommended_slot,omitempty"`
	Reasoning       string `json:"reasoning"`
	Request         string `json:"request"`
}

// SchedulingPrefs holds preferences extracted from free text and context.
type SchedulingPrefs struct {
	Urgency       string `json:"urgency"` // "urgent" or "routine"
	PreferredDate string `json:"preferred_date,omitempty"`
	PreferredTime string `json:"preferred_time,omitempty"` // morning/afternoon/evening
	ProviderType  string `json:"provider_type,omitempty"`
}
