package models

// AgeRange restricts a provider to patients within [Min, Max] years.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ProviderInfo describes one provider type in the catalog.
type ProviderInfo struct {
	Type                string    `json:"type"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Specialties         []string  `json:"specialties"`
	Availability        string    `json:"availability"`
	AppointmentRequired bool      `json:"appointment_required"`
	AgeRange            *AgeRange `json:"age_range,omitempty"`
}

// ProviderMatch is one scored provider candidate returned by matching.
type ProviderMatch struct {
	Type                string    `json:"type"`
	Name                string    `json:"name"`
	Availability        string    `json:"availability"`
	AppointmentRequired bool      `json:"appointment_required"`
	AgeRange            *AgeRange `json:"age_range,omitempty"`
	// MatchScore is a similarity display score in (0, 1]; higher is better.
	MatchScore float64 `json:"match_score"`
	// distance kept internally for sorting (lower is better).
	Distance float64 `json:"-"`
}

// ProviderMatchResult is the outcome of the provider matching stage.
type ProviderMatchResult struct {
	MatchedProviders []ProviderMatch `json:"matched_providers"`
	PrimaryProvider  *ProviderMatch  `json:"primary_provider,omitempty"`
	Reasoning        string          `json:"reasoning"`
	Symptoms         string          `json:"symptoms"`
	Priority         Priority        `json:"priority,omitempty"`
}
