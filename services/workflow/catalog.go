package workflow

import (
	"fmt"
	"math"
	"strings"

	"careflow/models"
)

// providerCatalog is the static catalog of provider types. Retrieval documents
// and the matching fallback are both derived from it.
var providerCatalog = map[string]models.ProviderInfo{
	"emergency_room": {
		Type:                "emergency_room",
		Name:                "Emergency Room",
		Description:         "Emergency room provides immediate medical care for life-threatening conditions, severe injuries, cardiac events, strokes, severe allergic reactions, trauma, and critical emergencies. Available 24/7, no appointment needed.",
		Specialties:         []string{"emergency", "trauma", "critical care", "life-threatening", "cardiac arrest", "stroke", "severe injury"},
		Availability:        "24/7",
		AppointmentRequired: false,
	},
	"urgent_care": {
		Type:                "urgent_care",
		Name:                "Urgent Care",
		Description:         "Urgent care centers handle non-life-threatening urgent medical conditions such as fractures, sprains, minor injuries, infections, high fevers, severe pain, and conditions requiring prompt attention but not emergency care. Extended hours, walk-in available.",
		Specialties:         []string{"urgent", "non-life-threatening", "fractures", "minor injuries", "infections", "sprains", "fevers"},
		Availability:        "Extended hours",
		AppointmentRequired: false,
	},
	"primary_care": {
		Type:                "primary_care",
		Name:                "Primary Care Physician",
		Description:         "Primary care physicians provide general medical care, routine checkups, preventive care, management of chronic conditions, health screenings, vaccinations, and general wellness. Regular business hours, appointment required.",
		Specialties:         []string{"general", "routine", "preventive", "chronic conditions", "checkups", "wellness", "general medicine"},
		Availability:        "Business hours",
		AppointmentRequired: true,
	},
	"pediatrician": {
		Type:                "pediatrician",
		Name:                "Pediatrician",
		Description:         "Pediatricians specialize in medical care for infants, children, and adolescents from birth to age 18. They handle childhood illnesses, developmental issues, vaccinations, growth monitoring, and pediatric-specific conditions.",
		Specialties:         []string{"pediatric", "children", "infants", "adolescents", "child health", "pediatric medicine"},
		Availability:        "Business hours",
		AppointmentRequired: true,
		AgeRange:            &models.AgeRange{Min: 0, Max: 18},
	},
	"cardiologist": {
		Type:                "cardiologist",
		Name:                "Cardiologist",
		Description:         "Cardiologists specialize in heart and cardiovascular conditions including chest pain, heart disease, arrhythmias, hypertension, heart attacks, cardiac rehabilitation, and cardiovascular health.",
		Specialties:         []string{"heart", "cardiac", "chest pain", "cardiovascular", "heart disease", "arrhythmia", "hypertension"},
		Availability:        "Business hours",
		AppointmentRequired: true,
	},
	"dermatologist": {
		Type:                "dermatologist",
		Name:                "Dermatologist",
		Description:         "Dermatologists specialize in skin conditions including rashes, acne, moles, skin cancer, dermatitis, eczema, psoriasis, hair and nail disorders, and cosmetic dermatology.",
		Specialties:         []string{"skin", "rash", "acne", "dermatology", "moles", "skin cancer", "dermatitis", "eczema"},
		Availability:        "Business hours",
		AppointmentRequired: true,
	},
	"orthopedist": {
		Type:                "orthopedist",
		Name:                "Orthopedist",
		Description:         "Orthopedists specialize in bone, joint, and musculoskeletal conditions including fractures, broken bones, sprains, dislocations, joint pain, arthritis, sports injuries, and orthopedic surgery.",
		Specialties:         []string{"bone", "fracture", "joint", "orthopedic", "broken bone", "sprain", "musculoskeletal", "arthritis"},
		Availability:        "Business hours",
		AppointmentRequired: true,
	},
	"psychiatrist": {
		Type:                "psychiatrist",
		Name:                "Psychiatrist",
		Description:         "Psychiatrists specialize in mental health conditions including depression, anxiety, bipolar disorder, psychiatric disorders, suicidal thoughts, self-harm, mental health crises, and psychiatric medication management.",
		Specialties:         []string{"mental health", "depression", "anxiety", "psychiatric", "suicidal", "mental illness", "bipolar"},
		Availability:        "Business hours",
		AppointmentRequired: true,
	},
	"gynecologist": {
		Type:                "gynecologist",
		Name:                "Gynecologist",
		Description:         "Gynecologists specialize in women's health including gynecological conditions, pregnancy care, reproductive health, menstrual issues, pelvic pain, and women's reproductive system health.",
		Specialties:         []string{"women's health", "gynecological", "pregnancy", "reproductive", "menstrual", "pelvic"},
		Availability:        "Business hours",
		AppointmentRequired: true,
	},
}

// GetProviderCatalog returns the static provider catalog.
func GetProviderCatalog() map[string]models.ProviderInfo {
	return providerCatalog
}

// ProviderDocument renders one catalog entry as retrieval document text.
func ProviderDocument(info models.ProviderInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s. %s ", info.Name, info.Description))
	sb.WriteString(fmt.Sprintf("Specialties: %s. ", strings.Join(info.Specialties, ", ")))
	sb.WriteString(fmt.Sprintf("Availability: %s. ", info.Availability))
	sb.WriteString(fmt.Sprintf("Appointment required: %t.", info.AppointmentRequired))
	return sb.String()
}

func matchFromInfo(info models.ProviderInfo, distance float64) models.ProviderMatch {
	return models.ProviderMatch{
		Type:                info.Type,
		Name:                info.Name,
		Availability:        info.Availability,
		AppointmentRequired: info.AppointmentRequired,
		AgeRange:            info.AgeRange,
		MatchScore:          displayScore(distance),
		Distance:            distance,
	}
}

// displayScore converts a retrieval distance (lower is better) into a
// similarity score in (0, 1] rounded to three decimals.
func displayScore(distance float64) float64 {
	return round3(1.0 / (1.0 + distance))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
