package workflow

import (
	"fmt"
	"time"

	"careflow/models"
)

// slotOrder fixes the generation order so slot IDs are stable across restarts.
var slotOrder = []string{
	"primary_care",
	"cardiologist",
	"dermatologist",
	"pediatrician",
	"orthopedist",
	"psychiatrist",
	"gynecologist",
	"urgent_care",
}

// GenerateSlots builds the appointment slot catalog for the next daysAhead
// days starting at base. The emergency room is walk-in only and gets no slots;
// weekends are skipped for everything except urgent care.
func GenerateSlots(base time.Time, daysAhead int) []models.Slot {
	var slots []models.Slot
	counter := 1

	for _, providerType := range slotOrder {
		info, ok := providerCatalog[providerType]
		if !ok {
			continue
		}

		for offset := 0; offset < daysAhead; offset++ {
			day := base.AddDate(0, 0, offset)
			if wd := day.Weekday(); (wd == time.Saturday || wd == time.Sunday) && providerType != "urgent_care" {
				continue
			}
			dateStr := day.Format("2006-01-02")

			times, duration := slotTimes(providerType)
			for _, t := range times {
				slots = append(slots, models.Slot{
					SlotID:          fmt.Sprintf("slot_%03d", counter),
					ProviderType:    providerType,
					ProviderName:    info.Name,
					Date:            dateStr,
					Time:            t,
					DurationMinutes: duration,
					Available:       true,
					Description:     fmt.Sprintf("%s appointment for %s care. %s.", info.Name, providerType, info.Specialties[0]),
				})
				counter++
			}
		}
	}
	return slots
}

// slotTimes returns the daily time grid and visit duration for a provider type.
func slotTimes(providerType string) ([]string, int) {
	if providerType == "urgent_care" {
		// Urgent care: every 30 minutes from 8AM to 8PM.
		times := make([]string, 0, 24)
		for hour := 8; hour < 20; hour++ {
			times = append(times, fmt.Sprintf("%02d:00", hour), fmt.Sprintf("%02d:30", hour))
		}
		return times, 20
	}

	// Regular providers: hourly slots from 9AM to 5PM.
	times := make([]string, 0, 8)
	for hour := 9; hour < 17; hour++ {
		times = append(times, fmt.Sprintf("%02d:00", hour))
	}
	duration := 45
	if providerType == "primary_care" {
		duration = 30
	}
	return times, duration
}

// SlotDocument renders one slot as retrieval document text.
func SlotDocument(s models.Slot) string {
	return fmt.Sprintf("Appointment with %s (%s). %s Date: %s at %s. Duration: %d minutes.",
		s.ProviderName, s.ProviderType, s.Description, s.Date, s.Time, s.DurationMinutes)
}
