package workflow

import (
	"context"
	"testing"
	"time"

	"careflow/models"
	"careflow/services/retrieval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday, so the first generated days are all weekdays.
var testBase = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newTestEngine(retriever retrieval.Searcher) *DefaultEngine {
	return &DefaultEngine{
		Retriever: retriever,
		Slots:     GenerateSlots(testBase, 14),
		Now:       func() time.Time { return testBase },
	}
}

func TestExtractSchedulingPrefs(t *testing.T) {
	e := newTestEngine(nil)

	tests := []struct {
		name    string
		request string
		context map[string]any
		want    models.SchedulingPrefs
	}{
		{
			name:    "urgency keyword",
			request: "I need an appointment asap",
			want:    models.SchedulingPrefs{Urgency: "urgent"},
		},
		{
			name:    "relative dates",
			request: "can I come in tomorrow morning",
			want: models.SchedulingPrefs{
				Urgency:       "routine",
				PreferredDate: "2026-03-03",
				PreferredTime: "morning",
			},
		},
		{
			name:    "next week",
			request: "book me something next week",
			want: models.SchedulingPrefs{
				Urgency:       "routine",
				PreferredDate: "2026-03-09",
			},
		},
		{
			name:    "urgent triage priority escalates urgency",
			request: "I need an appointment",
			context: map[string]any{"priority": "urgent"},
			want:    models.SchedulingPrefs{Urgency: "urgent"},
		},
		{
			name:    "emergency triage priority escalates urgency",
			request: "I need an appointment",
			context: map[string]any{"priority": "emergency"},
			want:    models.SchedulingPrefs{Urgency: "urgent"},
		},
		{
			name:    "routine priority leaves urgency alone",
			request: "I need an appointment",
			context: map[string]any{"priority": "routine"},
			want:    models.SchedulingPrefs{Urgency: "routine"},
		},
		{
			name:    "explicit urgency wins over priority",
			request: "I need an appointment",
			context: map[string]any{"priority": "emergency", "urgency": "routine"},
			want:    models.SchedulingPrefs{Urgency: "routine"},
		},
		{
			name:    "context overrides inferred values",
			request: "see someone tomorrow morning",
			context: map[string]any{
				"preferred_date": "2026-03-10",
				"preferred_time": "evening",
				"urgency":        "urgent",
				"provider_type":  "cardiologist",
			},
			want: models.SchedulingPrefs{
				Urgency:       "urgent",
				PreferredDate: "2026-03-10",
				PreferredTime: "evening",
				ProviderType:  "cardiologist",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ExtractSchedulingPrefs(tt.request, tt.context)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithinDateWindow(t *testing.T) {
	// Window is inclusive at exactly three days on both sides.
	assert.True(t, withinDateWindow("2026-03-05", "2026-03-05"))
	assert.True(t, withinDateWindow("2026-03-08", "2026-03-05"))
	assert.True(t, withinDateWindow("2026-03-02", "2026-03-05"))
	assert.False(t, withinDateWindow("2026-03-09", "2026-03-05"))
	assert.False(t, withinDateWindow("2026-03-01", "2026-03-05"))
	assert.False(t, withinDateWindow("garbage", "2026-03-05"))
}

func TestInTimeBucket(t *testing.T) {
	assert.True(t, inTimeBucket("09:00", "morning"))
	assert.False(t, inTimeBucket("12:00", "morning"))
	assert.True(t, inTimeBucket("12:00", "afternoon"))
	assert.False(t, inTimeBucket("17:00", "afternoon"))
	assert.True(t, inTimeBucket("18:30", "evening"))
	assert.False(t, inTimeBucket("09:00", "nonsense"))
}

func TestKeepOrRevert(t *testing.T) {
	slots := []models.Slot{
		{SlotID: "a", ProviderType: "primary_care"},
		{SlotID: "b", ProviderType: "cardiologist"},
	}

	kept := keepOrRevert(slots, func(s models.Slot) bool { return s.ProviderType == "cardiologist" })
	require.Len(t, kept, 1)
	assert.Equal(t, "b", kept[0].SlotID)

	// A filter that matches nothing is a no-op.
	kept = keepOrRevert(slots, func(s models.Slot) bool { return false })
	assert.Equal(t, slots, kept)
}

func TestScheduleAppointmentRetrievalPath(t *testing.T) {
	e := newTestEngine(nil)

	// Pick real slot IDs from the generated catalog for the fake index.
	var cardiology, primary models.Slot
	for _, s := range e.Slots {
		if s.ProviderType == "cardiologist" && cardiology.SlotID == "" {
			cardiology = s
		}
		if s.ProviderType == "primary_care" && primary.SlotID == "" {
			primary = s
		}
	}
	require.NotEmpty(t, cardiology.SlotID)
	require.NotEmpty(t, primary.SlotID)

	e.Retriever = &fakeSearcher{hits: map[string][]retrieval.Scored{
		retrieval.IndexSlots: {
			{DocID: primary.SlotID, Distance: 0.2},
			{DocID: cardiology.SlotID, Distance: 0.4},
			{DocID: "stale_slot", Distance: 0.1},
		},
	}}

	result := e.ScheduleAppointment(context.Background(), "I need to see a heart doctor",
		map[string]any{"provider_type": "cardiologist"})

	require.NotNil(t, result.RecommendedSlot)
	assert.Equal(t, cardiology.SlotID, result.RecommendedSlot.SlotID)
	assert.Contains(t, result.Reasoning, "Cardiologist")
	for _, s := range result.AvailableSlots {
		assert.Equal(t, "cardiologist", s.ProviderType)
	}
}

func TestScheduleAppointmentEmergencyRoomMapsToUrgentCare(t *testing.T) {
	e := newTestEngine(nil)

	result := e.ScheduleAppointment(context.Background(), "book me now",
		map[string]any{"provider_type": "emergency_room"})

	require.NotNil(t, result.RecommendedSlot)
	assert.Equal(t, "urgent_care", result.RecommendedSlot.ProviderType)
}

func TestScheduleAppointmentUrgentPrefersNextTwoDays(t *testing.T) {
	e := newTestEngine(nil)

	result := e.ScheduleAppointment(context.Background(), "I need an urgent appointment", nil)

	require.NotNil(t, result.RecommendedSlot)
	today := testBase.Format("2006-01-02")
	tomorrow := testBase.AddDate(0, 0, 1).Format("2006-01-02")
	assert.Contains(t, []string{today, tomorrow}, result.RecommendedSlot.Date)
}

func TestScheduleAppointmentFallback(t *testing.T) {
	e := newTestEngine(nil)

	result := e.ScheduleAppointment(context.Background(), "any appointment works", nil)

	require.NotNil(t, result.RecommendedSlot)
	assert.Contains(t, result.Reasoning, "Fallback mode")
	assert.LessOrEqual(t, len(result.AvailableSlots), 5)
	assert.Equal(t, 1.0, result.RecommendedSlot.MatchScore)
}

func TestGenerateSlots(t *testing.T) {
	slots := GenerateSlots(testBase, 7)
	require.NotEmpty(t, slots)

	seen := map[string]bool{}
	for _, s := range slots {
		assert.False(t, seen[s.SlotID], "slot IDs must be unique")
		seen[s.SlotID] = true
		assert.True(t, s.Available)

		d, err := time.Parse("2006-01-02", s.Date)
		require.NoError(t, err)
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			assert.Equal(t, "urgent_care", s.ProviderType, "only urgent care runs on weekends")
		}
	}
}
