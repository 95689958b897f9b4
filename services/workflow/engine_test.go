package workflow

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"careflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryBookingRepo is an in-memory BookingRepository for tests.
type memoryBookingRepo struct {
	bookings  []models.Booking
	createErr error
}

func (r *memoryBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.bookings = append(r.bookings, *booking)
	return nil
}

func (r *memoryBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	for i := range r.bookings {
		if r.bookings[i].BookingID == bookingID {
			return &r.bookings[i], nil
		}
	}
	return nil, fmt.Errorf("booking %s not found", bookingID)
}

func (r *memoryBookingRepo) ListBySession(ctx context.Context, sessionID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.SessionID == sessionID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	enqueued []string
	err      error
}

func (n *fakeNotifier) EnqueueBookingNotify(booking *models.Booking) error {
	if n.err != nil {
		return n.err
	}
	n.enqueued = append(n.enqueued, booking.BookingID)
	return nil
}

func TestRunHaltsAtHumanConfirmation(t *testing.T) {
	e := newTestEngine(nil)

	wf := e.Run(context.Background(), &models.WorkflowContext{
		UserMessage: "I have a mild headache and want to schedule an appointment",
		SessionID:   "s1",
	})

	require.Nil(t, wf.Err)
	assert.Equal(t, models.StepEnd, wf.NextStep)
	assert.False(t, wf.BookingConfirmed)
	assert.Nil(t, wf.BookingResult)

	// Every intermediate stage left its result behind.
	require.NotNil(t, wf.TriageResult)
	assert.Equal(t, models.PriorityRoutine, wf.Priority)
	require.NotNil(t, wf.MatchedProvider)
	require.NotNil(t, wf.RecommendedSlot)
}

func TestRunBooksWhenConfirmed(t *testing.T) {
	repo := &memoryBookingRepo{}
	notifier := &fakeNotifier{}
	e := newTestEngine(nil)
	e.Bookings = repo
	e.Notifier = notifier

	wf := e.Run(context.Background(), &models.WorkflowContext{
		UserMessage: "mild cough, book me an appointment",
		SessionID:   "s2",
		Context:     map[string]any{"confirm_booking": true},
		PatientInfo: map[string]string{"name": "Jordan Smith", "contact": "jordan@example.com"},
	})

	require.Nil(t, wf.Err)
	assert.True(t, wf.BookingConfirmed)
	require.NotNil(t, wf.BookingResult)
	assert.Equal(t, "confirmed", wf.BookingResult.Status)
	assert.Equal(t, "Jordan Smith", wf.BookingResult.Patient.Name)

	require.Len(t, repo.bookings, 1)
	assert.Equal(t, wf.BookingResult.BookingID, repo.bookings[0].BookingID)
	assert.Equal(t, []string{wf.BookingResult.BookingID}, notifier.enqueued)
}

func TestRunBookingRequiresContact(t *testing.T) {
	e := newTestEngine(nil)
	e.Bookings = &memoryBookingRepo{}

	wf := e.Run(context.Background(), &models.WorkflowContext{
		UserMessage: "mild cough, book me an appointment",
		SessionID:   "s3",
		Context:     map[string]any{"confirm_booking": true},
	})

	require.NotNil(t, wf.Err)
	assert.Equal(t, models.ErrKindValidation, wf.Err.Kind)
	assert.Equal(t, models.StepBooking, wf.Err.Stage)
	assert.False(t, wf.BookingConfirmed)
}

func TestRunStartsFromGivenStep(t *testing.T) {
	e := newTestEngine(nil)

	wf := e.Run(context.Background(), &models.WorkflowContext{
		UserMessage: "appointment please",
		SessionID:   "s4",
		NextStep:    models.StepScheduling,
	})

	require.Nil(t, wf.Err)
	assert.Nil(t, wf.TriageResult, "triage must be skipped when starting later")
	require.NotNil(t, wf.RecommendedSlot)
}

func TestRunUnknownStepFails(t *testing.T) {
	e := newTestEngine(nil)

	wf := e.Run(context.Background(), &models.WorkflowContext{
		UserMessage: "hello",
		NextStep:    models.Step("bogus"),
	})

	require.NotNil(t, wf.Err)
	assert.Equal(t, models.ErrKindStageFailure, wf.Err.Kind)
}

func TestBookSlot(t *testing.T) {
	repo := &memoryBookingRepo{}
	e := newTestEngine(nil)
	e.Bookings = repo

	slot := e.Slots[0]
	booking, err := e.BookSlot(context.Background(), &slot,
		models.PatientInfo{Name: "Alex Doe", Contact: "555-123-4567"}, "sess")
	require.NoError(t, err)

	assert.NotEmpty(t, booking.BookingID)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), booking.ConfirmationCode)
	assert.Equal(t, slot.SlotID, booking.SlotID)
	assert.Equal(t, slot.ProviderName, booking.Appointment.ProviderName)
	assert.Contains(t, booking.Message, booking.ConfirmationCode)
	require.Len(t, repo.bookings, 1)
}

func TestBookSlotValidation(t *testing.T) {
	e := newTestEngine(nil)

	_, err := e.BookSlot(context.Background(), nil, models.PatientInfo{Contact: "x@y.com"}, "sess")
	require.Error(t, err)

	slot := e.Slots[0]
	_, err = e.BookSlot(context.Background(), &slot, models.PatientInfo{Name: "No Contact"}, "sess")
	require.Error(t, err)
	stageErr, ok := err.(*models.StageError)
	require.True(t, ok)
	assert.Equal(t, models.ErrKindValidation, stageErr.Kind)
}

func TestBookSlotRepoFailure(t *testing.T) {
	e := newTestEngine(nil)
	e.Bookings = &memoryBookingRepo{createErr: fmt.Errorf("mongo down")}

	slot := e.Slots[0]
	_, err := e.BookSlot(context.Background(), &slot, models.PatientInfo{Contact: "x@y.com"}, "sess")
	require.Error(t, err)
	stageErr, ok := err.(*models.StageError)
	require.True(t, ok)
	assert.Equal(t, models.ErrKindCollaborator, stageErr.Kind)
}

func TestBookSlotSurvivesNotifyFailure(t *testing.T) {
	e := newTestEngine(nil)
	e.Bookings = &memoryBookingRepo{}
	e.Notifier = &fakeNotifier{err: fmt.Errorf("queue down")}

	slot := e.Slots[0]
	booking, err := e.BookSlot(context.Background(), &slot, models.PatientInfo{Contact: "x@y.com"}, "sess")
	require.NoError(t, err)
	assert.NotNil(t, booking)
}
