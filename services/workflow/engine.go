package workflow

import (
	"context"
	"time"

	bookingRepo "careflow/database/repository/booking"
	"careflow/models"
	"careflow/services/retrieval"
	"careflow/services/tasks"
	"careflow/utils"

	"go.uber.org/zap"
)

// Engine runs the appointment workflow and its individual stages.
type Engine interface {
	Run(ctx context.Context, wf *models.WorkflowContext) *models.WorkflowContext
	Triage(symptoms string, reqContext map[string]any) *models.TriageResult
	MatchProviders(ctx context.Context, symptoms string, priority models.Priority, reqContext map[string]any) *models.ProviderMatchResult
	ScheduleAppointment(ctx context.Context, request string, reqContext map[string]any) *models.SchedulingResult
	BookSlot(ctx context.Context, slot *models.Slot, patient models.PatientInfo, sessionID string) (*models.Booking, error)
	SlotByID(slotID string) (models.Slot, bool)
}

// DefaultEngine is the production engine. Retriever and Notifier may be nil;
// the stages degrade to their deterministic fallbacks without them.
type DefaultEngine struct {
	Retriever retrieval.Searcher
	Bookings  bookingRepo.BookingRepository
	Notifier  tasks.Notifier
	Slots     []models.Slot

	// Now is the clock used for date math. Defaults to time.Now.
	Now func() time.Time
}

// NewDefaultEngine builds an engine with a 30-day slot catalog starting today.
func NewDefaultEngine(retriever retrieval.Searcher, bookings bookingRepo.BookingRepository, notifier tasks.Notifier) *DefaultEngine {
	return &DefaultEngine{
		Retriever: retriever,
		Bookings:  bookings,
		Notifier:  notifier,
		Slots:     GenerateSlots(time.Now(), 30),
		Now:       time.Now,
	}
}

func (e *DefaultEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// slotIndex returns the slot catalog keyed by slot ID.
func (e *DefaultEngine) slotIndex() map[string]models.Slot {
	index := make(map[string]models.Slot, len(e.Slots))
	for _, s := range e.Slots {
		index[s.SlotID] = s
	}
	return index
}

// Triage satisfies Engine by delegating to the package-level rule set.
func (e *DefaultEngine) Triage(symptoms string, reqContext map[string]any) *models.TriageResult {
	return Triage(symptoms, reqContext)
}

// SlotByID looks up one slot from the catalog.
func (e *DefaultEngine) SlotByID(slotID string) (models.Slot, bool) {
	for _, s := range e.Slots {
		if s.SlotID == slotID {
			return s, true
		}
	}
	return models.Slot{}, false
}

// Run drives the workflow from its current step until it halts. Each stage
// reads and mutates the shared context; a stage that fails or requires human
// input halts the run. The loop is bounded so a stage that fails to advance
// NextStep cannot spin forever.
func (e *DefaultEngine) Run(ctx context.Context, wf *models.WorkflowContext) *models.WorkflowContext {
	logger := utils.GetLogger()

	if wf.NextStep == "" {
		wf.NextStep = models.StepTriage
	}
	if wf.Context == nil {
		wf.Context = map[string]any{}
	}

	const maxStages = 10
	for i := 0; i < maxStages; i++ {
		step := wf.NextStep
		if step == models.StepEnd || wf.Err != nil {
			break
		}

		logger.Debug("Running workflow stage",
			zap.String("sessionId", wf.SessionID),
			zap.String("stage", string(step)),
		)
		e.runStage(ctx, step, wf)

		if wf.NextStep == step && wf.Err == nil {
			wf.Fail(models.NewStageError(step, models.ErrKindStageFailure, "stage did not advance"))
		}
	}

	return wf
}

// runStage dispatches one stage, converting a panic into a stage failure so a
// single bad request cannot take down the caller.
func (e *DefaultEngine) runStage(ctx context.Context, step models.Step, wf *models.WorkflowContext) {
	defer func() {
		if r := recover(); r != nil {
			utils.GetLogger().Error("Workflow stage panicked",
				zap.String("stage", string(step)),
				zap.Any("panic", r),
			)
			wf.Fail(models.NewStageError(step, models.ErrKindStageFailure, "stage panicked: %v", r))
		}
	}()

	switch step {
	case models.StepTriage:
		e.runTriage(wf)
	case models.StepProviderMatching:
		e.runProviderMatching(ctx, wf)
	case models.StepScheduling:
		e.runScheduling(ctx, wf)
	case models.StepHumanConfirmation:
		e.runHumanConfirmation(wf)
	case models.StepBooking:
		e.runBooking(ctx, wf)
	default:
		wf.Fail(models.NewStageError(step, models.ErrKindStageFailure, "unknown workflow step"))
	}
}

// runHumanConfirmation halts the workflow until the caller signals approval
// via the confirm_booking context flag. Without the flag the run ends here
// and the recommended slot is surfaced for the user to confirm.
func (e *DefaultEngine) runHumanConfirmation(wf *models.WorkflowContext) {
	if wf.RecommendedSlot == nil || wf.RecommendedSlot.SlotID == "" {
		wf.Fail(models.NewStageError(models.StepHumanConfirmation, models.ErrKindStageFailure, "no slot available to confirm"))
		return
	}

	if wf.ContextBool("confirm_booking") {
		wf.NextStep = models.StepBooking
		return
	}

	wf.BookingConfirmed = false
	wf.NextStep = models.StepEnd
}
