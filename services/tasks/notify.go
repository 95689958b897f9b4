package tasks

import (
	"encoding/json"
	"fmt"

	"careflow/config"
	"careflow/models"

	"github.com/hibiken/asynq"
)

const TypeBookingNotify = "booking:notify"

// NewBookingNotifyTask builds the queued notification task for a booking.
func NewBookingNotifyTask(payload models.BookingNotifyPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingNotify, b), nil
}

// Notifier enqueues booking notifications.
type Notifier interface {
	EnqueueBookingNotify(booking *models.Booking) error
}

// AsynqNotifier enqueues tasks on the shared Redis queue.
type AsynqNotifier struct {
	client *asynq.Client
}

// NewAsynqNotifier builds a notifier backed by the configured Redis queue DB.
func NewAsynqNotifier() *AsynqNotifier {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &AsynqNotifier{client: client}
}

// EnqueueBookingNotify queues the confirmation notification for a booking.
func (n *AsynqNotifier) EnqueueBookingNotify(booking *models.Booking) error {
	task, err := NewBookingNotifyTask(models.BookingNotifyPayload{
		BookingID:        booking.BookingID,
		ConfirmationCode: booking.ConfirmationCode,
		PatientName:      booking.Patient.Name,
		PatientContact:   booking.Patient.Contact,
		ProviderName:     booking.Appointment.ProviderName,
		Date:             booking.Appointment.Date,
		Time:             booking.Appointment.Time,
	})
	if err != nil {
		return fmt.Errorf("build notify task: %w", err)
	}
	if _, err := n.client.Enqueue(task, asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("enqueue notify task: %w", err)
	}
	return nil
}

// Close releases the underlying asynq client.
func (n *AsynqNotifier) Close() error {
	return n.client.Close()
}
