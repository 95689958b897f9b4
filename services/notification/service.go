package notification

import (
	"context"

	"careflow/models"
	"careflow/utils"

	"go.uber.org/zap"
)

// NotificationService delivers booking confirmations to patients.
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, payload models.BookingNotifyPayload) error
}

// DefaultNotificationService logs deliveries. The actual transport (SMS or
// email gateway) is deployment-specific and plugged in behind this interface.
type DefaultNotificationService struct{}

func (s *DefaultNotificationService) SendBookingConfirmation(ctx context.Context, payload models.BookingNotifyPayload) error {
	logger := utils.GetLogger()
	logger.Info("Delivering booking confirmation",
		zap.String("bookingId", payload.BookingID),
		zap.String("contact", payload.PatientContact),
		zap.String("confirmationCode", payload.ConfirmationCode),
		zap.String("provider", payload.ProviderName),
		zap.String("date", payload.Date),
		zap.String("time", payload.Time),
	)
	return nil
}
