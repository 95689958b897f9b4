package models

// BookingNotifyPayload is the queued notification job for a confirmed booking.
type BookingNotifyPayload struct {
	BookingID        string `json:"bookingId"`
	ConfirmationCode string `json:"confirmationCode"`
	PatientName      string `json:"patientName"`
	PatientContact   string `json:"patientContact"`
	ProviderName     string `json:"providerName"`
	Date             string `json:"date"`
	Time             string `json:"time"`
}
