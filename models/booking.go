package models

import "time"

// AppointmentDetails carries the slot fields frozen into a booking.
type AppointmentDetails struct {
	ProviderType    string `json:"provider_type" bson:"provider_type"`
	ProviderName    string `json:"provider_name" bson:"provider_name"`
	Date            string `json:"date" bson:"date"`
	Time            string `json:"time" bson:"time"`
	DurationMinutes int    `json:"duration_minutes" bson:"duration_minutes"`
}

// PatientInfo identifies the patient on a booking.
type PatientInfo struct {
	Name    string `json:"name" bson:"name"`
	Contact string `json:"contact" bson:"contact"`
}

// BookingRequest is the payload for creating a booking.
type BookingRequest struct {
	SlotID             string             `json:"slot_id" binding:"required"`
	PatientName        string             `json:"patient_name" binding:"required"`
	PatientContact     string             `json:"patient_contact" binding:"required"`
	AppointmentDetails AppointmentDetails `json:"appointment_details"`
	AdditionalInfo     map[string]string  `json:"additional_info,omitempty"`
}

// Booking is a confirmed appointment. Created once, immutable thereafter.
type Booking struct {
	BookingID        string             `json:"booking_id" bson:"_id"`
	SlotID           string             `json:"slot_id" bson:"slot_id"`
	ConfirmationCode string             `json:"confirmation_code" bson:"confirmation_code"`
	Status           string             `json:"status" bson:"status"`
	SessionID        string             `json:"session_id,omitempty" bson:"session_id,omitempty"`
	Patient          PatientInfo        `json:"patient" bson:"patient"`
	Appointment      AppointmentDetails `json:"appointment" bson:"appointment"`
	BookingTime      time.Time          `json:"booking_time" bson:"booking_time"`
	Message          string             `json:"message,omitempty" bson:"-"`
}
