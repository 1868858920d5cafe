package model

import "time"

// Request payloads accepted by the gateway and forwarded upstream. Validate
// tags are enforced by the per-domain validators before any network call.

type BookingRequest struct {
	ServiceID int64     `json:"serviceId" validate:"required,gt=0"`
	StaffID   int64     `json:"staffId" validate:"required,gt=0"`
	StartTime time.Time `json:"startTime" validate:"required,future"`
	Notes     string    `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type RescheduleRequest struct {
	StartTime time.Time `json:"startTime" validate:"required,future"`
}

type ReviewRequest struct {
	AppointmentID int64  `json:"appointmentId" validate:"required,gt=0"`
	ServiceID     int64  `json:"serviceId" validate:"required,gt=0"`
	StaffID       int64  `json:"staffId,omitempty"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

type ReviewResponseRequest struct {
	StaffResponse string `json:"staffResponse" validate:"required,max=2000"`
}

type PaymentIntentRequest struct {
	AppointmentID int64           `json:"appointmentId" validate:"required,gt=0"`
	Provider      PaymentProvider `json:"provider" validate:"required,oneof=stripe razorpay cashfree mock"`
}

// PaymentVerifyRequest carries provider-specific proof fields; the backend
// checks them against the gateway of record.
type PaymentVerifyRequest struct {
	PaymentID         int64           `json:"paymentId" validate:"required,gt=0"`
	Provider          PaymentProvider `json:"provider" validate:"required,oneof=stripe razorpay cashfree mock"`
	RazorpayOrderID   string          `json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string          `json:"razorpayPaymentId,omitempty"`
	RazorpaySignature string          `json:"razorpaySignature,omitempty"`
}

type ServiceRequest struct {
	Name            string  `json:"name" validate:"required,max=200"`
	Description     string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	DurationMinutes int     `json:"durationMinutes" validate:"required,gt=0"`
	Price           float64 `json:"price" validate:"gte=0"`
	StaffIDs        []int64 `json:"staffIds,omitempty" validate:"omitempty,dive,gt=0"`
}

type StaffRequest struct {
	Name           string  `json:"name" validate:"required,max=200"`
	Bio            string  `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Specialization string  `json:"specialization,omitempty" validate:"omitempty,max=200"`
	Email          string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string  `json:"phone,omitempty" validate:"omitempty,max=30"`
	ServiceIDs     []int64 `json:"serviceIds,omitempty" validate:"omitempty,dive,gt=0"`
}

// Slot is one candidate start time returned by the availability endpoint.
type Slot struct {
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime,omitempty"`
	DisplayTime string    `json:"displayTime,omitempty"`
}

type SlotsResponse struct {
	Slots   []Slot `json:"slots"`
	Message string `json:"message,omitempty"`
}

// StaffAppointments is the staff listing payload: the staff profile resolved
// from the session plus that member's appointments.
type StaffAppointments struct {
	Staff        *Staff        `json:"staff"`
	Appointments []Appointment `json:"appointments"`
}
