package model

import "time"

// Review is a customer rating of a completed (sub-)service. StaffResponse is
// settable exactly once by the assigned staff member or an admin and is
// immutable afterwards.
type Review struct {
	ID            int64     `json:"id"`
	AppointmentID int64     `json:"appointmentId,omitempty"`
	ServiceID     int64     `json:"serviceId,omitempty"`
	StaffID       int64     `json:"staffId,omitempty"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment,omitempty"`
	StaffResponse string    `json:"staffResponse,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`

	Staff *Staff `json:"Staff,omitempty"`
}

// Responded reports whether the one permitted staff response already exists.
func (r *Review) Responded() bool {
	return r != nil && r.StaffResponse != ""
}
