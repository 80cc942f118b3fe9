package model

import (
	"time"
)

// Appointment visit types
const (
	VisitTypeCheckup      = "checkup"
	VisitTypeConsultation = "consultation"
	VisitTypeFollowup     = "followup"
	VisitTypeVaccination  = "vaccination"
)

// Appointment represents one booked visit. JSON field names follow the
// persisted layout: a camelCase object with an RFC3339 date string, so data
// written by earlier versions of the booking widget reads back unchanged.
type Appointment struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	Time         string    `json:"time"`
	Doctor       string    `json:"doctor"`
	Type         string    `json:"type"`
	Notes        string    `json:"notes,omitempty"`
	PatientName  string    `json:"patientName,omitempty"`
	PatientEmail string    `json:"patientEmail,omitempty"`
	// UserID is the owning account. Empty means the appointment was booked
	// anonymously. Set once at save time, never changed by updates.
	UserID string `json:"userId,omitempty"`
}

// Anonymous reports whether the appointment has no owning account.
func (a Appointment) Anonymous() bool {
	return a.UserID == ""
}

// BookingRequest carries the fields a caller supplies when booking a visit.
type BookingRequest struct {
	Date         time.Time `json:"date" validate:"required"`
	Time         string    `json:"time" validate:"required"`
	Doctor       string    `json:"doctor" validate:"required"`
	Type         string    `json:"type" validate:"required"`
	Notes        string    `json:"notes" validate:"max=1000"`
	PatientName  string    `json:"patientName" validate:"max=200"`
	PatientEmail string    `json:"patientEmail" validate:"omitempty,email"`
}

// Appointment converts the request into an unsaved appointment record.
func (r BookingRequest) Appointment() Appointment {
	return Appointment{
		Date:         r.Date,
		Time:         r.Time,
		Doctor:       r.Doctor,
		Type:         r.Type,
		Notes:        r.Notes,
		PatientName:  r.PatientName,
		PatientEmail: r.PatientEmail,
	}
}

// DefaultSlots is the slot-label grid offered by the booking form. Slot
// uniqueness is enforced per (calendar day, label) pair across all users.
func DefaultSlots() []string {
	return []string{
		"9:00 AM",
		"9:45 AM",
		"10:30 AM",
		"11:45 AM",
		"1:00 PM",
		"2:15 PM",
		"3:30 PM",
		"4:30 PM",
	}
}
