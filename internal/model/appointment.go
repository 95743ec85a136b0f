package model

import "time"

// Appointment records a consultation between a dietitian and a
// patient.  The dietitian who creates the appointment owns it:
// listing and deletion are always scoped to the owning dietitian's
// ID, so an appointment is invisible to every other account.
// DietitianID is immutable after creation and always equals the
// creator's identity at creation time.
//
// Fields:
//  ID          – primary key identifier.
//  PatientID   – patient being seen (FK to patients).
//  DietitianID – owning dietitian (FK to users, taken from the session).
//  Date        – scheduled date and time of the consultation.
//  Notes       – optional free-form notes.
//  CreatedAt   – timestamp when the record was created.
type Appointment struct {
    ID          uint64    `json:"id"`           // appointments.id
    PatientID   uint64    `json:"patient_id"`   // appointments.patient_id
    DietitianID uint64    `json:"dietitian_id"` // appointments.dietitian_id
    Date        time.Time `json:"date"`         // appointments.date
    Notes       string    `json:"notes"`        // appointments.notes
    CreatedAt   time.Time `json:"created_at"`   // appointments.created_at
}

// AppointmentWithPatient is an Appointment joined with the patient's
// name, as returned by the owner-scoped listing query.
type AppointmentWithPatient struct {
    Appointment
    PatientName string `json:"patientName"`
}
