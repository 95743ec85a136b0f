// Package queue defines message payloads exchanged over the message broker.
package queue

// AppointmentCreatedEvent is published when a dietitian books an appointment.
// It contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type AppointmentCreatedEvent struct {
    AppointmentID uint64 `json:"appointment_id"`
    DietitianID   uint64 `json:"dietitian_id"`
    Dietitian     string `json:"dietitian"`
    PatientID     uint64 `json:"patient_id"`
    PatientName   string `json:"patient_name"`
    Date          string `json:"date"`
    Notes         string `json:"notes"`
    CreatedAt     string `json:"created_at"`
}
