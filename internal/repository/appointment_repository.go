// This file defines repository methods for appointments. Every query is
// scoped to the owning dietitian: listing filters on dietitian_id and
// deletion verifies ownership before removing the row. A dietitian can
// therefore never see or touch another dietitian's schedule through
// this layer.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/clinic-management/internal/model"
)

// ErrAppointmentNotFound is returned when an appointment cannot be found.
var ErrAppointmentNotFound = errors.New("appointment not found")

// AppointmentRepo encapsulates all database queries related to appointments.
type AppointmentRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewAppointmentRepo constructs an AppointmentRepo with the provided DB handle.
func NewAppointmentRepo(db *sql.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

// Create inserts a new appointment. The dietitian ID is taken from the
// caller's session by the handler and is never client-supplied. On
// success the ID and CreatedAt fields are populated.
func (r *AppointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	const qInsert = "INSERT INTO appointments (patient_id, dietitian_id, date, notes) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, a.PatientID, a.DietitianID, a.Date, a.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)

	const qSelect = "SELECT created_at FROM appointments WHERE id = ?"
	if err := r.db.QueryRowContext(ctx, qSelect, a.ID).Scan(&a.CreatedAt); err != nil {
		return err
	}
	return nil
}

// ListByDietitian returns the dietitian's appointments joined with the
// patient's name, most recent date first.
func (r *AppointmentRepo) ListByDietitian(ctx context.Context, dietitianID uint64) ([]*model.AppointmentWithPatient, error) {
	const q = `SELECT a.id, a.patient_id, a.dietitian_id, a.date, a.notes, a.created_at, p.name
	           FROM appointments a
	           JOIN patients p ON p.id = a.patient_id
	           WHERE a.dietitian_id = ?
	           ORDER BY a.date DESC`
	rows, err := r.db.QueryContext(ctx, q, dietitianID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.AppointmentWithPatient
	for rows.Next() {
		a := new(model.AppointmentWithPatient)
		var notes sql.NullString
		if err := rows.Scan(&a.ID, &a.PatientID, &a.DietitianID, &a.Date, &notes, &a.CreatedAt, &a.PatientName); err != nil {
			return nil, err
		}
		a.Notes = notes.String
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByIDAndOwner removes an appointment provided it belongs to the
// given dietitian. If the row does not exist, sql.ErrNoRows is returned.
// If it exists but belongs to someone else, ErrForbidden is returned.
// Handlers map both to the same 404 so ownership cannot be probed.
func (r *AppointmentRepo) DeleteByIDAndOwner(ctx context.Context, id, dietitianID uint64) error {
	var dbOwnerID uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT dietitian_id FROM appointments WHERE id = ?`, id).Scan(&dbOwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return err
	}
	if dbOwnerID != dietitianID {
		return ErrForbidden
	}
	// Ownership re-checked in the predicate in case the row changed hands
	// between the SELECT and the DELETE.
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM appointments WHERE id = ? AND dietitian_id = ?`, id, dietitianID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
