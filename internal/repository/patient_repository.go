// This file defines repository methods for patient records. Patients are
// shared between all staff members: there is no owner column and every
// authenticated user sees the full list. Deletion cascades to the
// patient's appointments inside a transaction so no orphaned rows
// survive.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to define custom error values

	"github.com/iliyamo/clinic-management/internal/model"
)

// ErrPatientNotFound is returned when a patient cannot be found in the DB.
var ErrPatientNotFound = errors.New("patient not found")

// PatientRepo encapsulates all database queries related to patients.  It
// depends on a sql.DB connection which should be configured elsewhere.
type PatientRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewPatientRepo constructs a PatientRepo with the provided DB handle.  This
// function allows dependency injection of the database in tests and at
// startup.  There is no initialization logic beyond assigning the field.
func NewPatientRepo(db *sql.DB) *PatientRepo {
	return &PatientRepo{db: db}
}

// Create inserts a new patient into the database.  On success the patient's
// ID field will be populated with the auto‑generated value.  After the
// insert, a SELECT is executed to populate the CreatedAt field so that
// callers receive a fully populated record.
func (r *PatientRepo) Create(ctx context.Context, p *model.Patient) error {
	const qInsert = "INSERT INTO patients (name, age, sex, phone, weight, height) VALUES (?, ?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, p.Name, p.Age, p.Sex, p.Phone, p.Weight, p.Height)
	if err != nil {
		return err // propagate DB errors to the caller
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	const qSelect = "SELECT created_at FROM patients WHERE id = ?"
	if err := r.db.QueryRowContext(ctx, qSelect, p.ID).Scan(&p.CreatedAt); err != nil {
		return err
	}
	return nil
}

// GetByID fetches a patient by its ID.  It returns ErrPatientNotFound if
// no row is found.
func (r *PatientRepo) GetByID(ctx context.Context, id uint64) (*model.Patient, error) {
	const q = "SELECT id, name, age, sex, phone, weight, height, created_at FROM patients WHERE id = ?"
	var p model.Patient
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.Name, &p.Age, &p.Sex, &p.Phone, &p.Weight, &p.Height, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns all patients, newest first.
func (r *PatientRepo) List(ctx context.Context) ([]*model.Patient, error) {
	const q = `SELECT id, name, age, sex, phone, weight, height, created_at
	           FROM patients ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Patient
	for rows.Next() {
		p := new(model.Patient)
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Sex, &p.Phone, &p.Weight, &p.Height, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a patient and all of the patient's appointments. The
// two deletes run in one transaction to maintain integrity. If the
// patient does not exist, ErrPatientNotFound is returned.
func (r *PatientRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	// Cascade delete: appointments reference patients via FK
	if _, err = tx.ExecContext(ctx, `DELETE FROM appointments WHERE patient_id = ?`, id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM patients WHERE id = ?`, id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrPatientNotFound
		return err
	}
	return nil
}
