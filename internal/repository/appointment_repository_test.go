package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/clinic-management/internal/config"
	"github.com/iliyamo/clinic-management/internal/database"
	"github.com/iliyamo/clinic-management/internal/model"
	"github.com/iliyamo/clinic-management/internal/repository"
)

// setup opens the test database and applies the schema. Tests are skipped
// when the database environment is not configured.
func setup(t *testing.T) *sql.DB {
	t.Helper()
	_ = godotenv.Load("../../.env")
	for _, k := range []string{"DB_USER", "DB_HOST", "DB_PORT", "DB_NAME"} {
		if os.Getenv(k) == "" {
			t.Skipf("%s not set", k)
		}
	}
	cfg := config.Config{
		DBUser: os.Getenv("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: os.Getenv("DB_HOST"),
		DBPort: os.Getenv("DB_PORT"),
		DBName: os.Getenv("DB_NAME"),
	}
	db, err := database.Open(cfg)
	if err != nil {
		t.Skipf("db unreachable: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func createDietitian(t *testing.T, users *repository.UserRepo) uint64 {
	t.Helper()
	id, err := users.Create(context.Background(), uniqueName("diet"), "testpass123", model.RoleDietitian, 4)
	if err != nil {
		t.Fatalf("create dietitian: %v", err)
	}
	return id
}

func createAppointment(t *testing.T, db *sql.DB, dietitianID uint64) (patientID, appointmentID uint64) {
	t.Helper()
	ctx := context.Background()
	p := &model.Patient{Name: uniqueName("Sentinel"), Age: 40, Sex: "M", Weight: 80, Height: 180}
	if err := repository.NewPatientRepo(db).Create(ctx, p); err != nil {
		t.Fatalf("create patient: %v", err)
	}
	a := &model.Appointment{PatientID: p.ID, DietitianID: dietitianID, Date: time.Now().Add(24 * time.Hour).UTC()}
	if err := repository.NewAppointmentRepo(db).Create(ctx, a); err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	return p.ID, a.ID
}

func TestUserGetByIDRoundTrip(t *testing.T) {
	db := setup(t)
	users := repository.NewUserRepo(db)
	ctx := context.Background()

	name := uniqueName("roundtrip")
	id, err := users.Create(ctx, name, "testpass123", model.RoleDietitian, 4)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	u, err := users.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if u.Username != name || u.Role != model.RoleDietitian {
		t.Errorf("unexpected row: %+v", u)
	}
	if u.PasswordHash == "testpass123" {
		t.Error("password stored in plaintext")
	}

	if _, err := users.GetByID(ctx, 1<<60); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("absent id: expected sql.ErrNoRows, got %v", err)
	}
}

// The delete path distinguishes an absent row from a row owned by another
// dietitian, even though the HTTP layer collapses both into 404.
func TestAppointmentDeleteSentinels(t *testing.T) {
	db := setup(t)
	appointments := repository.NewAppointmentRepo(db)
	users := repository.NewUserRepo(db)
	ctx := context.Background()

	owner := createDietitian(t, users)
	intruder := createDietitian(t, users)
	_, aid := createAppointment(t, db, owner)

	// Absent row: sql.ErrNoRows.
	if err := appointments.DeleteByIDAndOwner(ctx, 1<<60, owner); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("absent row: expected sql.ErrNoRows, got %v", err)
	}

	// Someone else's row: ErrForbidden, and the row survives.
	if err := appointments.DeleteByIDAndOwner(ctx, aid, intruder); !errors.Is(err, repository.ErrForbidden) {
		t.Errorf("non-owner delete: expected ErrForbidden, got %v", err)
	}
	list, err := appointments.ListByDietitian(ctx, owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	for _, a := range list {
		if a.ID == aid {
			found = true
		}
	}
	if !found {
		t.Fatal("appointment deleted by non-owner")
	}

	// The owner deletes it; a second attempt sees the row as gone.
	if err := appointments.DeleteByIDAndOwner(ctx, aid, owner); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := appointments.DeleteByIDAndOwner(ctx, aid, owner); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("repeat delete: expected sql.ErrNoRows, got %v", err)
	}
}
