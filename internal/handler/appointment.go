package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/clinic-management/internal/model"
	"github.com/iliyamo/clinic-management/internal/queue"
	"github.com/iliyamo/clinic-management/internal/repository"
	queuepub "github.com/iliyamo/clinic-management/internal/service"
)

// PublishEvent allows main to swap out the broker publisher; tests and
// broker-less deployments leave it as the default.
type PublishEvent func(ctx context.Context, ev queue.AppointmentCreatedEvent) error

// AppointmentHandler serves the caller-scoped appointment book. Every
// operation uses the dietitian id from the verified token, never from
// the request body.
type AppointmentHandler struct {
	Appointments *repository.AppointmentRepo
	Patients     *repository.PatientRepo
	Publish      PublishEvent
}

func NewAppointmentHandler(a *repository.AppointmentRepo, p *repository.PatientRepo) *AppointmentHandler {
	return &AppointmentHandler{Appointments: a, Patients: p, Publish: queuepub.PublishAppointmentCreated}
}

type createAppointmentReq struct {
	PatientID uint64 `json:"patient_id"`
	Date      string `json:"date"`
	Notes     string `json:"notes"`
}

// dateLayouts lists the accepted formats for the appointment date, most
// specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Create books an appointment for the calling dietitian and publishes an
// appointment.created event. Publishing is fire-and-forget: a broker
// outage never fails the request.
func (h *AppointmentHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "Invalid token"})
	}

	var req createAppointmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid body"})
	}
	if req.PatientID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "patient_id required"})
	}
	date, ok := parseDate(req.Date)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid date"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Reject bookings against unknown patients up front so the FK error
	// never leaks as a 500.
	patient, err := h.Patients.GetByID(ctx, req.PatientID)
	if err != nil {
		if err == repository.ErrPatientNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "unknown patient"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error creating appointment"})
	}

	a := &model.Appointment{
		PatientID:   req.PatientID,
		DietitianID: uid,
		Date:        date,
		Notes:       req.Notes,
	}
	if err := h.Appointments.Create(ctx, a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error creating appointment"})
	}

	if h.Publish != nil {
		ev := queue.AppointmentCreatedEvent{
			AppointmentID: a.ID,
			DietitianID:   uid,
			Dietitian:     getClaimString(c, "username"),
			PatientID:     patient.ID,
			PatientName:   patient.Name,
			Date:          a.Date.UTC().Format(time.RFC3339),
			Notes:         a.Notes,
			CreatedAt:     a.CreatedAt.UTC().Format(time.RFC3339),
		}
		go func() {
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer pubCancel()
			_ = h.Publish(pubCtx, ev) // errors already logged by the publisher
		}()
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "id": a.ID})
}

// List returns the caller's appointments with the patient name joined in,
// most recent date first.
func (h *AppointmentHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "Invalid token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	appointments, err := h.Appointments.ListByDietitian(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error fetching appointments"})
	}
	if appointments == nil {
		appointments = []*model.AppointmentWithPatient{}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "appointments": appointments})
}

// Delete removes one of the caller's appointments. A row that does not
// exist and a row owned by another dietitian answer identically with 404,
// so the endpoint leaks nothing about other schedules.
func (h *AppointmentHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "Invalid token"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid appointment id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Appointments.DeleteByIDAndOwner(ctx, id, uid); err != nil {
		if err == sql.ErrNoRows || err == repository.ErrForbidden {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Appointment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error deleting appointment"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
