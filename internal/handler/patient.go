package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/clinic-management/internal/model"
	"github.com/iliyamo/clinic-management/internal/repository"
)

// PatientHandler serves patient records. Patients are shared: any
// authenticated staff member can create, list and delete them.
type PatientHandler struct {
	Patients *repository.PatientRepo
}

func NewPatientHandler(p *repository.PatientRepo) *PatientHandler {
	return &PatientHandler{Patients: p}
}

type createPatientReq struct {
	Name   string  `json:"name"`
	Age    int     `json:"age"`
	Sex    string  `json:"sex"`
	Phone  string  `json:"phone"`
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
}

// Create inserts a patient record.
func (h *PatientHandler) Create(c echo.Context) error {
	var req createPatientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "name required"})
	}
	if req.Age < 0 || req.Weight < 0 || req.Height < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "age/weight/height must not be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := &model.Patient{
		Name:   req.Name,
		Age:    req.Age,
		Sex:    req.Sex,
		Phone:  req.Phone,
		Weight: req.Weight,
		Height: req.Height,
	}
	if err := h.Patients.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error creating patient"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "id": p.ID})
}

// List returns all patients, newest first.
func (h *PatientHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	patients, err := h.Patients.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error fetching patients"})
	}
	if patients == nil {
		patients = []*model.Patient{}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "patients": patients})
}

// Delete removes a patient and the patient's appointments.
func (h *PatientHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid patient id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Patients.Delete(ctx, id); err != nil {
		if err == repository.ErrPatientNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Patient not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Error deleting patient"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
