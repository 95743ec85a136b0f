package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/clinic-management/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/clinic-management/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/iliyamo/clinic-management/internal/model"      // import model for the role constants
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  Login lives under
// /api/auth and is unauthenticated; it optionally runs a rate limiter
// (pass nil to disable).  Verify requires a valid token and simply
// echoes the claims back.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, loginLimiter echo.MiddlewareFunc) {
	// Group for operations that do not require an existing session.
	g := e.Group("/api/auth")
	if loginLimiter != nil {
		// Throttle credential guessing on the login endpoint only.
		g.POST("/login", a.Login, loginLimiter)
	} else {
		g.POST("/login", a.Login)
	}
	// Verify runs behind the JWT middleware: a valid token is the whole
	// point of the endpoint.
	g.GET("/verify", a.Verify, middleware.JWTAuth(jwtSecret))
}

// RegisterAPI registers the protected resource routes under /api.  All of
// them require a valid access token; the user management routes are
// additionally restricted to admins.
func RegisterAPI(e *echo.Echo, jwtSecret string,
	users *handler.UserHandler, patients *handler.PatientHandler, appointments *handler.AppointmentHandler) {

	// Everything below requires a valid access token.  The JWTAuth
	// middleware stores user_id, username and role in the context for the
	// handlers and the role gate.
	api := e.Group("/api")
	api.Use(middleware.JWTAuth(jwtSecret))

	// Staff management is admin-only.
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	api.POST("/users", users.Create, adminOnly)
	api.GET("/users", users.List, adminOnly)

	// Patient records are shared between all authenticated staff.
	api.POST("/patients", patients.Create)
	api.GET("/patients", patients.List)
	api.DELETE("/patients/:id", patients.Delete)

	// Appointments are scoped to the calling dietitian inside the handlers.
	api.POST("/appointments", appointments.Create)
	api.GET("/appointments", appointments.List)
	api.DELETE("/appointments/:id", appointments.Delete)
}
