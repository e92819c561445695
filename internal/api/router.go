package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/stroyservice/intake-system/internal/api/handler"
	"github.com/stroyservice/intake-system/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(intake ports.IntakeService, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("intake"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Intake ---
	feedbackHandler := handler.NewFeedbackHandler(intake)
	e.POST("/feedback", feedbackHandler.Submit)

	// --- Health probe & metrics ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness – is the process alive?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
