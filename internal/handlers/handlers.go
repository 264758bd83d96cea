// Package handlers implements HTTP handlers for the paylink API.
package handlers

import (
	"log/slog"

	"github.com/rideandbuy/paylink/internal/service"
)

// Handler serves every API endpoint
type Handler struct {
	linkService   service.LinkCreator
	reconciler    service.Reconciler
	statusQuerier service.StatusQuerier
	healthChecker service.HealthChecker
	logger        *slog.Logger
}

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	linkService service.LinkCreator,
	reconciler service.Reconciler,
	statusQuerier service.StatusQuerier,
	healthChecker service.HealthChecker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		linkService:   linkService,
		reconciler:    reconciler,
		statusQuerier: statusQuerier,
		healthChecker: healthChecker,
		logger:        logger,
	}
}
