package http

import (
	"github.com/MKhiriev/go-secure-api/internal/audit"
	"github.com/MKhiriev/go-secure-api/internal/detector"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/service"
	"github.com/MKhiriev/go-secure-api/internal/utils"
)

type Handler struct {
	services *service.Services
	audit    *audit.Logger
	detector *detector.Detector
	traceIDs audit.IDGenerator

	// port is reported by the root route.
	port string

	logger *logger.Logger
}

func NewHandler(services *service.Services, auditLogger *audit.Logger, port string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		audit:    auditLogger,
		detector: detector.New(),
		traceIDs: utils.NewUUIDGenerator(),
		port:     port,
		logger:   logger,
	}
}
