package handlers

import (
	"time"

	"github.com/atomicsystems/atomic-backend/internal/database"
	"github.com/atomicsystems/atomic-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) CheckDB(c *fiber.Ctx) error {
	overall := "ok"
	dbStatus := "ok"
	status := fiber.StatusOK
	if err := database.Ping(h.db); err != nil {
		overall = "degraded"
		dbStatus = "unhealthy: " + err.Error()
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(dto.HealthResponse{
		Status:    overall,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}
