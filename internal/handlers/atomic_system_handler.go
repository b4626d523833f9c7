package handlers

import (
	"errors"

	"github.com/atomicsystems/atomic-backend/internal/apperr"
	"github.com/atomicsystems/atomic-backend/internal/dto"
	"github.com/atomicsystems/atomic-backend/internal/middleware"
	"github.com/atomicsystems/atomic-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AtomicSystemHandler struct {
	systemService *services.AtomicSystemService
}

func NewAtomicSystemHandler(systemService *services.AtomicSystemService) *AtomicSystemHandler {
	return &AtomicSystemHandler{systemService: systemService}
}

func (h *AtomicSystemHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var areaID *uuid.UUID
	if raw := c.Query("identityAreaId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return apperr.BadRequest("BAD_REQUEST", "Invalid identity area id")
		}
		areaID = &parsed
	}

	systems, counts, err := h.systemService.List(userID, areaID)
	if err != nil {
		return err
	}

	responses := make([]dto.AtomicSystemResponse, len(systems))
	for i, system := range systems {
		responses[i] = dto.AtomicSystemResponseFrom(system, counts[system.ID])
	}
	return c.JSON(dto.OK(responses, "Atomic systems retrieved successfully"))
}

func (h *AtomicSystemHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	systemID, err := parseID(c)
	if err != nil {
		return err
	}

	system, total, err := h.systemService.Get(userID, systemID)
	if err != nil {
		if errors.Is(err, services.ErrSystemNotFound) {
			return apperr.NotFound("NOT_FOUND", "Atomic system not found")
		}
		return err
	}
	return c.JSON(dto.OK(dto.AtomicSystemResponseFrom(*system, total), "Atomic system retrieved successfully"))
}

func (h *AtomicSystemHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateAtomicSystemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("BAD_REQUEST", "Invalid request body")
	}
	if details := req.Validate(); len(details) > 0 {
		return apperr.Unprocessable("VALIDATION_ERROR", "Validation failed").WithDetails(details)
	}

	system, err := h.systemService.Create(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAreaNotFound):
			return apperr.NotFound("IDENTITY_AREA_NOT_FOUND", "Identity area not found")
		case errors.Is(err, services.ErrDuplicateSystemName):
			return apperr.Conflict("DUPLICATE_NAME", err.Error())
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(dto.AtomicSystemResponseFrom(*system, 0), "Atomic system created successfully"))
}

func (h *AtomicSystemHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	systemID, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateAtomicSystemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("BAD_REQUEST", "Invalid request body")
	}
	if details := req.Validate(); len(details) > 0 {
		return apperr.Unprocessable("VALIDATION_ERROR", "Validation failed").WithDetails(details)
	}

	system, err := h.systemService.Update(userID, systemID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSystemNotFound):
			return apperr.NotFound("NOT_FOUND", "Atomic system not found")
		case errors.Is(err, services.ErrDuplicateSystemName):
			return apperr.Conflict("DUPLICATE_NAME", err.Error())
		}
		return err
	}

	// Execution counts are list/detail concerns; update responses omit them.
	return c.JSON(dto.OK(dto.AtomicSystemResponseFrom(*system, 0), "Atomic system updated successfully"))
}

func (h *AtomicSystemHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	systemID, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.systemService.Delete(userID, systemID); err != nil {
		if errors.Is(err, services.ErrSystemNotFound) {
			return apperr.NotFound("NOT_FOUND", "Atomic system not found")
		}
		return err
	}
	return c.JSON(dto.OK(nil, "Atomic system deleted successfully"))
}

func (h *AtomicSystemHandler) Execute(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	systemID, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.ExecuteSystemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("BAD_REQUEST", "Invalid request body")
	}
	if details := req.Validate(); len(details) > 0 {
		return apperr.Unprocessable("VALIDATION_ERROR", "Validation failed").WithDetails(details)
	}

	execution, err := h.systemService.Execute(userID, systemID, &req)
	if err != nil {
		if errors.Is(err, services.ErrSystemNotFound) {
			return apperr.NotFound("NOT_FOUND", "Atomic system not found")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(execution, "Atomic system executed successfully"))
}
