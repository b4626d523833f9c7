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

type IdentityAreaHandler struct {
	areaService *services.IdentityAreaService
}

func NewIdentityAreaHandler(areaService *services.IdentityAreaService) *IdentityAreaHandler {
	return &IdentityAreaHandler{areaService: areaService}
}

func (h *IdentityAreaHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	areas, err := h.areaService.List(userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.IdentityAreaResponsesFrom(areas), "Identity areas retrieved successfully"))
}

func (h *IdentityAreaHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	areaID, err := parseID(c)
	if err != nil {
		return err
	}

	area, err := h.areaService.Get(userID, areaID)
	if err != nil {
		if errors.Is(err, services.ErrAreaNotFound) {
			return apperr.NotFound("NOT_FOUND", "Identity area not found")
		}
		return err
	}
	return c.JSON(dto.OK(dto.IdentityAreaResponseFrom(*area), "Identity area retrieved successfully"))
}

func (h *IdentityAreaHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateIdentityAreaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("BAD_REQUEST", "Invalid request body")
	}
	if details := req.Validate(); len(details) > 0 {
		return apperr.Unprocessable("VALIDATION_ERROR", "Validation failed").WithDetails(details)
	}

	area, err := h.areaService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateAreaName) {
			return apperr.Conflict("DUPLICATE_NAME", err.Error())
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(dto.IdentityAreaResponseFrom(*area), "Identity area created successfully"))
}

func (h *IdentityAreaHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	areaID, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateIdentityAreaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("BAD_REQUEST", "Invalid request body")
	}
	if details := req.Validate(); len(details) > 0 {
		return apperr.Unprocessable("VALIDATION_ERROR", "Validation failed").WithDetails(details)
	}

	area, err := h.areaService.Update(userID, areaID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAreaNotFound):
			return apperr.NotFound("NOT_FOUND", "Identity area not found")
		case errors.Is(err, services.ErrDuplicateAreaName):
			return apperr.Conflict("DUPLICATE_NAME", err.Error())
		}
		return err
	}
	return c.JSON(dto.OK(dto.IdentityAreaResponseFrom(*area), "Identity area updated successfully"))
}

func (h *IdentityAreaHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	areaID, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.areaService.Delete(userID, areaID); err != nil {
		switch {
		case errors.Is(err, services.ErrAreaNotFound):
			return apperr.NotFound("NOT_FOUND", "Identity area not found")
		case errors.Is(err, services.ErrAreaHasActiveSystems):
			return apperr.Conflict("HAS_ACTIVE_SYSTEMS",
				"Cannot delete identity area with active systems. Please delete or reassign systems first.")
		}
		return err
	}
	return c.JSON(dto.OK(nil, "Identity area deleted successfully"))
}

func (h *IdentityAreaHandler) Reorder(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.ReorderAreasRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("BAD_REQUEST", "Invalid request body")
	}
	if details := req.Validate(); len(details) > 0 {
		return apperr.Unprocessable("VALIDATION_ERROR", "Validation failed").WithDetails(details)
	}

	areas, err := h.areaService.Reorder(userID, req.Areas)
	if err != nil {
		if errors.Is(err, services.ErrAreaNotFound) {
			return apperr.NotFound("NOT_FOUND", "One or more identity areas not found")
		}
		return err
	}
	return c.JSON(dto.OK(dto.IdentityAreaResponsesFrom(areas), "Identity areas reordered successfully"))
}

// parseID reads the :id path parameter. A malformed id is handled like a row
// that does not exist.
func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperr.NotFound("NOT_FOUND", "Resource not found")
	}
	return id, nil
}
