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

type IdentityGoalHandler struct {
	goalService *services.IdentityGoalService
}

func NewIdentityGoalHandler(goalService *services.IdentityGoalService) *IdentityGoalHandler {
	return &IdentityGoalHandler{goalService: goalService}
}

func (h *IdentityGoalHandler) List(c *fiber.Ctx) error {
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

	goals, err := h.goalService.List(userID, areaID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.IdentityGoalResponsesFrom(goals), "Identity goals retrieved successfully"))
}

func (h *IdentityGoalHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	goalID, err := parseID(c)
	if err != nil {
		return err
	}

	goal, err := h.goalService.Get(userID, goalID)
	if err != nil {
		if errors.Is(err, services.ErrGoalNotFound) {
			return apperr.NotFound("NOT_FOUND", "Identity goal not found")
		}
		return err
	}
	return c.JSON(dto.OK(dto.IdentityGoalResponseFrom(*goal), "Identity goal retrieved successfully"))
}

func (h *IdentityGoalHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateIdentityGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("BAD_REQUEST", "Invalid request body")
	}
	if details := req.Validate(); len(details) > 0 {
		return apperr.Unprocessable("VALIDATION_ERROR", "Validation failed").WithDetails(details)
	}

	goal, err := h.goalService.Create(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAreaNotFound):
			return apperr.NotFound("IDENTITY_AREA_NOT_FOUND", "Identity area not found")
		case errors.Is(err, services.ErrDuplicateGoalTitle):
			return apperr.Conflict("DUPLICATE_NAME", err.Error())
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(dto.IdentityGoalResponseFrom(*goal), "Identity goal created successfully"))
}

func (h *IdentityGoalHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	goalID, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateIdentityGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("BAD_REQUEST", "Invalid request body")
	}
	if details := req.Validate(); len(details) > 0 {
		return apperr.Unprocessable("VALIDATION_ERROR", "Validation failed").WithDetails(details)
	}

	goal, err := h.goalService.Update(userID, goalID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGoalNotFound):
			return apperr.NotFound("NOT_FOUND", "Identity goal not found")
		case errors.Is(err, services.ErrDuplicateGoalTitle):
			return apperr.Conflict("DUPLICATE_NAME", err.Error())
		}
		return err
	}
	return c.JSON(dto.OK(dto.IdentityGoalResponseFrom(*goal), "Identity goal updated successfully"))
}

func (h *IdentityGoalHandler) UpdateProgress(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	goalID, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateGoalProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("BAD_REQUEST", "Invalid request body")
	}
	if details := req.Validate(); len(details) > 0 {
		return apperr.Unprocessable("VALIDATION_ERROR", "Validation failed").WithDetails(details)
	}

	goal, err := h.goalService.UpdateProgress(userID, goalID, &req)
	if err != nil {
		if errors.Is(err, services.ErrGoalNotFound) {
			return apperr.NotFound("NOT_FOUND", "Identity goal not found")
		}
		return err
	}
	return c.JSON(dto.OK(dto.IdentityGoalResponseFrom(*goal), "Goal progress updated successfully"))
}

func (h *IdentityGoalHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	goalID, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.goalService.Delete(userID, goalID); err != nil {
		if errors.Is(err, services.ErrGoalNotFound) {
			return apperr.NotFound("NOT_FOUND", "Identity goal not found")
		}
		return err
	}
	return c.JSON(dto.OK(nil, "Identity goal deleted successfully"))
}

func (h *IdentityGoalHandler) Reorder(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	areaID, err := uuid.Parse(c.Params("identityAreaId"))
	if err != nil {
		return apperr.NotFound("IDENTITY_AREA_NOT_FOUND", "Identity area not found")
	}

	var req dto.ReorderGoalsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("BAD_REQUEST", "Invalid request body")
	}
	if details := req.Validate(); len(details) > 0 {
		return apperr.Unprocessable("VALIDATION_ERROR", "Validation failed").WithDetails(details)
	}

	goals, err := h.goalService.Reorder(userID, areaID, req.GoalIDs)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAreaNotFound):
			return apperr.NotFound("IDENTITY_AREA_NOT_FOUND", "Identity area not found")
		case errors.Is(err, services.ErrGoalNotFound):
			return apperr.NotFound("NOT_FOUND", "Some goals not found or not accessible")
		}
		return err
	}
	return c.JSON(dto.OK(dto.IdentityGoalResponsesFrom(goals), "Goals reordered successfully"))
}
