package handlers

import (
	"errors"

	"github.com/atomicsystems/atomic-backend/internal/apperr"
	"github.com/atomicsystems/atomic-backend/internal/dto"
	"github.com/atomicsystems/atomic-backend/internal/middleware"
	"github.com/atomicsystems/atomic-backend/internal/services"
	"github.com/atomicsystems/atomic-backend/internal/token"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("BAD_REQUEST", "Invalid request body")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return apperr.BadRequest("MISSING_FIELDS", "Email, password, and name are required")
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		var policyErr *services.PasswordPolicyError
		switch {
		case errors.Is(err, services.ErrInvalidEmail):
			return apperr.BadRequest("INVALID_EMAIL", err.Error())
		case errors.As(err, &policyErr):
			return apperr.BadRequest("WEAK_PASSWORD", policyErr.Error()).WithDetails(policyErr.Violations)
		case errors.Is(err, services.ErrInvalidName):
			return apperr.BadRequest("INVALID_NAME", err.Error())
		case errors.Is(err, services.ErrUserExists):
			return apperr.Conflict("USER_EXISTS", err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.OK(resp, "User registered successfully"))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("BAD_REQUEST", "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return apperr.BadRequest("MISSING_FIELDS", "Email and password are required")
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail):
			return apperr.BadRequest("INVALID_EMAIL", err.Error())
		case errors.Is(err, services.ErrInvalidCredentials):
			return apperr.Unauthorized("INVALID_CREDENTIALS", err.Error())
		case errors.Is(err, services.ErrAccountDeactivated):
			return apperr.Unauthorized("ACCOUNT_DEACTIVATED", err.Error())
		}
		return err
	}

	return c.JSON(dto.OK(resp, "Login successful"))
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("BAD_REQUEST", "Invalid request body")
	}
	if req.RefreshToken == "" {
		return apperr.BadRequest("MISSING_REFRESH_TOKEN", "Refresh token is required")
	}

	tokens, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrExpired), errors.Is(err, services.ErrRefreshTokenExpired):
			return apperr.Unauthorized("TOKEN_EXPIRED", "Refresh token has expired")
		case errors.Is(err, token.ErrInvalid):
			return apperr.Unauthorized("INVALID_TOKEN", "Invalid token")
		case errors.Is(err, services.ErrInvalidRefreshToken):
			return apperr.Unauthorized("INVALID_REFRESH_TOKEN", "Invalid refresh token")
		case errors.Is(err, services.ErrUserInactive):
			return apperr.Unauthorized("USER_INACTIVE", err.Error())
		}
		return err
	}

	return c.JSON(dto.OK(tokens, "Token refreshed successfully"))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("BAD_REQUEST", "Invalid request body")
	}
	if req.RefreshToken == "" {
		return apperr.BadRequest("MISSING_REFRESH_TOKEN", "Refresh token is required")
	}

	if err := h.authService.Logout(req.RefreshToken); err != nil {
		return err
	}
	return c.JSON(dto.OK(nil, "Logged out successfully"))
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return apperr.NotFound("NOT_FOUND", "User not found")
		}
		return err
	}
	return c.JSON(dto.OK(user, "Profile retrieved successfully"))
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("BAD_REQUEST", "Invalid request body")
	}
	if details := req.Validate(); len(details) > 0 {
		return apperr.Unprocessable("VALIDATION_ERROR", "Validation failed").WithDetails(details)
	}

	user, err := h.authService.UpdateProfile(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return apperr.NotFound("NOT_FOUND", "User not found")
		case errors.Is(err, services.ErrEmailTaken):
			return apperr.Conflict("EMAIL_TAKEN", err.Error())
		}
		return err
	}
	return c.JSON(dto.OK(user, "Profile updated successfully"))
}
