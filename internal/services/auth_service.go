package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atomicsystems/atomic-backend/internal/config"
	"github.com/atomicsystems/atomic-backend/internal/dto"
	"github.com/atomicsystems/atomic-backend/internal/models"
	"github.com/atomicsystems/atomic-backend/internal/token"
	"github.com/atomicsystems/atomic-backend/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidEmail = errors.New("invalid email format")
	ErrInvalidName  = errors.New("name must be between 2 and 50 characters")
	ErrUserExists   = errors.New("user already exists with this email")
	// ErrInvalidCredentials deliberately covers both unknown email and wrong
	// password so callers cannot enumerate accounts.
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountDeactivated  = errors.New("account is deactivated")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token has expired")
	ErrUserInactive        = errors.New("user not found or inactive")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email is already taken")
)

// PasswordPolicyError lists every rule the submitted password broke.
type PasswordPolicyError struct {
	Violations []string
}

func (e *PasswordPolicyError) Error() string {
	return e.Violations[0]
}

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if violations := validation.ValidatePassword(req.Password); len(violations) > 0 {
		return nil, &PasswordPolicyError{Violations: violations}
	}
	name := strings.TrimSpace(req.Name)
	if msg := validation.ValidateName(name); msg != "" {
		return nil, ErrInvalidName
	}

	// Email uniqueness counts deactivated accounts too.
	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Email:    email,
		Name:     name,
		Password: string(hash),
		IsActive: true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := s.issueTokens(&user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: dto.UserResponseFrom(user), Tokens: *tokens}, nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Each login issues a fresh pair without revoking earlier ones; concurrent
	// sessions on multiple devices are allowed.
	tokens, err := s.issueTokens(&user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: dto.UserResponseFrom(user), Tokens: *tokens}, nil
}

// Refresh rotates the stored record in place. The rotation update is guarded
// by the old token value: when two refresh calls race on the same token, only
// the one that commits first succeeds and the loser reads zero affected rows.
func (s *AuthService) Refresh(rawToken string) (*dto.TokenPair, error) {
	claims, err := token.Verify([]byte(s.cfg.JWTSecret), rawToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != token.TypeRefresh {
		return nil, token.ErrInvalid
	}

	var stored models.RefreshToken
	if err := s.db.Where("token = ?", rawToken).First(&stored).Error; err != nil {
		return nil, ErrInvalidRefreshToken
	}

	if time.Now().After(stored.ExpiresAt) {
		if err := s.db.Delete(&stored).Error; err != nil {
			slog.Error("failed to purge expired refresh token", "error", err)
		}
		return nil, ErrRefreshTokenExpired
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", claims.SubjectID).Error; err != nil || !user.IsActive {
		return nil, ErrUserInactive
	}

	accessToken, refreshToken, err := s.signPair(user.ID)
	if err != nil {
		return nil, err
	}

	result := s.db.Model(&models.RefreshToken{}).
		Where("id = ? AND token = ?", stored.ID, rawToken).
		Updates(map[string]interface{}{
			"token":      refreshToken,
			"expires_at": time.Now().Add(s.cfg.JWTRefreshExpiry),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrInvalidRefreshToken
	}

	return &dto.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout is idempotent: deleting a token that is already gone is not an error.
func (s *AuthService) Logout(rawToken string) error {
	return s.db.Where("token = ?", rawToken).Delete(&models.RefreshToken{}).Error
}

func (s *AuthService) GetProfile(userID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	resp := dto.UserResponseFrom(user)
	return &resp, nil
}

func (s *AuthService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		var other models.User
		err := s.db.Where("email = ? AND id <> ?", email, userID).First(&other).Error
		if err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		updates["email"] = email
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	resp := dto.UserResponseFrom(user)
	return &resp, nil
}

func (s *AuthService) signPair(userID uuid.UUID) (access, refresh string, err error) {
	secret := []byte(s.cfg.JWTSecret)
	access, err = token.Sign(secret, userID, token.TypeAccess, s.cfg.JWTAccessExpiry)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err = token.Sign(secret, userID, token.TypeRefresh, s.cfg.JWTRefreshExpiry)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return access, refresh, nil
}

func (s *AuthService) issueTokens(user *models.User) (*dto.TokenPair, error) {
	accessToken, refreshToken, err := s.signPair(user.ID)
	if err != nil {
		return nil, err
	}

	record := models.RefreshToken{
		ID:        uuid.New(),
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
