package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicsystems/atomic-backend/internal/dto"
	"github.com/atomicsystems/atomic-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSystemNotFound      = errors.New("atomic system not found")
	ErrDuplicateSystemName = errors.New("an atomic system with this name already exists in this identity area")
)

const (
	recentExecutionWindow = 30 * 24 * time.Hour
	recentExecutionLimit  = 50
)

type AtomicSystemService struct {
	db *gorm.DB
}

func NewAtomicSystemService(db *gorm.DB) *AtomicSystemService {
	return &AtomicSystemService{db: db}
}

// List returns the caller's active systems, optionally narrowed to one
// identity area, together with per-system execution totals.
func (s *AtomicSystemService) List(userID uuid.UUID, areaID *uuid.UUID) ([]models.AtomicSystem, map[uuid.UUID]int64, error) {
	query := s.db.Where("user_id = ? AND is_active = ?", userID, true)
	if areaID != nil {
		query = query.Where("identity_area_id = ?", *areaID)
	}

	var systems []models.AtomicSystem
	err := query.Preload("IdentityArea").
		Order(`identity_area_id ASC, "order" ASC, created_at DESC`).
		Find(&systems).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch atomic systems: %w", err)
	}

	counts, err := s.executionCounts(userID)
	if err != nil {
		return nil, nil, err
	}
	return systems, counts, nil
}

// Get attaches the last 30 days of executions (capped at 50) and the
// all-time execution total.
func (s *AtomicSystemService) Get(userID, systemID uuid.UUID) (*models.AtomicSystem, int64, error) {
	var system models.AtomicSystem
	since := time.Now().Add(-recentExecutionWindow)
	err := s.db.Where("id = ? AND user_id = ? AND is_active = ?", systemID, userID, true).
		Preload("IdentityArea").
		Preload("Executions", func(db *gorm.DB) *gorm.DB {
			return db.Where("executed_at >= ?", since).
				Order("executed_at DESC").
				Limit(recentExecutionLimit)
		}).
		First(&system).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrSystemNotFound
		}
		return nil, 0, fmt.Errorf("failed to fetch atomic system: %w", err)
	}

	var total int64
	if err := s.db.Model(&models.SystemExecution{}).
		Where("system_id = ?", systemID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count executions: %w", err)
	}
	return &system, total, nil
}

func (s *AtomicSystemService) Create(userID uuid.UUID, req *dto.CreateAtomicSystemRequest) (*models.AtomicSystem, error) {
	var area models.IdentityArea
	err := s.db.Where("id = ? AND user_id = ? AND is_active = ?", req.IdentityAreaID, userID, true).
		First(&area).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		return nil, fmt.Errorf("failed to verify identity area: %w", err)
	}

	var existing models.AtomicSystem
	err = s.db.Where("user_id = ? AND identity_area_id = ? AND name = ? AND is_active = ?",
		userID, req.IdentityAreaID, req.Name, true).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateSystemName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check name uniqueness: %w", err)
	}

	order, err := s.resolveOrder(userID, req.IdentityAreaID, req.Order)
	if err != nil {
		return nil, err
	}

	system := models.AtomicSystem{
		ID:             uuid.New(),
		UserID:         userID,
		IdentityAreaID: req.IdentityAreaID,
		Name:           req.Name,
		Cue:            req.Cue,
		Craving:        req.Craving,
		Response:       req.Response,
		Reward:         req.Reward,
		Frequency:      models.FrequencyDaily,
		Difficulty:     3,
		Order:          order,
		IsActive:       true,
	}
	if req.Description != nil {
		system.Description = *req.Description
	}
	if req.Frequency != nil {
		system.Frequency = *req.Frequency
	}
	if req.TimeOfDay != nil {
		system.TimeOfDay = *req.TimeOfDay
	}
	if req.EstimatedMin != nil {
		system.EstimatedMin = req.EstimatedMin
	}
	if req.Difficulty != nil {
		system.Difficulty = *req.Difficulty
	}

	if err := s.db.Create(&system).Error; err != nil {
		return nil, fmt.Errorf("failed to create atomic system: %w", err)
	}
	system.IdentityArea = area
	return &system, nil
}

func (s *AtomicSystemService) Update(userID, systemID uuid.UUID, req *dto.UpdateAtomicSystemRequest) (*models.AtomicSystem, error) {
	system, err := s.loadOwned(userID, systemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != system.Name {
		var dup models.AtomicSystem
		err := s.db.Where("user_id = ? AND identity_area_id = ? AND name = ? AND is_active = ? AND id <> ?",
			userID, system.IdentityAreaID, *req.Name, true, systemID).First(&dup).Error
		if err == nil {
			return nil, ErrDuplicateSystemName
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check name uniqueness: %w", err)
		}
		system.Name = *req.Name
	}
	if req.Description != nil {
		system.Description = *req.Description
	}
	if req.Cue != nil {
		system.Cue = *req.Cue
	}
	if req.Craving != nil {
		system.Craving = *req.Craving
	}
	if req.Response != nil {
		system.Response = *req.Response
	}
	if req.Reward != nil {
		system.Reward = *req.Reward
	}
	if req.Frequency != nil {
		system.Frequency = *req.Frequency
	}
	if req.TimeOfDay != nil {
		system.TimeOfDay = *req.TimeOfDay
	}
	if req.EstimatedMin != nil {
		system.EstimatedMin = req.EstimatedMin
	}
	if req.Difficulty != nil {
		system.Difficulty = *req.Difficulty
	}
	if req.Order != nil {
		system.Order = *req.Order
	}

	if err := s.db.Save(system).Error; err != nil {
		return nil, fmt.Errorf("failed to update atomic system: %w", err)
	}
	return system, nil
}

func (s *AtomicSystemService) Delete(userID, systemID uuid.UUID) error {
	system, err := s.loadOwned(userID, systemID)
	if err != nil {
		return err
	}
	if err := s.db.Model(system).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to delete atomic system: %w", err)
	}
	return nil
}

// Execute appends one log entry and never touches the system row. There is no
// once-per-day constraint; repeat executions are a feature.
func (s *AtomicSystemService) Execute(userID, systemID uuid.UUID, req *dto.ExecuteSystemRequest) (*models.SystemExecution, error) {
	if _, err := s.loadOwned(userID, systemID); err != nil {
		return nil, err
	}

	execution := models.SystemExecution{
		ID:                  uuid.New(),
		SystemID:            systemID,
		UserID:              userID,
		ExecutedAt:          time.Now().UTC(),
		Quality:             3,
		StrengthensIdentity: true,
	}
	if req.Quality != nil {
		execution.Quality = *req.Quality
	}
	if req.Notes != nil {
		execution.Notes = *req.Notes
	}
	if req.StrengthensIdentity != nil {
		execution.StrengthensIdentity = *req.StrengthensIdentity
	}

	if err := s.db.Create(&execution).Error; err != nil {
		return nil, fmt.Errorf("failed to record execution: %w", err)
	}
	return &execution, nil
}

func (s *AtomicSystemService) loadOwned(userID, systemID uuid.UUID) (*models.AtomicSystem, error) {
	var system models.AtomicSystem
	err := s.db.Where("id = ? AND user_id = ? AND is_active = ?", systemID, userID, true).
		Preload("IdentityArea").
		First(&system).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSystemNotFound
		}
		return nil, fmt.Errorf("failed to fetch atomic system: %w", err)
	}
	return &system, nil
}

func (s *AtomicSystemService) executionCounts(userID uuid.UUID) (map[uuid.UUID]int64, error) {
	type row struct {
		SystemID uuid.UUID
		Total    int64
	}
	var rows []row
	err := s.db.Model(&models.SystemExecution{}).
		Select("system_id, COUNT(*) AS total").
		Where("user_id = ?", userID).
		Group("system_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count executions: %w", err)
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.SystemID] = r.Total
	}
	return counts, nil
}

func (s *AtomicSystemService) resolveOrder(userID, areaID uuid.UUID, requested *int) (int, error) {
	if requested != nil {
		return *requested, nil
	}
	var next int
	err := s.db.Model(&models.AtomicSystem{}).
		Where("user_id = ? AND identity_area_id = ? AND is_active = ?", userID, areaID, true).
		Select(`COALESCE(MAX("order"), -1) + 1`).
		Scan(&next).Error
	if err != nil {
		return 0, fmt.Errorf("failed to resolve order: %w", err)
	}
	return next, nil
}
