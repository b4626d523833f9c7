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
	ErrGoalNotFound       = errors.New("identity goal not found")
	ErrDuplicateGoalTitle = errors.New("a goal with this title already exists in this identity area")
)

type IdentityGoalService struct {
	db *gorm.DB
}

func NewIdentityGoalService(db *gorm.DB) *IdentityGoalService {
	return &IdentityGoalService{db: db}
}

func (s *IdentityGoalService) List(userID uuid.UUID, areaID *uuid.UUID) ([]models.IdentityGoal, error) {
	query := s.db.Where("user_id = ? AND is_active = ?", userID, true)
	if areaID != nil {
		query = query.Where("identity_area_id = ?", *areaID)
	}

	var goals []models.IdentityGoal
	err := query.Preload("IdentityArea").
		Order(`"order" ASC, created_at DESC`).
		Find(&goals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch identity goals: %w", err)
	}
	return goals, nil
}

func (s *IdentityGoalService) Get(userID, goalID uuid.UUID) (*models.IdentityGoal, error) {
	var goal models.IdentityGoal
	err := s.db.Where("id = ? AND user_id = ? AND is_active = ?", goalID, userID, true).
		Preload("IdentityArea").
		First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to fetch identity goal: %w", err)
	}
	return &goal, nil
}

func (s *IdentityGoalService) Create(userID uuid.UUID, req *dto.CreateIdentityGoalRequest) (*models.IdentityGoal, error) {
	var area models.IdentityArea
	err := s.db.Where("id = ? AND user_id = ? AND is_active = ?", req.IdentityAreaID, userID, true).
		First(&area).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		return nil, fmt.Errorf("failed to verify identity area: %w", err)
	}

	var existing models.IdentityGoal
	err = s.db.Where("user_id = ? AND identity_area_id = ? AND title = ? AND is_active = ?",
		userID, req.IdentityAreaID, req.Title, true).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateGoalTitle
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check title uniqueness: %w", err)
	}

	order, err := s.resolveOrder(userID, req.IdentityAreaID, req.Order)
	if err != nil {
		return nil, err
	}

	goal := models.IdentityGoal{
		ID:             uuid.New(),
		UserID:         userID,
		IdentityAreaID: req.IdentityAreaID,
		Title:          req.Title,
		GoalType:       models.GoalTypeExact,
		Color:          defaultColor,
		Order:          order,
		IsActive:       true,
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.TargetValue != nil {
		goal.TargetValue = req.TargetValue
	}
	if req.CurrentValue != nil {
		goal.CurrentValue = req.CurrentValue
	}
	if req.Unit != nil {
		goal.Unit = *req.Unit
	}
	if req.GoalType != nil {
		goal.GoalType = *req.GoalType
	}
	if req.TargetDate != nil {
		goal.TargetDate = req.TargetDate
	}
	if req.Color != nil {
		goal.Color = *req.Color
	}

	if err := s.db.Create(&goal).Error; err != nil {
		return nil, fmt.Errorf("failed to create identity goal: %w", err)
	}
	goal.IdentityArea = area
	return &goal, nil
}

func (s *IdentityGoalService) Update(userID, goalID uuid.UUID, req *dto.UpdateIdentityGoalRequest) (*models.IdentityGoal, error) {
	goal, err := s.Get(userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != goal.Title {
		var dup models.IdentityGoal
		err := s.db.Where("user_id = ? AND identity_area_id = ? AND title = ? AND is_active = ? AND id <> ?",
			userID, goal.IdentityAreaID, *req.Title, true, goalID).First(&dup).Error
		if err == nil {
			return nil, ErrDuplicateGoalTitle
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check title uniqueness: %w", err)
		}
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.TargetValue != nil {
		goal.TargetValue = req.TargetValue
	}
	if req.CurrentValue != nil {
		goal.CurrentValue = req.CurrentValue
	}
	if req.Unit != nil {
		goal.Unit = *req.Unit
	}
	if req.GoalType != nil {
		goal.GoalType = *req.GoalType
	}
	if req.TargetDate != nil {
		goal.TargetDate = req.TargetDate
	}
	if req.Color != nil {
		goal.Color = *req.Color
	}
	if req.Order != nil {
		goal.Order = *req.Order
	}

	if err := s.db.Save(goal).Error; err != nil {
		return nil, fmt.Errorf("failed to update identity goal: %w", err)
	}
	return goal, nil
}

// UpdateProgress sets the current value and the achievement flag together.
// Marking achieved stamps AchievedAt; anything else clears it back to null.
func (s *IdentityGoalService) UpdateProgress(userID, goalID uuid.UUID, req *dto.UpdateGoalProgressRequest) (*models.IdentityGoal, error) {
	goal, err := s.Get(userID, goalID)
	if err != nil {
		return nil, err
	}

	achieved := req.IsAchieved != nil && *req.IsAchieved
	updates := map[string]interface{}{
		"current_value": req.CurrentValue,
		"is_achieved":   achieved,
	}
	if achieved {
		now := time.Now().UTC()
		updates["achieved_at"] = now
		goal.AchievedAt = &now
	} else {
		updates["achieved_at"] = nil
		goal.AchievedAt = nil
	}

	if err := s.db.Model(goal).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update goal progress: %w", err)
	}
	goal.CurrentValue = req.CurrentValue
	goal.IsAchieved = achieved
	return goal, nil
}

func (s *IdentityGoalService) Delete(userID, goalID uuid.UUID) error {
	goal, err := s.Get(userID, goalID)
	if err != nil {
		return err
	}
	if err := s.db.Model(goal).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to delete identity goal: %w", err)
	}
	return nil
}

// Reorder takes a plain id list scoped to one identity area; list position
// becomes the order value. The batch is one transaction.
func (s *IdentityGoalService) Reorder(userID, areaID uuid.UUID, goalIDs []uuid.UUID) ([]models.IdentityGoal, error) {
	var area models.IdentityArea
	err := s.db.Where("id = ? AND user_id = ? AND is_active = ?", areaID, userID, true).
		First(&area).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		return nil, fmt.Errorf("failed to verify identity area: %w", err)
	}

	var owned int64
	if err := s.db.Model(&models.IdentityGoal{}).
		Where("user_id = ? AND identity_area_id = ? AND id IN ? AND is_active = ?",
			userID, areaID, goalIDs, true).
		Count(&owned).Error; err != nil {
		return nil, fmt.Errorf("failed to verify goals: %w", err)
	}
	if owned != int64(len(goalIDs)) {
		return nil, ErrGoalNotFound
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for index, goalID := range goalIDs {
			if err := tx.Model(&models.IdentityGoal{}).
				Where("id = ?", goalID).
				Update("order", index).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reorder identity goals: %w", err)
	}

	return s.List(userID, &areaID)
}

func (s *IdentityGoalService) resolveOrder(userID, areaID uuid.UUID, requested *int) (int, error) {
	if requested != nil {
		return *requested, nil
	}
	var next int
	err := s.db.Model(&models.IdentityGoal{}).
		Where("user_id = ? AND identity_area_id = ? AND is_active = ?", userID, areaID, true).
		Select(`COALESCE(MAX("order"), -1) + 1`).
		Scan(&next).Error
	if err != nil {
		return 0, fmt.Errorf("failed to resolve order: %w", err)
	}
	return next, nil
}
