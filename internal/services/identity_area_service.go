package services

import (
	"errors"
	"fmt"

	"github.com/atomicsystems/atomic-backend/internal/dto"
	"github.com/atomicsystems/atomic-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAreaNotFound         = errors.New("identity area not found")
	ErrDuplicateAreaName    = errors.New("an identity area with this name already exists")
	ErrAreaHasActiveSystems = errors.New("cannot delete identity area with active systems")
)

const defaultColor = "#3B82F6"

type IdentityAreaService struct {
	db *gorm.DB
}

func NewIdentityAreaService(db *gorm.DB) *IdentityAreaService {
	return &IdentityAreaService{db: db}
}

func (s *IdentityAreaService) List(userID uuid.UUID) ([]models.IdentityArea, error) {
	var areas []models.IdentityArea
	err := s.db.Where("user_id = ? AND is_active = ?", userID, true).
		Preload("Systems", "is_active = ?", true).
		Order(`"order" ASC, created_at DESC`).
		Find(&areas).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch identity areas: %w", err)
	}
	return areas, nil
}

// Get conflates "does not exist" and "not yours": both come back as
// ErrAreaNotFound so resource existence leaks nothing across users.
func (s *IdentityAreaService) Get(userID, areaID uuid.UUID) (*models.IdentityArea, error) {
	var area models.IdentityArea
	err := s.db.Where("id = ? AND user_id = ? AND is_active = ?", areaID, userID, true).
		Preload("Systems", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order(`"order" ASC, created_at DESC`)
		}).
		First(&area).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		return nil, fmt.Errorf("failed to fetch identity area: %w", err)
	}
	return &area, nil
}

func (s *IdentityAreaService) Create(userID uuid.UUID, req *dto.CreateIdentityAreaRequest) (*models.IdentityArea, error) {
	var existing models.IdentityArea
	err := s.db.Where("user_id = ? AND name = ? AND is_active = ?", userID, req.Name, true).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateAreaName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check name uniqueness: %w", err)
	}

	order, err := s.resolveOrder(userID, req.Order)
	if err != nil {
		return nil, err
	}

	area := models.IdentityArea{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     req.Name,
		Color:    defaultColor,
		Order:    order,
		IsActive: true,
	}
	if req.Description != nil {
		area.Description = *req.Description
	}
	if req.Color != nil {
		area.Color = *req.Color
	}

	if err := s.db.Create(&area).Error; err != nil {
		return nil, fmt.Errorf("failed to create identity area: %w", err)
	}
	area.Systems = []models.AtomicSystem{}
	return &area, nil
}

func (s *IdentityAreaService) Update(userID, areaID uuid.UUID, req *dto.UpdateIdentityAreaRequest) (*models.IdentityArea, error) {
	area, err := s.Get(userID, areaID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != area.Name {
		var dup models.IdentityArea
		err := s.db.Where("user_id = ? AND name = ? AND is_active = ? AND id <> ?",
			userID, *req.Name, true, areaID).First(&dup).Error
		if err == nil {
			return nil, ErrDuplicateAreaName
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check name uniqueness: %w", err)
		}
		area.Name = *req.Name
	}
	if req.Description != nil {
		area.Description = *req.Description
	}
	if req.Color != nil {
		area.Color = *req.Color
	}
	if req.Order != nil {
		area.Order = *req.Order
	}

	if err := s.db.Save(area).Error; err != nil {
		return nil, fmt.Errorf("failed to update identity area: %w", err)
	}
	return area, nil
}

// Delete refuses while the area still has active child systems; children must
// be deleted or reassigned first. The row itself is only flagged inactive.
func (s *IdentityAreaService) Delete(userID, areaID uuid.UUID) error {
	area, err := s.Get(userID, areaID)
	if err != nil {
		return err
	}

	var activeSystems int64
	if err := s.db.Model(&models.AtomicSystem{}).
		Where("identity_area_id = ? AND is_active = ?", areaID, true).
		Count(&activeSystems).Error; err != nil {
		return fmt.Errorf("failed to count child systems: %w", err)
	}
	if activeSystems > 0 {
		return ErrAreaHasActiveSystems
	}

	if err := s.db.Model(area).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to delete identity area: %w", err)
	}
	return nil
}

// Reorder applies the whole batch in one transaction: either every area gets
// its new order or none does.
func (s *IdentityAreaService) Reorder(userID uuid.UUID, items []dto.ReorderItem) ([]models.IdentityArea, error) {
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	var owned int64
	if err := s.db.Model(&models.IdentityArea{}).
		Where("user_id = ? AND id IN ? AND is_active = ?", userID, ids, true).
		Count(&owned).Error; err != nil {
		return nil, fmt.Errorf("failed to verify areas: %w", err)
	}
	if owned != int64(len(items)) {
		return nil, ErrAreaNotFound
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if err := tx.Model(&models.IdentityArea{}).
				Where("id = ?", item.ID).
				Update("order", item.Order).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reorder identity areas: %w", err)
	}

	return s.List(userID)
}

// resolveOrder falls back to max(sibling order)+1; the first row in a scope
// gets 0.
func (s *IdentityAreaService) resolveOrder(userID uuid.UUID, requested *int) (int, error) {
	if requested != nil {
		return *requested, nil
	}
	var next int
	err := s.db.Model(&models.IdentityArea{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Select(`COALESCE(MAX("order"), -1) + 1`).
		Scan(&next).Error
	if err != nil {
		return 0, fmt.Errorf("failed to resolve order: %w", err)
	}
	return next, nil
}
