package repositories

import (
	"errors"
	"fmt"

	"congreso/internal/models"

	"gorm.io/gorm"
)

// GORMCommissionRepository is a GORM implementation of CommissionRepository.
type GORMCommissionRepository struct {
	db *gorm.DB
}

// NewGORMCommissionRepository creates a new instance of GORMCommissionRepository.
func NewGORMCommissionRepository(db *gorm.DB) *GORMCommissionRepository {
	return &GORMCommissionRepository{
		db: db,
	}
}

// GetAll retrieves all commissions ordered by ID.
func (r *GORMCommissionRepository) GetAll() ([]models.Commission, error) {
	var commissions []models.Commission
	if err := r.db.Order("id").Find(&commissions).Error; err != nil {
		return nil, fmt.Errorf("failed to get all commissions: %w", err)
	}
	return commissions, nil
}

// GetByID retrieves a single commission by its ID. A nil commission with a
// nil error means no such commission exists.
func (r *GORMCommissionRepository) GetByID(id int64) (*models.Commission, error) {
	var commission models.Commission
	if err := r.db.First(&commission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get commission by ID %d: %w", id, err)
	}
	return &commission, nil
}

// Create creates a new commission in the database.
func (r *GORMCommissionRepository) Create(commission *models.Commission) error {
	if err := r.db.Create(commission).Error; err != nil {
		return fmt.Errorf("failed to create commission: %w", err)
	}
	return nil
}

// Update updates an existing commission in the database.
func (r *GORMCommissionRepository) Update(commission *models.Commission) error {
	res := r.db.Save(commission)
	if res.Error != nil {
		return fmt.Errorf("failed to update commission: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("commission with ID %d not found for update", commission.ID)
	}
	return nil
}

// Delete deletes a commission by its ID from the database. Registrations that
// reference it are left untouched; listings fall back to a nil commission name.
func (r *GORMCommissionRepository) Delete(id int64) error {
	res := r.db.Delete(&models.Commission{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete commission: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("commission with ID %d not found for deletion", id)
	}
	return nil
}
