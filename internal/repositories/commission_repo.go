package repositories

import "congreso/internal/models"

// CommissionRepository defines the interface for commission reference data.
type CommissionRepository interface {
	GetAll() ([]models.Commission, error)
	GetByID(id int64) (*models.Commission, error)
	Create(commission *models.Commission) error
	Update(commission *models.Commission) error
	Delete(id int64) error
}
