package services

import (
	"congreso/internal/models"
	"congreso/internal/repositories"
)

// CommissionService handles business logic related to commissions.
type CommissionService struct {
	repo repositories.CommissionRepository
}

// NewCommissionService creates a new CommissionService.
func NewCommissionService(repo repositories.CommissionRepository) *CommissionService {
	return &CommissionService{
		repo: repo,
	}
}

// GetAllCommissions retrieves all commissions.
func (s *CommissionService) GetAllCommissions() ([]models.Commission, error) {
	return s.repo.GetAll()
}

// GetCommissionByID retrieves a single commission by its ID. Returns nil when
// no commission with that ID exists.
func (s *CommissionService) GetCommissionByID(id int64) (*models.Commission, error) {
	return s.repo.GetByID(id)
}

// CreateCommission creates a new commission.
func (s *CommissionService) CreateCommission(commission *models.Commission) error {
	return s.repo.Create(commission)
}

// UpdateCommission updates an existing commission.
func (s *CommissionService) UpdateCommission(commission *models.Commission) error {
	return s.repo.Update(commission)
}

// DeleteCommission deletes a commission by its ID. Existing registrations
// keep their commission_id; listings show a nil commission name for them.
func (s *CommissionService) DeleteCommission(id int64) error {
	return s.repo.Delete(id)
}
