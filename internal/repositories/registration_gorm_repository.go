package repositories

import (
	"errors"
	"fmt"

	"congreso/internal/models"

	"gorm.io/gorm"
)

// GORMRegistrationRepository is a GORM implementation of RegistrationRepository.
type GORMRegistrationRepository struct {
	db *gorm.DB
}

// NewGORMRegistrationRepository creates a new instance of GORMRegistrationRepository.
// The *gorm.DB must be opened with TranslateError enabled so unique-constraint
// violations surface as gorm.ErrDuplicatedKey.
func NewGORMRegistrationRepository(db *gorm.DB) *GORMRegistrationRepository {
	return &GORMRegistrationRepository{
		db: db,
	}
}

// Create inserts a new registration. The database assigns the ID and the
// creation timestamp. A unique-constraint violation on email is returned as
// models.ErrDuplicateEmail.
func (r *GORMRegistrationRepository) Create(reg *models.Registration) error {
	if err := r.db.Create(reg).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

// GetByEmail retrieves a registration by its stored (lower-cased) email.
// A nil registration with a nil error means no such registration exists.
func (r *GORMRegistrationRepository) GetByEmail(email string) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.First(&reg, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get registration by email %s: %w", email, err)
	}
	return &reg, nil
}

// GetAllWithCommission retrieves every registration joined with its
// commission's name, newest first. The LEFT JOIN keeps registrations whose
// commission has since been removed; their commission_name comes back nil.
func (r *GORMRegistrationRepository) GetAllWithCommission() ([]models.RegistrationWithCommission, error) {
	var rows []models.RegistrationWithCommission
	err := r.db.
		Table("registrations r").
		Select("r.id, r.full_name, r.email, r.institution, r.phone, c.name AS commission_name, r.work_title, r.work_summary, r.created_at").
		Joins("LEFT JOIN commissions c ON r.commission_id = c.id").
		Order("r.created_at DESC, r.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return rows, nil
}
