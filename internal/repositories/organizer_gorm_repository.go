package repositories

import (
	"errors"
	"fmt"

	"congreso/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrganizerRepository is a GORM implementation of OrganizerRepository.
type GORMOrganizerRepository struct {
	db *gorm.DB
}

// NewGORMOrganizerRepository creates a new instance of GORMOrganizerRepository.
func NewGORMOrganizerRepository(db *gorm.DB) *GORMOrganizerRepository {
	return &GORMOrganizerRepository{
		db: db,
	}
}

// Create inserts a new organizer account, assigning a UUID when none is set.
func (r *GORMOrganizerRepository) Create(org *models.Organizer) error {
	if org.ID == "" {
		org.ID = uuid.New().String()
	}
	if err := r.db.Create(org).Error; err != nil {
		return fmt.Errorf("failed to create organizer: %w", err)
	}
	return nil
}

// GetByUsername retrieves an organizer by username.
func (r *GORMOrganizerRepository) GetByUsername(username string) (*models.Organizer, error) {
	return r.getBy("username = ?", username)
}

// GetByEmail retrieves an organizer by email.
func (r *GORMOrganizerRepository) GetByEmail(email string) (*models.Organizer, error) {
	return r.getBy("email = ?", email)
}

// GetByID retrieves an organizer by ID.
func (r *GORMOrganizerRepository) GetByID(id string) (*models.Organizer, error) {
	return r.getBy("id = ?", id)
}

func (r *GORMOrganizerRepository) getBy(query string, arg string) (*models.Organizer, error) {
	var org models.Organizer
	if err := r.db.First(&org, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get organizer by %q: %w", query, err)
	}
	return &org, nil
}
