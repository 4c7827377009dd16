package repositories

import "congreso/internal/models"

// OrganizerRepository defines the interface for organizer account data
// access. The GetBy* lookups return (nil, nil) when no account matches, so
// callers can tell absence apart from a store failure.
type OrganizerRepository interface {
	Create(org *models.Organizer) error
	GetByUsername(username string) (*models.Organizer, error)
	GetByEmail(email string) (*models.Organizer, error)
	GetByID(id string) (*models.Organizer, error)
}
