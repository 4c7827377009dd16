package repositories

import "congreso/internal/models"

// RegistrationRepository defines the interface for registration data access.
//
// Create must surface models.ErrDuplicateEmail when the store's unique
// constraint on email fires; the service relies on that to distinguish a
// lost pre-check race from a genuine store failure.
type RegistrationRepository interface {
	Create(reg *models.Registration) error
	GetByEmail(email string) (*models.Registration, error)
	GetAllWithCommission() ([]models.RegistrationWithCommission, error)
}
