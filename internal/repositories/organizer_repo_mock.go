package repositories

import (
	"sync"

	"congreso/internal/models"

	"github.com/google/uuid"
)

// MockOrganizerRepository is an in-memory implementation of OrganizerRepository.
type MockOrganizerRepository struct {
	organizers map[string]models.Organizer
	mu         sync.RWMutex
}

// NewMockOrganizerRepository creates a new instance of MockOrganizerRepository.
func NewMockOrganizerRepository() *MockOrganizerRepository {
	return &MockOrganizerRepository{
		organizers: make(map[string]models.Organizer),
	}
}

// Create adds a new organizer account, assigning a UUID when none is set.
func (r *MockOrganizerRepository) Create(org *models.Organizer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if org.ID == "" {
		org.ID = uuid.New().String()
	}
	r.organizers[org.ID] = *org
	return nil
}

// GetByUsername retrieves an organizer by username, or nil if none.
func (r *MockOrganizerRepository) GetByUsername(username string) (*models.Organizer, error) {
	return r.find(func(o models.Organizer) bool { return o.Username == username })
}

// GetByEmail retrieves an organizer by email, or nil if none.
func (r *MockOrganizerRepository) GetByEmail(email string) (*models.Organizer, error) {
	return r.find(func(o models.Organizer) bool { return o.Email == email })
}

// GetByID retrieves an organizer by ID, or nil if none.
func (r *MockOrganizerRepository) GetByID(id string) (*models.Organizer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	org, ok := r.organizers[id]
	if !ok {
		return nil, nil
	}
	return &org, nil
}

func (r *MockOrganizerRepository) find(match func(models.Organizer) bool) (*models.Organizer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, org := range r.organizers {
		if match(org) {
			found := org
			return &found, nil
		}
	}
	return nil, nil
}
