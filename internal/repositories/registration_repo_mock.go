package repositories

import (
	"sort"
	"strings"
	"sync"
	"time"

	"congreso/internal/models"
)

// MockRegistrationRepository is an in-memory implementation of
// RegistrationRepository. It enforces the same email uniqueness as the
// database constraint so the duplicate-race path stays testable without a
// real store.
type MockRegistrationRepository struct {
	registrations map[int64]models.Registration
	commissions   CommissionRepository // for resolving commission names in listings
	nextID        int64
	mu            sync.RWMutex
}

// NewMockRegistrationRepository creates a new instance of MockRegistrationRepository.
// The commission repository may be nil; listings then carry nil commission names.
func NewMockRegistrationRepository(commissions CommissionRepository) *MockRegistrationRepository {
	return &MockRegistrationRepository{
		registrations: make(map[int64]models.Registration),
		commissions:   commissions,
		nextID:        1,
	}
}

// Create adds a new registration, assigning the ID and creation timestamp.
func (r *MockRegistrationRepository) Create(reg *models.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.registrations {
		if strings.EqualFold(existing.Email, reg.Email) {
			return models.ErrDuplicateEmail
		}
	}

	reg.ID = r.nextID
	r.nextID++
	reg.CreatedAt = time.Now()
	r.registrations[reg.ID] = *reg
	return nil
}

// GetByEmail returns the registration with the given email, or nil if none.
func (r *MockRegistrationRepository) GetByEmail(email string) (*models.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, reg := range r.registrations {
		if reg.Email == email {
			found := reg
			return &found, nil
		}
	}
	return nil, nil
}

// GetAllWithCommission returns all registrations joined with their commission
// names, newest first.
func (r *MockRegistrationRepository) GetAllWithCommission() ([]models.RegistrationWithCommission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]models.RegistrationWithCommission, 0, len(r.registrations))
	for _, reg := range r.registrations {
		row := models.RegistrationWithCommission{
			ID:          reg.ID,
			FullName:    reg.FullName,
			Email:       reg.Email,
			Institution: reg.Institution,
			Phone:       reg.Phone,
			WorkTitle:   reg.WorkTitle,
			WorkSummary: reg.WorkSummary,
			CreatedAt:   reg.CreatedAt,
		}
		if r.commissions != nil {
			if commission, err := r.commissions.GetByID(reg.CommissionID); err == nil && commission != nil {
				name := commission.Name
				row.CommissionName = &name
			}
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].ID > rows[j].ID
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}
