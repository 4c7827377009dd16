package repositories

import (
	"fmt"
	"sort"
	"sync"

	"congreso/internal/models"
)

// MockCommissionRepository is an in-memory implementation of CommissionRepository.
type MockCommissionRepository struct {
	commissions map[int64]models.Commission
	nextID      int64
	mu          sync.RWMutex
}

// NewMockCommissionRepository creates a new instance of MockCommissionRepository.
func NewMockCommissionRepository() *MockCommissionRepository {
	return &MockCommissionRepository{
		commissions: make(map[int64]models.Commission),
		nextID:      1,
	}
}

// GetAll returns all commissions ordered by ID.
func (r *MockCommissionRepository) GetAll() ([]models.Commission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Commission, 0, len(r.commissions))
	for _, c := range r.commissions {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// GetByID returns a commission by its ID, or nil if none exists.
func (r *MockCommissionRepository) GetByID(id int64) (*models.Commission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	commission, ok := r.commissions[id]
	if !ok {
		return nil, nil
	}
	return &commission, nil
}

// Create adds a new commission, assigning an ID when none is set.
func (r *MockCommissionRepository) Create(commission *models.Commission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if commission.ID == 0 {
		commission.ID = r.nextID
	}
	if commission.ID >= r.nextID {
		r.nextID = commission.ID + 1
	}
	r.commissions[commission.ID] = *commission
	return nil
}

// Update modifies an existing commission.
func (r *MockCommissionRepository) Update(commission *models.Commission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.commissions[commission.ID]; !ok {
		return fmt.Errorf("commission with ID %d not found for update", commission.ID)
	}
	r.commissions[commission.ID] = *commission
	return nil
}

// Delete removes a commission by its ID.
func (r *MockCommissionRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.commissions[id]; !ok {
		return fmt.Errorf("commission with ID %d not found for deletion", id)
	}
	delete(r.commissions, id)
	return nil
}
