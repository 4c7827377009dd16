package services_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"congreso/internal/models"
	"congreso/internal/services"
	"congreso/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRegistrationRepository is a mock implementation of repositories.RegistrationRepository
type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Create(reg *models.Registration) error {
	args := m.Called(reg)
	return args.Error(0)
}

func (m *MockRegistrationRepository) GetByEmail(email string) (*models.Registration, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) GetAllWithCommission() ([]models.RegistrationWithCommission, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RegistrationWithCommission), args.Error(1)
}

// MockCommissionRepository is a mock implementation of repositories.CommissionRepository
type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) GetAll() ([]models.Commission, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Commission), args.Error(1)
}

func (m *MockCommissionRepository) GetByID(id int64) (*models.Commission, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Commission), args.Error(1)
}

func (m *MockCommissionRepository) Create(commission *models.Commission) error {
	args := m.Called(commission)
	return args.Error(0)
}

func (m *MockCommissionRepository) Update(commission *models.Commission) error {
	args := m.Called(commission)
	return args.Error(0)
}

func (m *MockCommissionRepository) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func submissionPayload() map[string]interface{} {
	return map[string]interface{}{
		"full_name":     "Jane Doe",
		"email":         "Jane@X.com",
		"institution":   "MIT",
		"phone":         "+1 555 0100",
		"commission_id": float64(1),
		"work_title":    "A Study of X",
		"work_summary":  strings.Repeat("a", 52),
	}
}

func TestRegistrationService_Create_Success(t *testing.T) {
	regRepo := new(MockRegistrationRepository)
	commRepo := new(MockCommissionRepository)
	service := services.NewRegistrationService(regRepo, commRepo, nil)

	commRepo.On("GetByID", int64(1)).Return(&models.Commission{ID: 1, Name: "Biología Animal"}, nil).Once()
	// Email is checked with the lower-cased form.
	regRepo.On("GetByEmail", "jane@x.com").Return(nil, nil).Once()
	regRepo.On("Create", mock.AnythingOfType("*models.Registration")).Run(func(args mock.Arguments) {
		reg := args.Get(0).(*models.Registration)
		reg.ID = 42
		reg.CreatedAt = time.Now()
	}).Return(nil).Once()

	created, err := service.Create(submissionPayload())

	assert.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, "Jane Doe", created.FullName)
	assert.Equal(t, "jane@x.com", created.Email)
	assert.False(t, created.CreatedAt.IsZero())
	regRepo.AssertExpectations(t)
	commRepo.AssertExpectations(t)
}

func TestRegistrationService_Create_ValidationFailureSkipsStore(t *testing.T) {
	regRepo := new(MockRegistrationRepository)
	commRepo := new(MockCommissionRepository)
	service := services.NewRegistrationService(regRepo, commRepo, nil)

	payload := submissionPayload()
	payload["work_summary"] = strings.Repeat("a", 30)

	created, err := service.Create(payload)

	assert.Nil(t, created)
	var validationErr *services.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{validation.MsgWorkSummaryTooShort}, validationErr.Errors)
	// An invalid payload must never touch the store.
	commRepo.AssertNotCalled(t, "GetByID", mock.Anything)
	regRepo.AssertNotCalled(t, "GetByEmail", mock.Anything)
	regRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegistrationService_Create_CommissionNotFound(t *testing.T) {
	regRepo := new(MockRegistrationRepository)
	commRepo := new(MockCommissionRepository)
	service := services.NewRegistrationService(regRepo, commRepo, nil)

	payload := submissionPayload()
	payload["commission_id"] = float64(999)
	commRepo.On("GetByID", int64(999)).Return(nil, nil).Once()

	created, err := service.Create(payload)

	assert.Nil(t, created)
	assert.ErrorIs(t, err, services.ErrCommissionNotFound)
	// A missing commission short-circuits before the email check and insert.
	regRepo.AssertNotCalled(t, "GetByEmail", mock.Anything)
	regRepo.AssertNotCalled(t, "Create", mock.Anything)
	commRepo.AssertExpectations(t)
}

func TestRegistrationService_Create_EmailTakenPreCheck(t *testing.T) {
	regRepo := new(MockRegistrationRepository)
	commRepo := new(MockCommissionRepository)
	service := services.NewRegistrationService(regRepo, commRepo, nil)

	commRepo.On("GetByID", int64(1)).Return(&models.Commission{ID: 1, Name: "Biología Animal"}, nil).Once()
	regRepo.On("GetByEmail", "jane@x.com").Return(&models.Registration{ID: 7, Email: "jane@x.com"}, nil).Once()

	created, err := service.Create(submissionPayload())

	assert.Nil(t, created)
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	regRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegistrationService_Create_DuplicateRaceReclassified(t *testing.T) {
	regRepo := new(MockRegistrationRepository)
	commRepo := new(MockCommissionRepository)
	service := services.NewRegistrationService(regRepo, commRepo, nil)

	commRepo.On("GetByID", int64(1)).Return(&models.Commission{ID: 1, Name: "Biología Animal"}, nil).Once()
	// The pre-check sees nothing, but a concurrent insert wins the race and
	// the constraint fires on our insert.
	regRepo.On("GetByEmail", "jane@x.com").Return(nil, nil).Once()
	regRepo.On("Create", mock.AnythingOfType("*models.Registration")).Return(models.ErrDuplicateEmail).Once()

	created, err := service.Create(submissionPayload())

	assert.Nil(t, created)
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	regRepo.AssertExpectations(t)
}

func TestRegistrationService_Create_StoreFailure(t *testing.T) {
	regRepo := new(MockRegistrationRepository)
	commRepo := new(MockCommissionRepository)
	service := services.NewRegistrationService(regRepo, commRepo, nil)

	commRepo.On("GetByID", int64(1)).Return(nil, fmt.Errorf("connection refused")).Once()

	created, err := service.Create(submissionPayload())

	assert.Nil(t, created)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrCommissionNotFound)
	assert.NotErrorIs(t, err, services.ErrEmailTaken)
}

func TestRegistrationService_List(t *testing.T) {
	regRepo := new(MockRegistrationRepository)
	commRepo := new(MockCommissionRepository)
	service := services.NewRegistrationService(regRepo, commRepo, nil)

	name := "Biología Vegetal"
	expected := []models.RegistrationWithCommission{
		{ID: 2, FullName: "B", CommissionName: &name},
		{ID: 1, FullName: "A", CommissionName: nil},
	}
	regRepo.On("GetAllWithCommission").Return(expected, nil).Once()

	rows, err := service.List()

	assert.NoError(t, err)
	assert.Equal(t, expected, rows)
	regRepo.AssertExpectations(t)

	// Store failure propagates.
	regRepo.On("GetAllWithCommission").Return(nil, fmt.Errorf("database error")).Once()
	_, err = service.List()
	assert.Error(t, err)
	regRepo.AssertExpectations(t)
}
