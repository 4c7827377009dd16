package services_test

import (
	"fmt"
	"testing"
	"time"

	"congreso/internal/models"
	"congreso/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockOrganizerStore is a mock implementation of repositories.OrganizerRepository.
type MockOrganizerStore struct {
	mock.Mock
}

func (m *MockOrganizerStore) Create(org *models.Organizer) error {
	args := m.Called(org)
	return args.Error(0)
}

func (m *MockOrganizerStore) GetByUsername(username string) (*models.Organizer, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organizer), args.Error(1)
}

func (m *MockOrganizerStore) GetByEmail(email string) (*models.Organizer, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organizer), args.Error(1)
}

func (m *MockOrganizerStore) GetByID(id string) (*models.Organizer, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organizer), args.Error(1)
}

const testJWTSecret = "test_jwt_secret"

func TestAuthService_RegisterOrganizer(t *testing.T) {
	mockRepo := new(MockOrganizerStore)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	org := &models.Organizer{
		FullName: "Ana Gómez",
		Username: "agomez",
		Email:    "Ana.Gomez@Congreso.edu",
		Password: "secreto123",
	}

	mockRepo.On("GetByUsername", "agomez").Return(nil, nil).Once()
	mockRepo.On("GetByEmail", "ana.gomez@congreso.edu").Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Organizer")).Return(nil).Once()

	err := authService.RegisterOrganizer(org)

	assert.NoError(t, err)
	// Email is normalized, the role defaults to staff, and only the bcrypt
	// hash goes to the store.
	assert.Equal(t, "ana.gomez@congreso.edu", org.Email)
	assert.Equal(t, models.RoleStaff, org.Role)
	assert.NotEqual(t, "secreto123", org.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(org.Password), []byte("secreto123")))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterOrganizer_KeepsExplicitAdminRole(t *testing.T) {
	mockRepo := new(MockOrganizerStore)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	org := &models.Organizer{
		FullName: "Marta Ruiz",
		Username: "mruiz",
		Email:    "mruiz@congreso.edu",
		Password: "secreto123",
		Role:     models.RoleAdmin,
	}

	mockRepo.On("GetByUsername", "mruiz").Return(nil, nil).Once()
	mockRepo.On("GetByEmail", "mruiz@congreso.edu").Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Organizer")).Return(nil).Once()

	assert.NoError(t, authService.RegisterOrganizer(org))
	assert.Equal(t, models.RoleAdmin, org.Role)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterOrganizer_Conflicts(t *testing.T) {
	mockRepo := new(MockOrganizerStore)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	taken := &models.Organizer{ID: "existing", Username: "agomez"}

	mockRepo.On("GetByUsername", "agomez").Return(taken, nil).Once()
	err := authService.RegisterOrganizer(&models.Organizer{
		Username: "agomez", Email: "other@congreso.edu", Password: "secreto123",
	})
	assert.ErrorIs(t, err, services.ErrUsernameTaken)

	mockRepo.On("GetByUsername", "nueva").Return(nil, nil).Once()
	mockRepo.On("GetByEmail", "agomez@congreso.edu").Return(taken, nil).Once()
	err = authService.RegisterOrganizer(&models.Organizer{
		Username: "nueva", Email: "agomez@congreso.edu", Password: "secreto123",
	})
	assert.ErrorIs(t, err, services.ErrOrganizerEmailUsed)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_IssuesRoleBearingToken(t *testing.T) {
	mockRepo := new(MockOrganizerStore)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.DefaultCost)
	org := &models.Organizer{
		ID:       "org-123",
		Username: "agomez",
		Email:    "agomez@congreso.edu",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	mockRepo.On("GetByUsername", "agomez").Return(org, nil).Once()

	token, loggedIn, err := authService.Login("agomez", "secreto123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	if assert.NotNil(t, loggedIn) {
		assert.Equal(t, models.RoleAdmin, loggedIn.Role)
	}

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "org-123", claims["organizer_id"])
	assert.Equal(t, "agomez", claims["username"])
	assert.Equal(t, models.RoleAdmin, claims["role"])
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	mockRepo := new(MockOrganizerStore)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.DefaultCost)
	org := &models.Organizer{ID: "org-123", Username: "agomez", Password: string(hashed)}

	// Wrong password.
	mockRepo.On("GetByUsername", "agomez").Return(org, nil).Once()
	_, _, err := authService.Login("agomez", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown username gets the same error, so accounts cannot be probed.
	mockRepo.On("GetByUsername", "nobody").Return(nil, nil).Once()
	_, _, err = authService.Login("nobody", "secreto123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockOrganizerStore)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	signClaims := func(claims jwt.MapClaims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, _ := token.SignedString([]byte(testJWTSecret))
		return signed
	}

	valid := signClaims(jwt.MapClaims{
		"organizer_id": "org-123",
		"username":     "agomez",
		"role":         models.RoleStaff,
		"exp":          time.Now().Add(time.Hour).Unix(),
	})
	claims, err := authService.ValidateToken(valid)
	assert.NoError(t, err)
	if assert.NotNil(t, claims) {
		assert.Equal(t, "org-123", claims.OrganizerID)
		assert.Equal(t, "agomez", claims.Username)
		assert.Equal(t, models.RoleStaff, claims.Role)
	}

	// A well-signed token without organizer claims is rejected.
	foreign := signClaims(jwt.MapClaims{
		"user_id": "someone",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	_, err = authService.ValidateToken(foreign)
	assert.Error(t, err)

	// Expired token.
	expired := signClaims(jwt.MapClaims{
		"organizer_id": "org-123",
		"username":     "agomez",
		"role":         models.RoleStaff,
		"exp":          time.Now().Add(-time.Hour).Unix(),
	})
	_, err = authService.ValidateToken(expired)
	assert.Error(t, err)

	// Garbage.
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
}
