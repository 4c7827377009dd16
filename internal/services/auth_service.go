package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"congreso/internal/models"
	"congreso/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUsernameTaken indicates the requested username already has an account.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrOrganizerEmailUsed indicates the email already has an organizer account.
	ErrOrganizerEmailUsed = errors.New("email already used by another organizer")
	// ErrInvalidCredentials covers unknown usernames and wrong passwords alike,
	// so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// OrganizerClaims is the token payload issued for an organizer session.
type OrganizerClaims struct {
	OrganizerID string
	Username    string
	Role        string
}

// AuthService handles business logic for organizer authentication.
type AuthService struct {
	organizerRepo repositories.OrganizerRepository
	jwtSecret     []byte
	tokenDurat    time.Duration
}

// NewAuthService creates a new AuthService. Tokens are valid for 24 hours,
// long enough to cover a congress working day.
func NewAuthService(organizerRepo repositories.OrganizerRepository, jwtSecret string) *AuthService {
	return &AuthService{
		organizerRepo: organizerRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenDurat:    24 * time.Hour,
	}
}

// RegisterOrganizer creates a new organizer account with a hashed password.
// Accounts without an explicit role default to staff; admin accounts are
// expected to be promoted deliberately.
func (s *AuthService) RegisterOrganizer(org *models.Organizer) error {
	org.Username = strings.TrimSpace(org.Username)
	org.Email = strings.ToLower(strings.TrimSpace(org.Email))
	if org.Role == "" {
		org.Role = models.RoleStaff
	}

	if existing, err := s.organizerRepo.GetByUsername(org.Username); err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	} else if existing != nil {
		return ErrUsernameTaken
	}
	if existing, err := s.organizerRepo.GetByEmail(org.Email); err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	} else if existing != nil {
		return ErrOrganizerEmailUsed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(org.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	org.Password = string(hashed)

	if err := s.organizerRepo.Create(org); err != nil {
		return fmt.Errorf("failed to create organizer: %w", err)
	}
	return nil
}

// Login authenticates an organizer and returns a signed token alongside the
// account, so handlers can report the role without a second lookup.
func (s *AuthService) Login(username, password string) (string, *models.Organizer, error) {
	org, err := s.organizerRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up organizer: %w", err)
	}
	if org == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(org.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"organizer_id": org.ID,
		"username":     org.Username,
		"role":         org.Role,
		"exp":          now.Add(s.tokenDurat).Unix(),
		"iat":          now.Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, org, nil
}

// ValidateToken parses and validates a session token, returning the organizer
// claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (*OrganizerClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims := &OrganizerClaims{}
	if id, ok := mapClaims["organizer_id"].(string); ok {
		claims.OrganizerID = id
	}
	if username, ok := mapClaims["username"].(string); ok {
		claims.Username = username
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}
	if claims.OrganizerID == "" || claims.Role == "" {
		// A structurally valid token without organizer claims was not issued
		// by this service.
		return nil, errors.New("token is missing organizer claims")
	}
	return claims, nil
}
