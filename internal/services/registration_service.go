package services

import (
	"errors"
	"fmt"
	"log"

	"congreso/internal/models"
	"congreso/internal/repositories"
	"congreso/internal/validation"
	"congreso/pkg/rabbitmq"
)

// Sentinel outcomes the handler maps to specific HTTP responses.
var (
	// ErrCommissionNotFound means the submitted commission_id references no
	// existing commission.
	ErrCommissionNotFound = errors.New("selected commission does not exist")
	// ErrEmailTaken means the submitted email is already registered, whether
	// caught by the advisory pre-check or by the database constraint.
	ErrEmailTaken = errors.New("email already registered")
)

// ValidationError carries the ordered list of rule violations for an invalid
// submission.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d error(s)", len(e.Errors))
}

// RegistrationService handles business logic for attendee registrations.
type RegistrationService struct {
	registrationRepo repositories.RegistrationRepository
	commissionRepo   repositories.CommissionRepository
	mqClient         *rabbitmq.Client
}

// NewRegistrationService creates a new RegistrationService. The RabbitMQ
// client may be nil; event publication is then skipped.
func NewRegistrationService(registrationRepo repositories.RegistrationRepository, commissionRepo repositories.CommissionRepository, mqClient *rabbitmq.Client) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		commissionRepo:   commissionRepo,
		mqClient:         mqClient,
	}
}

// Create runs the registration pipeline on a raw submission payload:
// validate, check the commission exists, check the email is free, insert.
// Each stage returns early on failure; later stages never run once an
// earlier one fails.
//
// The email pre-check is advisory only — two concurrent submissions with the
// same email can both pass it. The database's unique constraint is the
// authoritative guarantee; when it fires, the repository's
// models.ErrDuplicateEmail is reclassified to ErrEmailTaken so the caller
// sees the same conflict outcome either way.
func (s *RegistrationService) Create(payload map[string]interface{}) (*models.Registration, error) {
	if result := validation.Validate(payload); !result.Valid {
		return nil, &ValidationError{Errors: result.Errors}
	}

	reg := validation.Draft(payload)

	commission, err := s.commissionRepo.GetByID(reg.CommissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check commission %d: %w", reg.CommissionID, err)
	}
	if commission == nil {
		return nil, ErrCommissionNotFound
	}

	existing, err := s.registrationRepo.GetByEmail(reg.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email %s: %w", reg.Email, err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	if err := s.registrationRepo.Create(&reg); err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	s.publishCreated(&reg)

	return &reg, nil
}

// List retrieves every registration joined with its commission name, newest
// first.
func (s *RegistrationService) List() ([]models.RegistrationWithCommission, error) {
	return s.registrationRepo.GetAllWithCommission()
}

// publishCreated emits a registration.created event for downstream consumers
// (confirmation mail, organizer notifications). Publication is best-effort:
// a broker failure is logged and never fails the registration.
func (s *RegistrationService) publishCreated(reg *models.Registration) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}

	event := map[string]interface{}{
		"registrationID": reg.ID,
		"email":          reg.Email,
		"commissionID":   reg.CommissionID,
		"createdAt":      reg.CreatedAt,
	}
	if err := s.mqClient.PublishRegistrationCreated(event); err != nil {
		log.Printf("Warning: Failed to publish registration created event for registration %d: %v", reg.ID, err)
	} else {
		log.Printf("Successfully published registration created event for registration %d", reg.ID)
	}
}
