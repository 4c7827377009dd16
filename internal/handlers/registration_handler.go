package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"congreso/internal/models"
	"congreso/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RegistrationHandler handles HTTP requests for attendee registrations.
type RegistrationHandler struct {
	service *services.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(service *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		service: service,
	}
}

// RegisterRoutes registers the registration routes with the Fiber app.
// Routes are bound for all methods so the handlers can answer non-matching
// methods with a JSON 405 envelope instead of Fiber's default.
func (h *RegistrationHandler) RegisterRoutes(router fiber.Router) {
	router.All("/register", h.HandleRegister)
	router.All("/registrations", h.HandleList)
}

// HandleRegister accepts a registration submission. The pipeline is strictly
// linear: method guard, body decode, validation, commission check, email
// check, insert — each stage returns early on failure.
func (h *RegistrationHandler) HandleRegister(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		c.Set("Allow", fiber.MethodPost)
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
			"success": false,
			"message": fmt.Sprintf("Method %s not allowed", c.Method()),
		})
	}

	payload, err := decodeSubmission(c.Body())
	if err != nil {
		log.Printf("Error parsing registration request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Malformed request body.",
		})
	}

	created, err := h.service.Create(payload)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Validation errors",
				"errors":  validationErr.Errors,
			})
		case errors.Is(err, services.ErrCommissionNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "The selected commission does not exist.",
			})
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "This email is already registered. Please use another email.",
			})
		default:
			log.Printf("Error creating registration: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Internal server error. Please try again.",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registration created successfully.",
		"data": fiber.Map{
			"id":         created.ID,
			"full_name":  created.FullName,
			"email":      created.Email,
			"created_at": created.CreatedAt,
		},
	})
}

// HandleList returns every registration joined with its commission name,
// newest first. No pagination or filtering; the full collection is re-read
// from the store on every call.
func (h *RegistrationHandler) HandleList(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodGet {
		c.Set("Allow", fiber.MethodGet)
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
			"success": false,
			"message": fmt.Sprintf("Method %s not allowed", c.Method()),
		})
	}

	rows, err := h.service.List()
	if err != nil {
		log.Printf("Error listing registrations: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not retrieve registrations",
		})
	}
	if rows == nil {
		rows = []models.RegistrationWithCommission{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    rows,
	})
}

// decodeSubmission parses a request body into a loose key-value payload.
// Some clients double-encode the submission (a JSON string containing a JSON
// object); a string body is therefore decoded a second time. A body that is
// valid JSON but not an object yields an empty payload — the missing fields
// then fail validation rather than being treated as a decode error.
func decodeSubmission(body []byte) (map[string]interface{}, error) {
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if s, ok := decoded.(string); ok {
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return nil, fmt.Errorf("invalid JSON in string body: %w", err)
		}
	}

	payload, ok := decoded.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}, nil
	}
	return payload, nil
}
