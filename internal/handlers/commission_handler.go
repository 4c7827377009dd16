package handlers

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"congreso/internal/models"
	"congreso/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CommissionHandler handles HTTP requests for commission reference data.
// Reading is public (the registration form needs the list); mutation is
// restricted to authenticated organizers.
type CommissionHandler struct {
	service  *services.CommissionService
	validate *validator.Validate
}

// NewCommissionHandler creates a new CommissionHandler.
func NewCommissionHandler(service *services.CommissionService) *CommissionHandler {
	return &CommissionHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the commission routes with the Fiber app. The
// mutating routes need an organizer session with the admin role; staff
// accounts only read.
func (h *CommissionHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	commissionRoutes := router.Group("/commissions")
	commissionRoutes.Get("/", h.HandleGetCommissions)
	commissionRoutes.Post("/", authRequired, adminRequired, h.HandleCreateCommission)
	commissionRoutes.Put("/:id", authRequired, adminRequired, h.HandleUpdateCommission)
	commissionRoutes.Delete("/:id", authRequired, adminRequired, h.HandleDeleteCommission)
}

// HandleGetCommissions retrieves all commissions.
func (h *CommissionHandler) HandleGetCommissions(c *fiber.Ctx) error {
	commissions, err := h.service.GetAllCommissions()
	if err != nil {
		log.Printf("Error getting all commissions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not retrieve commissions",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    commissions,
	})
}

// HandleCreateCommission creates a new commission.
func (h *CommissionHandler) HandleCreateCommission(c *fiber.Ctx) error {
	var commission models.Commission
	if err := c.BodyParser(&commission); err != nil {
		log.Printf("Error parsing commission request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(commission); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	if err := h.service.CreateCommission(&commission); err != nil {
		log.Printf("Error creating commission: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not create commission",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Commission created successfully",
		"data":    commission,
	})
}

// HandleUpdateCommission updates an existing commission's name.
func (h *CommissionHandler) HandleUpdateCommission(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Commission ID must be an integer",
		})
	}

	var commission models.Commission
	if err := c.BodyParser(&commission); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}
	commission.ID = id

	if err := h.validate.Struct(commission); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	if err := h.service.UpdateCommission(&commission); err != nil {
		log.Printf("Error updating commission %d: %v", id, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": fmt.Sprintf("Commission with ID %d not found", id),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not update commission",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Commission updated successfully",
		"data":    commission,
	})
}

// HandleDeleteCommission deletes a commission. Registrations that reference
// it are kept; the listing shows them without a commission name.
func (h *CommissionHandler) HandleDeleteCommission(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Commission ID must be an integer",
		})
	}

	if err := h.service.DeleteCommission(id); err != nil {
		log.Printf("Error deleting commission %d: %v", id, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": fmt.Sprintf("Commission with ID %d not found", id),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not delete commission",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Commission %d deleted successfully", id),
	})
}
