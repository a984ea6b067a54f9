package server

import (
	"vitrin/internal/models"
	"vitrin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateContactSubmission handles POST /api/contact. Public: the contact form
// is filled in by anonymous visitors.
func (s *Server) CreateContactSubmission(c *fiber.Ctx) error {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.MissingFields(
		[]string{"name", "email", "message"},
		[]string{req.Name, req.Email, req.Message},
	); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	submission := &models.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.contactRepo.Create(c.Context(), submission); err != nil {
		return respondForError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(submission)
}

// GetContactSubmissions handles GET /api/contact. Admin only.
func (s *Server) GetContactSubmissions(c *fiber.Ctx) error {
	submissions, err := s.contactRepo.List(c.Context())
	if err != nil {
		return respondForError(c, err)
	}
	return c.JSON(submissions)
}
