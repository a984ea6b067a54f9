package server

import (
	"vitrin/internal/models"
	"vitrin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetGallery handles GET /api/gallery. Public.
func (s *Server) GetGallery(c *fiber.Ctx) error {
	items, err := s.galleryRepo.List(c.Context())
	if err != nil {
		return respondForError(c, err)
	}
	return c.JSON(items)
}

// CreateGalleryItem handles POST /api/gallery. Admin only.
func (s *Server) CreateGalleryItem(c *fiber.Ctx) error {
	var req struct {
		Image string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.MissingFields([]string{"image"}, []string{req.Image}); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateImageURL(req.Image); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	item := &models.GalleryItem{Image: req.Image}
	if err := s.galleryRepo.Create(c.Context(), item); err != nil {
		return respondForError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// DeleteGalleryItem handles DELETE /api/gallery/:id. Admin only.
func (s *Server) DeleteGalleryItem(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	deleted, err := s.galleryRepo.Delete(c.Context(), id)
	if err != nil {
		return respondForError(c, err)
	}
	return c.JSON(fiber.Map{"success": deleted})
}
