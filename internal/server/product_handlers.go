package server

import (
	"vitrin/internal/models"
	"vitrin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetProducts handles GET /api/products. Public; no ordering or pagination
// contract — callers get whatever the datastore yields.
func (s *Server) GetProducts(c *fiber.Ctx) error {
	products, err := s.productRepo.List(c.Context())
	if err != nil {
		return respondForError(c, err)
	}
	return c.JSON(products)
}

// GetProduct handles GET /api/products/:id. Public.
func (s *Server) GetProduct(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	product, err := s.productRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondForError(c, err)
	}
	return c.JSON(product)
}

// CreateProduct handles POST /api/products. Admin only.
func (s *Server) CreateProduct(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Image       string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.MissingFields(
		[]string{"name", "category", "description", "image"},
		[]string{req.Name, req.Category, req.Description, req.Image},
	); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateImageURL(req.Image); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	product := &models.Product{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Image:       req.Image,
	}
	if err := s.productRepo.Create(c.Context(), product); err != nil {
		return respondForError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct handles PATCH /api/products/:id. Admin only; merges only the
// fields present in the payload.
func (s *Server) UpdateProduct(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Name        *string `json:"name"`
		Category    *string `json:"category"`
		Description *string `json:"description"`
		Image       *string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Image != nil {
		if err := validation.ValidateImageURL(*req.Image); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		updates["image"] = *req.Image
	}

	product, err := s.productRepo.Update(c.Context(), id, updates)
	if err != nil {
		return respondForError(c, err)
	}
	return c.JSON(product)
}

// DeleteProduct handles DELETE /api/products/:id. Admin only. Deleting an
// absent row reports success:false rather than 404; the same convention
// applies to gallery items.
func (s *Server) DeleteProduct(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	deleted, err := s.productRepo.Delete(c.Context(), id)
	if err != nil {
		return respondForError(c, err)
	}
	return c.JSON(fiber.Map{"success": deleted})
}
