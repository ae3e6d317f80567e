package server

import (
	"happyhour/internal/models"

	"github.com/gofiber/fiber/v2"
)

type categoryRequest struct {
	CatType string `json:"cat_type"`
}

// GetCategories lists all categories.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.categoryService.List(c.UserContext())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(categories)
}

// GetCategory returns a category and the spaces filed under it.
func (s *Server) GetCategory(c *fiber.Ctx) error {
	catType := c.Params("catType")

	detail, err := s.categoryService.Get(c.UserContext(), catType)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

// CreateCategory adds a new category.
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.Create(c.UserContext(), req.CatType)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory renames an existing category.
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	catType := c.Params("catType")

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.Rename(c.UserContext(), catType, req.CatType)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(category)
}

// DeleteCategory removes a category with no associated spaces.
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	catType := c.Params("catType")

	if err := s.categoryService.Delete(c.UserContext(), catType); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Category deleted",
	})
}
