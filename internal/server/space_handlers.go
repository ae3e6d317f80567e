package server

import (
	"happyhour/internal/models"
	"happyhour/internal/repository"
	"happyhour/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createSpaceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Address     string `json:"address"`
	EstYear     int    `json:"est_year"`
	CategoryID  uint   `json:"category_id"`
	LocationID  uint   `json:"location_id"`
}

type updateSpaceRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Address     *string `json:"address"`
	EstYear     *int    `json:"est_year"`
	CategoryID  *uint   `json:"category_id"`
	LocationID  *uint   `json:"location_id"`
}

// GetSpaces lists spaces, filtered and sorted by query params. Each result
// carries its average rating; unrated spaces always sort last.
func (s *Server) GetSpaces(c *fiber.Ctx) error {
	filters := repository.SpaceFilters{
		Title:        c.Query("title"),
		Category:     c.Query("category"),
		City:         c.Query("city"),
		Neighborhood: c.Query("neighborhood"),
		SortBy:       c.Query("sortBy"),
	}

	spaces, err := s.spaceService.List(c.UserContext(), filters)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(spaces)
}

// GetSpace returns a single space with its category and location.
func (s *Server) GetSpace(c *fiber.Ctx) error {
	title := c.Params("title")

	space, err := s.spaceService.Get(c.UserContext(), title)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(space)
}

// CreateSpace adds a new space.
func (s *Server) CreateSpace(c *fiber.Ctx) error {
	var req createSpaceRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	space, err := s.spaceService.Create(c.UserContext(), service.CreateSpaceInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Address:     req.Address,
		EstYear:     req.EstYear,
		CategoryID:  req.CategoryID,
		LocationID:  req.LocationID,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(space)
}

// UpdateSpace applies a partial update to a space.
func (s *Server) UpdateSpace(c *fiber.Ctx) error {
	title := c.Params("title")

	var req updateSpaceRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	space, err := s.spaceService.Update(c.UserContext(), title, service.UpdateSpaceInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Address:     req.Address,
		EstYear:     req.EstYear,
		CategoryID:  req.CategoryID,
		LocationID:  req.LocationID,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(space)
}

// DeleteSpace removes a space.
func (s *Server) DeleteSpace(c *fiber.Ctx) error {
	title := c.Params("title")

	if err := s.spaceService.Delete(c.UserContext(), title); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Space deleted",
	})
}
