package server

import (
	"happyhour/internal/models"
	"happyhour/internal/service"

	"github.com/gofiber/fiber/v2"
)

type locationRequest struct {
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
}

// GetLocations lists all locations.
func (s *Server) GetLocations(c *fiber.Ctx) error {
	locations, err := s.locationService.List(c.UserContext())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(locations)
}

// GetLocation returns a single location by ID.
func (s *Server) GetLocation(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		if err == errResponseWritten {
			return nil
		}
		return err
	}

	location, err := s.locationService.Get(c.UserContext(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(location)
}

// GetLocationsByCity lists locations within a city.
func (s *Server) GetLocationsByCity(c *fiber.Ctx) error {
	city := c.Params("city")

	locations, err := s.locationService.ListByCity(c.UserContext(), city)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(locations)
}

// GetLocationsByNeighborhood lists locations matching a neighborhood name.
func (s *Server) GetLocationsByNeighborhood(c *fiber.Ctx) error {
	neighborhood := c.Params("neighborhood")

	locations, err := s.locationService.ListByNeighborhood(c.UserContext(), neighborhood)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(locations)
}

// CreateLocation adds a new city/neighborhood pair.
func (s *Server) CreateLocation(c *fiber.Ctx) error {
	var req locationRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	location, err := s.locationService.Create(c.UserContext(), service.LocationInput{
		City:         req.City,
		Neighborhood: req.Neighborhood,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(location)
}

// UpdateLocation applies a partial update to a location.
func (s *Server) UpdateLocation(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		if err == errResponseWritten {
			return nil
		}
		return err
	}

	var req locationRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	location, err := s.locationService.Update(c.UserContext(), id, service.LocationInput{
		City:         req.City,
		Neighborhood: req.Neighborhood,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(location)
}

// DeleteLocation removes a location, addressed by neighborhood name.
func (s *Server) DeleteLocation(c *fiber.Ctx) error {
	neighborhood := c.Params("neighborhood")

	if err := s.locationService.Delete(c.UserContext(), neighborhood); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Location deleted",
	})
}
