package server

import (
	"happyhour/internal/models"
	"happyhour/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ratingRequest struct {
	Rating int `json:"rating"`
}

// CreateRating records a user's rating of a space. One rating per user per
// space.
func (s *Server) CreateRating(c *fiber.Ctx) error {
	username := c.Params("username")
	title := c.Params("title")

	var req ratingRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	rating, err := s.ratingService.Create(c.UserContext(), service.CreateRatingInput{
		Principal:  principalFromCtx(c),
		Username:   username,
		SpaceTitle: title,
		Rating:     req.Rating,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(rating)
}

// GetRating returns a single rating by ID.
func (s *Server) GetRating(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		if err == errResponseWritten {
			return nil
		}
		return err
	}

	rating, err := s.ratingService.Get(c.UserContext(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(rating)
}

// GetUserSpaceRating returns the rating a user gave a specific space.
func (s *Server) GetUserSpaceRating(c *fiber.Ctx) error {
	username := c.Params("username")
	title := c.Params("title")

	rating, err := s.ratingService.GetForUserAndSpace(c.UserContext(), username, title)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(rating)
}

// GetAverageRating returns a space's average rating formatted to two
// decimals, or the "Not yet rated" sentinel.
func (s *Server) GetAverageRating(c *fiber.Ctx) error {
	title := c.Params("title")

	average, err := s.ratingService.Average(c.UserContext(), title)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"space":      title,
		"avg_rating": average,
	})
}

// UpdateRating changes a rating's value. Only the rating's owner may update.
func (s *Server) UpdateRating(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		if err == errResponseWritten {
			return nil
		}
		return err
	}

	var req ratingRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	rating, err := s.ratingService.Update(c.UserContext(), principalFromCtx(c), id, req.Rating)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(rating)
}

// DeleteRating removes a rating. The owner or an admin may delete.
func (s *Server) DeleteRating(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		if err == errResponseWritten {
			return nil
		}
		return err
	}

	if err := s.ratingService.Delete(c.UserContext(), principalFromCtx(c), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Rating deleted",
	})
}
