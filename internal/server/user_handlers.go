package server

import (
	"happyhour/internal/models"
	"happyhour/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createUserRequest struct {
	registerRequest
	IsAdmin bool `json:"is_admin"`
}

type updateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

// CreateUser handles admin-initiated user creation.
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.CreateUser(c.UserContext(), service.CreateUserInput{
		RegisterInput: service.RegisterInput{
			Username:  req.Username,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
		},
		IsAdmin: req.IsAdmin,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUsers lists users with pagination query params.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	users, err := s.userService.List(c.UserContext(), limit, offset)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(users)
}

// GetUser returns a single user's profile.
func (s *Server) GetUser(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := s.userService.Get(c.UserContext(), principalFromCtx(c), username)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// UpdateUser applies a partial profile update.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	username := c.Params("username")

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Update(c.UserContext(), principalFromCtx(c), username, service.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// DeleteUser removes an account.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	username := c.Params("username")

	if err := s.userService.Delete(c.UserContext(), principalFromCtx(c), username); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User deleted",
	})
}

// LikeSpace records that a user likes a space.
func (s *Server) LikeSpace(c *fiber.Ctx) error {
	username := c.Params("username")
	title := c.Params("title")

	space, err := s.engagementService.Like(c.UserContext(), principalFromCtx(c), username, title)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(space)
}

// UnlikeSpace removes a like. Removing an absent like is not an error.
func (s *Server) UnlikeSpace(c *fiber.Ctx) error {
	username := c.Params("username")
	title := c.Params("title")

	if err := s.engagementService.Unlike(c.UserContext(), principalFromCtx(c), username, title); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Like removed",
	})
}

// GetUserLikes lists the spaces a user has liked.
func (s *Server) GetUserLikes(c *fiber.Ctx) error {
	username := c.Params("username")

	spaces, err := s.engagementService.ListLikedSpaces(c.UserContext(), principalFromCtx(c), username)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(spaces)
}

// VisitSpace records that a user visited a space.
func (s *Server) VisitSpace(c *fiber.Ctx) error {
	username := c.Params("username")
	title := c.Params("title")

	visit, err := s.engagementService.MarkVisited(c.UserContext(), principalFromCtx(c), username, title)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(visit)
}

// GetUserVisits lists a user's visit history.
func (s *Server) GetUserVisits(c *fiber.Ctx) error {
	username := c.Params("username")

	visits, err := s.engagementService.ListVisits(c.UserContext(), principalFromCtx(c), username)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(visits)
}
