package server

import (
	"happyhour/internal/models"
	"happyhour/internal/service"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Content string `json:"content"`
}

// CreateComment posts a comment on a space on behalf of a user.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	username := c.Params("username")
	title := c.Params("title")

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Create(c.UserContext(), service.CreateCommentInput{
		Principal:  principalFromCtx(c),
		Username:   username,
		SpaceTitle: title,
		Content:    req.Content,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComment returns a single comment by ID.
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		if err == errResponseWritten {
			return nil
		}
		return err
	}

	comment, err := s.commentService.Get(c.UserContext(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(comment)
}

// GetSpaceComments lists a space's comments, newest first.
func (s *Server) GetSpaceComments(c *fiber.Ctx) error {
	title := c.Params("title")

	comments, err := s.commentService.ListBySpace(c.UserContext(), title)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(comments)
}

// GetUserComments lists all comments written by a user.
func (s *Server) GetUserComments(c *fiber.Ctx) error {
	username := c.Params("username")

	comments, err := s.commentService.ListByUser(c.UserContext(), username)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(comments)
}

// UpdateComment edits a comment's text. Only the author may edit.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		if err == errResponseWritten {
			return nil
		}
		return err
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Update(c.UserContext(), principalFromCtx(c), id, req.Content)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(comment)
}

// DeleteComment removes a comment. The author or an admin may delete.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		if err == errResponseWritten {
			return nil
		}
		return err
	}

	if err := s.commentService.Delete(c.UserContext(), principalFromCtx(c), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Comment deleted",
	})
}
