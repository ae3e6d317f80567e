package service

import (
	"context"
	"fmt"
	"time"

	"happyhour/internal/models"
	"happyhour/internal/observability"
	"happyhour/internal/repository"
)

// CommentService handles comments. Existence is always resolved before
// ownership so a missing comment reports NotFound regardless of who asks.
// Updates are owner-only; deletes allow the admin override.
type CommentService struct {
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	spaceRepo   repository.SpaceRepository
}

// CreateCommentInput carries a new-comment payload. Username is the route's
// author parameter, checked against the principal.
type CreateCommentInput struct {
	Principal  models.Principal
	Username   string
	SpaceTitle string
	Content    string
}

// NewCommentService returns a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	spaceRepo repository.SpaceRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		userRepo:    userRepo,
		spaceRepo:   spaceRepo,
	}
}

// Create adds a comment on a space. The comment date is server-assigned.
// Comments can only be posted under the caller's own username; admins get
// no exception here.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Username != in.Principal.Username {
		return nil, models.NewUnauthorizedError("Unauthorized, must be the current logged-in user")
	}

	user, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError(fmt.Sprintf("No such user: %s", in.Username))
	}

	space, err := s.spaceRepo.GetByTitle(ctx, in.SpaceTitle)
	if err != nil {
		return nil, err
	}
	if space == nil {
		return nil, models.NewNotFoundError(fmt.Sprintf("No such space: %s", in.SpaceTitle))
	}

	if in.Content == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	comment := &models.Comment{
		Content:     in.Content,
		CommentDate: time.Now(),
		UserID:      user.ID,
		SpaceID:     space.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// Get returns a single comment.
func (s *CommentService) Get(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// ListBySpace returns a space's comments, newest first.
func (s *CommentService) ListBySpace(ctx context.Context, spaceTitle string) ([]models.Comment, error) {
	space, err := s.spaceRepo.GetByTitle(ctx, spaceTitle)
	if err != nil {
		return nil, err
	}
	if space == nil {
		return nil, models.NewNotFoundError(fmt.Sprintf("No such space: %s", spaceTitle))
	}
	return s.commentRepo.ListBySpace(ctx, space.ID)
}

// ListByUser returns a user's comments grouped by space title.
func (s *CommentService) ListByUser(ctx context.Context, username string) ([]models.Comment, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError(fmt.Sprintf("No such user: %s", username))
	}
	return s.commentRepo.ListByUser(ctx, user.ID)
}

// Update edits a comment's text. Owner only: there is no admin override for
// comment edits, only for deletion.
func (s *CommentService) Update(ctx context.Context, principal models.Principal, id uint, content string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if comment.UserID != principal.UserID {
		observability.OwnershipRejections.WithLabelValues("comment").Inc()
		return nil, models.NewUnauthorizedError("Unauthorized to update this comment.")
	}
	if content == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// Delete removes a comment. Permitted for the owner or an admin.
func (s *CommentService) Delete(ctx context.Context, principal models.Principal, id uint) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if comment.UserID != principal.UserID && !principal.IsAdmin {
		observability.OwnershipRejections.WithLabelValues("comment").Inc()
		return models.NewUnauthorizedError("Unauthorized to delete this comment.")
	}

	return s.commentRepo.Delete(ctx, id)
}
