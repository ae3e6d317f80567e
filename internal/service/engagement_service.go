package service

import (
	"context"
	"fmt"
	"time"

	"happyhour/internal/models"
	"happyhour/internal/observability"
	"happyhour/internal/repository"
)

// EngagementService handles likes and visit markings. These actions have no
// independent resource row to check ownership against, so the route's
// username is checked against the principal before any database lookup.
type EngagementService struct {
	engagementRepo repository.EngagementRepository
	userRepo       repository.UserRepository
	spaceRepo      repository.SpaceRepository
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(
	engagementRepo repository.EngagementRepository,
	userRepo repository.UserRepository,
	spaceRepo repository.SpaceRepository,
) *EngagementService {
	return &EngagementService{
		engagementRepo: engagementRepo,
		userRepo:       userRepo,
		spaceRepo:      spaceRepo,
	}
}

func (s *EngagementService) resolvePair(ctx context.Context, username, spaceTitle string) (*models.User, *models.Space, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, models.NewNotFoundError(fmt.Sprintf("No such user: %s", username))
	}

	space, err := s.spaceRepo.GetByTitle(ctx, spaceTitle)
	if err != nil {
		return nil, nil, err
	}
	if space == nil {
		return nil, nil, models.NewNotFoundError(fmt.Sprintf("No such space: %s", spaceTitle))
	}
	return user, space, nil
}

// Like records a like. Strictly same-user: not even admins may like on
// another user's behalf.
func (s *EngagementService) Like(ctx context.Context, principal models.Principal, username, spaceTitle string) (*models.Space, error) {
	if username != principal.Username {
		observability.OwnershipRejections.WithLabelValues("like").Inc()
		return nil, models.NewUnauthorizedError("Cannot 'like' a space for another user")
	}

	user, space, err := s.resolvePair(ctx, username, spaceTitle)
	if err != nil {
		return nil, err
	}

	exists, err := s.engagementRepo.LikeExists(ctx, user.ID, space.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		observability.DuplicateRejections.WithLabelValues("like").Inc()
		return nil, models.NewValidationError("Cannot like a space more than once.")
	}

	like := &models.Like{UserID: user.ID, SpaceID: space.ID}
	if err := s.engagementRepo.CreateLike(ctx, like); err != nil {
		return nil, err
	}
	return space, nil
}

// Unlike removes a like. Removing an absent like is a no-op.
func (s *EngagementService) Unlike(ctx context.Context, principal models.Principal, username, spaceTitle string) error {
	if username != principal.Username {
		observability.OwnershipRejections.WithLabelValues("like").Inc()
		return models.NewUnauthorizedError("Cannot 'unlike' a space for another user")
	}

	user, space, err := s.resolvePair(ctx, username, spaceTitle)
	if err != nil {
		return err
	}
	return s.engagementRepo.DeleteLike(ctx, user.ID, space.ID)
}

// ListLikedSpaces returns the spaces a user has liked. Self or admin.
func (s *EngagementService) ListLikedSpaces(ctx context.Context, principal models.Principal, username string) ([]models.Space, error) {
	if err := authorizeSelfOrAdmin(principal, username); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError(fmt.Sprintf("No such user: %s", username))
	}
	return s.engagementRepo.ListLikedSpaces(ctx, user.ID)
}

// MarkVisited records a visit with a server-assigned date. A second marking
// for the same pair is a duplicate error, mirroring Like.
func (s *EngagementService) MarkVisited(ctx context.Context, principal models.Principal, username, spaceTitle string) (*models.Visit, error) {
	if username != principal.Username {
		observability.OwnershipRejections.WithLabelValues("visit").Inc()
		return nil, models.NewUnauthorizedError("Cannot mark a space as 'visited' for another user")
	}

	user, space, err := s.resolvePair(ctx, username, spaceTitle)
	if err != nil {
		return nil, err
	}

	exists, err := s.engagementRepo.VisitExists(ctx, user.ID, space.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		observability.DuplicateRejections.WithLabelValues("visit").Inc()
		return nil, models.NewValidationError("Already marked as visited.")
	}

	visit := &models.Visit{
		UserID:    user.ID,
		SpaceID:   space.ID,
		VisitDate: time.Now(),
	}
	if err := s.engagementRepo.CreateVisit(ctx, visit); err != nil {
		return nil, err
	}
	visit.Space = *space
	return visit, nil
}

// ListVisits returns a user's visits, most recent first. Self or admin.
func (s *EngagementService) ListVisits(ctx context.Context, principal models.Principal, username string) ([]models.Visit, error) {
	if err := authorizeSelfOrAdmin(principal, username); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError(fmt.Sprintf("No such user: %s", username))
	}
	return s.engagementRepo.ListVisits(ctx, user.ID)
}
