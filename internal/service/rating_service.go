package service

import (
	"context"
	"fmt"

	"happyhour/internal/cache"
	"happyhour/internal/models"
	"happyhour/internal/observability"
	"happyhour/internal/repository"
	"happyhour/internal/validation"
)

// RatingService handles ratings and the average-rating aggregation. A user
// may rate a space at most once; a second attempt is rejected toward the
// edit flow, never merged. Updates are owner-only; deletes allow the admin
// override.
type RatingService struct {
	ratingRepo repository.RatingRepository
	userRepo   repository.UserRepository
	spaceRepo  repository.SpaceRepository
}

// CreateRatingInput carries a new-rating payload. Username is the route's
// rater parameter, checked against the principal.
type CreateRatingInput struct {
	Principal  models.Principal
	Username   string
	SpaceTitle string
	Rating     int
}

// NewRatingService returns a new RatingService.
func NewRatingService(
	ratingRepo repository.RatingRepository,
	userRepo repository.UserRepository,
	spaceRepo repository.SpaceRepository,
) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		userRepo:   userRepo,
		spaceRepo:  spaceRepo,
	}
}

// Create records a user's rating for a space. A rating can only be posted
// under the caller's own username; admins get no exception here.
func (s *RatingService) Create(ctx context.Context, in CreateRatingInput) (*models.Rating, error) {
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

	if err := validation.ValidateRating(in.Rating); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.ratingRepo.GetByUserAndSpace(ctx, user.ID, space.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		observability.DuplicateRejections.WithLabelValues("rating").Inc()
		return nil, models.NewValidationError(fmt.Sprintf("User %s has already rated space %s", in.Username, in.SpaceTitle))
	}

	rating := &models.Rating{
		Rating:  in.Rating,
		UserID:  user.ID,
		SpaceID: space.ID,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}
	cache.InvalidateAvgRating(ctx, space.ID)
	return rating, nil
}

// Get returns a single rating.
func (s *RatingService) Get(ctx context.Context, id uint) (*models.Rating, error) {
	return s.ratingRepo.GetByID(ctx, id)
}

// GetForUserAndSpace returns the rating a user gave a space.
func (s *RatingService) GetForUserAndSpace(ctx context.Context, username, spaceTitle string) (*models.Rating, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError(fmt.Sprintf("No such user: %s", username))
	}

	space, err := s.spaceRepo.GetByTitle(ctx, spaceTitle)
	if err != nil {
		return nil, err
	}
	if space == nil {
		return nil, models.NewNotFoundError(fmt.Sprintf("No such space: %s", spaceTitle))
	}

	rating, err := s.ratingRepo.GetByUserAndSpace(ctx, user.ID, space.ID)
	if err != nil {
		return nil, err
	}
	if rating == nil {
		return nil, models.NewNotFoundError("Rating not found!")
	}
	return rating, nil
}

// Update changes a rating's value. Owner only: there is no admin override
// for rating edits, only for deletion.
func (s *RatingService) Update(ctx context.Context, principal models.Principal, id uint, value int) (*models.Rating, error) {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewNotFoundError(fmt.Sprintf("Rating with ID %d not found.", id))
		}
		return nil, err
	}

	if rating.UserID != principal.UserID {
		observability.OwnershipRejections.WithLabelValues("rating").Inc()
		return nil, models.NewUnauthorizedError("Unauthorized to update this rating.")
	}

	if err := validation.ValidateRating(value); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	rating.Rating = value
	if err := s.ratingRepo.Update(ctx, rating); err != nil {
		return nil, err
	}
	cache.InvalidateAvgRating(ctx, rating.SpaceID)
	return rating, nil
}

// Delete removes a rating. Permitted for the owner or an admin.
func (s *RatingService) Delete(ctx context.Context, principal models.Principal, id uint) error {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if rating.UserID != principal.UserID && !principal.IsAdmin {
		observability.OwnershipRejections.WithLabelValues("rating").Inc()
		return models.NewUnauthorizedError("Unauthorized to delete this rating.")
	}

	if err := s.ratingRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateAvgRating(ctx, rating.SpaceID)
	return nil
}

// Average returns a space's mean rating formatted to two decimal places, or
// the "Not yet rated" sentinel when the space has no ratings. The formatted
// value is cached and invalidated on every rating write for the space.
func (s *RatingService) Average(ctx context.Context, spaceTitle string) (string, error) {
	space, err := s.spaceRepo.GetByTitle(ctx, spaceTitle)
	if err != nil {
		return "", err
	}
	if space == nil {
		return "", models.NewNotFoundError(fmt.Sprintf("No such space: %s", spaceTitle))
	}

	key := cache.AvgRatingKey(space.ID)
	var cached string
	found, err := cache.GetJSON(ctx, key, &cached)
	if err == nil && found {
		observability.RatingCacheHits.Inc()
		return cached, nil
	}
	observability.RatingCacheMisses.Inc()

	avg, err := s.ratingRepo.AverageForSpace(ctx, space.ID)
	if err != nil {
		return "", err
	}

	result := models.NotYetRated
	if avg != nil {
		result = fmt.Sprintf("%.2f", *avg)
	}

	_ = cache.SetJSON(ctx, key, result, cache.AvgRatingTTL)
	return result, nil
}
