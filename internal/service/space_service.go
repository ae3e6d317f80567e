package service

import (
	"context"
	"fmt"

	"happyhour/internal/models"
	"happyhour/internal/observability"
	"happyhour/internal/repository"
	"happyhour/internal/validation"
)

// SpaceService handles the space directory: listing with filters and
// rating-aware sorting, plus the admin-only write lifecycle.
type SpaceService struct {
	spaceRepo repository.SpaceRepository
}

// CreateSpaceInput carries a new space payload.
type CreateSpaceInput struct {
	Title       string
	Description string
	ImageURL    string
	Address     string
	EstYear     int
	CategoryID  uint
	LocationID  uint
}

// UpdateSpaceInput is a partial space update. Nil fields are left unchanged.
type UpdateSpaceInput struct {
	Title       *string
	Description *string
	ImageURL    *string
	Address     *string
	EstYear     *int
	CategoryID  *uint
	LocationID  *uint
}

// NewSpaceService returns a new SpaceService.
func NewSpaceService(spaceRepo repository.SpaceRepository) *SpaceService {
	return &SpaceService{spaceRepo: spaceRepo}
}

// List returns spaces matching the filters, each carrying its average rating.
func (s *SpaceService) List(ctx context.Context, filters repository.SpaceFilters) ([]models.Space, error) {
	spaces, err := s.spaceRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	if len(spaces) == 0 {
		return nil, models.NewNotFoundError("No spaces found matching the criteria.")
	}
	return spaces, nil
}

// Get returns a space by its exact title.
func (s *SpaceService) Get(ctx context.Context, title string) (*models.Space, error) {
	space, err := s.spaceRepo.GetByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if space == nil {
		return nil, models.NewNotFoundError(fmt.Sprintf("Cannot find space: %s", title))
	}
	return space, nil
}

// Create inserts a new space after capitalizing and duplicate-checking its title.
func (s *SpaceService) Create(ctx context.Context, in CreateSpaceInput) (*models.Space, error) {
	if err := validation.ValidateRequired("title", in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.CategoryID == 0 || in.LocationID == 0 {
		return nil, models.NewValidationError("category_id and location_id are required")
	}

	capTitle := capitalizeWords(in.Title)

	existing, err := s.spaceRepo.GetByTitle(ctx, capTitle)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		observability.DuplicateRejections.WithLabelValues("space").Inc()
		return nil, models.NewValidationError(fmt.Sprintf("Duplicate space: %s", capTitle))
	}

	space := &models.Space{
		Title:       capTitle,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Address:     in.Address,
		EstYear:     in.EstYear,
		CategoryID:  in.CategoryID,
		LocationID:  in.LocationID,
	}
	if err := s.spaceRepo.Create(ctx, space); err != nil {
		return nil, err
	}
	return s.Get(ctx, space.Title)
}

// Update applies a partial update; a rename runs the duplicate guard
// excluding the space itself.
func (s *SpaceService) Update(ctx context.Context, title string, in UpdateSpaceInput) (*models.Space, error) {
	space, err := s.spaceRepo.GetByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if space == nil {
		return nil, models.NewNotFoundError(fmt.Sprintf("No space: %s", title))
	}

	if in.Title != nil {
		capTitle := capitalizeWords(*in.Title)
		existing, err := s.spaceRepo.GetByTitle(ctx, capTitle)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != space.ID {
			observability.DuplicateRejections.WithLabelValues("space").Inc()
			return nil, models.NewValidationError(fmt.Sprintf("Duplicate space title: %s", capTitle))
		}
		space.Title = capTitle
	}
	if in.Description != nil {
		space.Description = *in.Description
	}
	if in.ImageURL != nil {
		space.ImageURL = *in.ImageURL
	}
	if in.Address != nil {
		space.Address = *in.Address
	}
	if in.EstYear != nil {
		space.EstYear = *in.EstYear
	}
	if in.CategoryID != nil {
		space.CategoryID = *in.CategoryID
	}
	if in.LocationID != nil {
		space.LocationID = *in.LocationID
	}

	if err := s.spaceRepo.Update(ctx, space); err != nil {
		return nil, err
	}
	return s.Get(ctx, space.Title)
}

// Delete removes a space by title.
func (s *SpaceService) Delete(ctx context.Context, title string) error {
	space, err := s.spaceRepo.GetByTitle(ctx, title)
	if err != nil {
		return err
	}
	if space == nil {
		return models.NewNotFoundError(fmt.Sprintf("No space: %s", title))
	}
	return s.spaceRepo.Delete(ctx, space.ID)
}
