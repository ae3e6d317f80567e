package service

import (
	"context"
	"fmt"

	"happyhour/internal/models"
	"happyhour/internal/observability"
	"happyhour/internal/repository"
	"happyhour/internal/validation"
)

// LocationService handles location lifecycle. Uniqueness is on the
// (city, neighborhood) pair, both parts capitalized on write.
type LocationService struct {
	locationRepo repository.LocationRepository
	spaceRepo    repository.SpaceRepository
}

// LocationInput carries a location create/update payload.
type LocationInput struct {
	City         string
	Neighborhood string
}

// NewLocationService returns a new LocationService.
func NewLocationService(locationRepo repository.LocationRepository, spaceRepo repository.SpaceRepository) *LocationService {
	return &LocationService{locationRepo: locationRepo, spaceRepo: spaceRepo}
}

// List returns all locations.
func (s *LocationService) List(ctx context.Context) ([]models.Location, error) {
	return s.locationRepo.List(ctx)
}

// Get returns a location by id.
func (s *LocationService) Get(ctx context.Context, id uint) (*models.Location, error) {
	return s.locationRepo.GetByID(ctx, id)
}

// ListByCity returns all locations in a city.
func (s *LocationService) ListByCity(ctx context.Context, city string) ([]models.Location, error) {
	locations, err := s.locationRepo.ListByCity(ctx, city)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, models.NewNotFoundError(fmt.Sprintf("Cannot find city: %s", city))
	}
	return locations, nil
}

// ListByNeighborhood returns all locations with a given neighborhood name.
func (s *LocationService) ListByNeighborhood(ctx context.Context, neighborhood string) ([]models.Location, error) {
	locations, err := s.locationRepo.ListByNeighborhood(ctx, neighborhood)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, models.NewNotFoundError(fmt.Sprintf("Cannot find neighborhood: %s", neighborhood))
	}
	return locations, nil
}

// Create inserts a new location after capitalizing both parts and
// duplicate-checking the pair.
func (s *LocationService) Create(ctx context.Context, in LocationInput) (*models.Location, error) {
	if err := validation.ValidateRequired("city", in.City); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateRequired("neighborhood", in.Neighborhood); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	capCity := capitalizeWords(in.City)
	capNeighborhood := capitalizeWords(in.Neighborhood)

	existing, err := s.locationRepo.GetByPair(ctx, capCity, capNeighborhood)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		observability.DuplicateRejections.WithLabelValues("location").Inc()
		return nil, models.NewValidationError(fmt.Sprintf("%s, %s already exists.", capCity, capNeighborhood))
	}

	location := &models.Location{City: capCity, Neighborhood: capNeighborhood}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// Update changes a location's pair. The duplicate check excludes the row
// being updated.
func (s *LocationService) Update(ctx context.Context, id uint, in LocationInput) (*models.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewNotFoundError(fmt.Sprintf("Location with id %d not found.", id))
		}
		return nil, err
	}

	if in.City != "" {
		location.City = capitalizeWords(in.City)
	}
	if in.Neighborhood != "" {
		location.Neighborhood = capitalizeWords(in.Neighborhood)
	}

	existing, err := s.locationRepo.GetByPair(ctx, location.City, location.Neighborhood)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != location.ID {
		observability.DuplicateRejections.WithLabelValues("location").Inc()
		return nil, models.NewValidationError(fmt.Sprintf("%s, %s already exists.", location.City, location.Neighborhood))
	}

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// Delete removes a location by neighborhood name. Existence is checked
// before the referential guard; a location still referenced by spaces fails
// with an untyped error and no partial deletion occurs.
func (s *LocationService) Delete(ctx context.Context, neighborhood string) error {
	location, err := s.locationRepo.GetByNeighborhood(ctx, neighborhood)
	if err != nil {
		return err
	}
	if location == nil {
		return models.NewNotFoundError(fmt.Sprintf("No neighborhood: %s", neighborhood))
	}

	count, err := s.spaceRepo.CountByLocation(ctx, location.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("Cannot delete location with associated spaces!")
	}

	return s.locationRepo.Delete(ctx, location.ID)
}
