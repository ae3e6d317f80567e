package repository

import (
	"context"
	"errors"
	"fmt"

	"happyhour/internal/models"

	"gorm.io/gorm"
)

// LocationRepository defines persistence operations for locations.
type LocationRepository interface {
	List(ctx context.Context) ([]models.Location, error)
	GetByID(ctx context.Context, id uint) (*models.Location, error)
	GetByPair(ctx context.Context, city, neighborhood string) (*models.Location, error)
	GetByNeighborhood(ctx context.Context, neighborhood string) (*models.Location, error)
	ListByCity(ctx context.Context, city string) ([]models.Location, error)
	ListByNeighborhood(ctx context.Context, neighborhood string) ([]models.Location, error)
	Create(ctx context.Context, location *models.Location) error
	Update(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id uint) error
}

type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository returns a new LocationRepository implementation.
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) List(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	if err := r.db.WithContext(ctx).Order("city ASC, neighborhood ASC").Find(&locations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return locations, nil
}

func (r *locationRepository) GetByID(ctx context.Context, id uint) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(fmt.Sprintf("Cannot find location with id of: %d", id))
		}
		return nil, models.NewInternalError(err)
	}
	return &location, nil
}

// GetByPair returns (nil, nil) when no location matches the (city, neighborhood) pair.
func (r *locationRepository) GetByPair(ctx context.Context, city, neighborhood string) (*models.Location, error) {
	var location models.Location
	err := r.db.WithContext(ctx).
		Where("city = ? AND neighborhood = ?", city, neighborhood).
		First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &location, nil
}

// GetByNeighborhood returns (nil, nil) when no location matches the neighborhood.
func (r *locationRepository) GetByNeighborhood(ctx context.Context, neighborhood string) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).Where("neighborhood = ?", neighborhood).First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &location, nil
}

func (r *locationRepository) ListByCity(ctx context.Context, city string) ([]models.Location, error) {
	var locations []models.Location
	if err := r.db.WithContext(ctx).Where("city = ?", city).Order("neighborhood ASC").Find(&locations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return locations, nil
}

func (r *locationRepository) ListByNeighborhood(ctx context.Context, neighborhood string) ([]models.Location, error) {
	var locations []models.Location
	if err := r.db.WithContext(ctx).Where("neighborhood = ?", neighborhood).Order("city ASC").Find(&locations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return locations, nil
}

func (r *locationRepository) Create(ctx context.Context, location *models.Location) error {
	if err := r.db.WithContext(ctx).Create(location).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError(fmt.Sprintf("%s, %s already exists.", location.City, location.Neighborhood))
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *locationRepository) Update(ctx context.Context, location *models.Location) error {
	if err := r.db.WithContext(ctx).Save(location).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError(fmt.Sprintf("%s, %s already exists.", location.City, location.Neighborhood))
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *locationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Location{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
