package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"happyhour/internal/models"
	"happyhour/internal/observability"

	"gorm.io/gorm"
)

// RatingRepository defines persistence operations for ratings.
type RatingRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Rating, error)
	GetByUserAndSpace(ctx context.Context, userID, spaceID uint) (*models.Rating, error)
	AverageForSpace(ctx context.Context, spaceID uint) (*float64, error)
	Create(ctx context.Context, rating *models.Rating) error
	Update(ctx context.Context, rating *models.Rating) error
	Delete(ctx context.Context, id uint) error
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository returns a new RatingRepository implementation.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) GetByID(ctx context.Context, id uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Space").
		First(&rating, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Rating not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &rating, nil
}

// GetByUserAndSpace returns (nil, nil) when the user has not rated the space.
func (r *ratingRepository) GetByUserAndSpace(ctx context.Context, userID, spaceID uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND space_id = ?", userID, spaceID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &rating, nil
}

// AverageForSpace returns nil when the space has no ratings.
func (r *ratingRepository) AverageForSpace(ctx context.Context, spaceID uint) (*float64, error) {
	defer observability.TrackQuery("aggregate", "ratings")()

	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("AVG(rating)").
		Where("space_id = ?", spaceID).
		Row().Scan(&avg)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError(fmt.Sprintf("User %d has already rated space %d", rating.UserID, rating.SpaceID))
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *ratingRepository) Update(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Omit("User", "Space").Save(rating).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *ratingRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Rating{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
