package repository

import (
	"context"

	"happyhour/internal/models"

	"gorm.io/gorm"
)

// EngagementRepository defines persistence operations for likes and visits.
type EngagementRepository interface {
	LikeExists(ctx context.Context, userID, spaceID uint) (bool, error)
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, userID, spaceID uint) error
	ListLikedSpaces(ctx context.Context, userID uint) ([]models.Space, error)

	VisitExists(ctx context.Context, userID, spaceID uint) (bool, error)
	CreateVisit(ctx context.Context, visit *models.Visit) error
	ListVisits(ctx context.Context, userID uint) ([]models.Visit, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository returns a new EngagementRepository implementation.
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) LikeExists(ctx context.Context, userID, spaceID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND space_id = ?", userID, spaceID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *engagementRepository) CreateLike(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Cannot like a space more than once.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// DeleteLike removes the like row if present; deleting an absent like is a no-op.
func (r *engagementRepository) DeleteLike(ctx context.Context, userID, spaceID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND space_id = ?", userID, spaceID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *engagementRepository) ListLikedSpaces(ctx context.Context, userID uint) ([]models.Space, error) {
	var spaces []models.Space
	err := r.db.WithContext(ctx).
		Model(&models.Space{}).
		Joins("JOIN likes ON likes.space_id = spaces.id").
		Where("likes.user_id = ?", userID).
		Preload("Category").
		Preload("Location").
		Order("spaces.title ASC").
		Find(&spaces).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return spaces, nil
}

func (r *engagementRepository) VisitExists(ctx context.Context, userID, spaceID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("user_id = ? AND space_id = ?", userID, spaceID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *engagementRepository) CreateVisit(ctx context.Context, visit *models.Visit) error {
	if err := r.db.WithContext(ctx).Create(visit).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Already marked as visited.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *engagementRepository) ListVisits(ctx context.Context, userID uint) ([]models.Visit, error) {
	var visits []models.Visit
	err := r.db.WithContext(ctx).
		Preload("Space").
		Where("user_id = ?", userID).
		Order("visit_date DESC").
		Find(&visits).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return visits, nil
}
