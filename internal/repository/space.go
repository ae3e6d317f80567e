package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"happyhour/internal/models"
	"happyhour/internal/observability"

	"gorm.io/gorm"
)

// SpaceFilters holds the optional search criteria for listing spaces. All
// string filters are case-insensitive substring matches; SortBy orders by the
// computed average rating ("asc" or "desc").
type SpaceFilters struct {
	Title        string
	Category     string
	City         string
	Neighborhood string
	SortBy       string
}

// SpaceRepository defines persistence operations for spaces.
type SpaceRepository interface {
	List(ctx context.Context, filters SpaceFilters) ([]models.Space, error)
	GetByTitle(ctx context.Context, title string) (*models.Space, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]models.Space, error)
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
	CountByLocation(ctx context.Context, locationID uint) (int64, error)
	Create(ctx context.Context, space *models.Space) error
	Update(ctx context.Context, space *models.Space) error
	Delete(ctx context.Context, id uint) error
}

type spaceRepository struct {
	db *gorm.DB
}

// NewSpaceRepository returns a new SpaceRepository implementation.
func NewSpaceRepository(db *gorm.DB) SpaceRepository {
	return &spaceRepository{db: db}
}

// List joins categories, locations and ratings, computing each space's
// average rating in the same query. Unrated spaces carry a NULL average:
// ascending sort places them first, descending places them last, so an
// unrated space always ranks as worst regardless of direction.
func (r *spaceRepository) List(ctx context.Context, filters SpaceFilters) ([]models.Space, error) {
	defer observability.TrackQuery("select", "spaces")()

	like := likeOperator(r.db)

	query := r.db.WithContext(ctx).
		Model(&models.Space{}).
		Select("spaces.*, AVG(ratings.rating) AS avg_rating").
		Joins("JOIN categories ON categories.id = spaces.category_id").
		Joins("JOIN locations ON locations.id = spaces.location_id").
		Joins("LEFT JOIN ratings ON ratings.space_id = spaces.id").
		Group("spaces.id")

	if filters.Title != "" {
		query = query.Where("spaces.title "+like+" ?", "%"+filters.Title+"%")
	}
	if filters.Category != "" {
		query = query.Where("categories.cat_type "+like+" ?", "%"+filters.Category+"%")
	}
	if filters.City != "" {
		query = query.Where("locations.city "+like+" ?", "%"+filters.City+"%")
	}
	if filters.Neighborhood != "" {
		query = query.Where("locations.neighborhood "+like+" ?", "%"+filters.Neighborhood+"%")
	}

	if filters.SortBy != "" {
		if strings.EqualFold(filters.SortBy, "desc") {
			query = query.Order("avg_rating DESC NULLS LAST")
		} else {
			query = query.Order("avg_rating ASC NULLS FIRST")
		}
	}

	var spaces []models.Space
	if err := query.Preload("Category").Preload("Location").Find(&spaces).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return spaces, nil
}

// GetByTitle returns (nil, nil) when no space exists with that title.
func (r *spaceRepository) GetByTitle(ctx context.Context, title string) (*models.Space, error) {
	var space models.Space
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Location").
		Where("title = ?", title).
		First(&space).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &space, nil
}

func (r *spaceRepository) ListByCategory(ctx context.Context, categoryID uint) ([]models.Space, error) {
	var spaces []models.Space
	err := r.db.WithContext(ctx).
		Preload("Location").
		Where("category_id = ?", categoryID).
		Order("title ASC").
		Find(&spaces).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return spaces, nil
}

func (r *spaceRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Space{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *spaceRepository) CountByLocation(ctx context.Context, locationID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Space{}).Where("location_id = ?", locationID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *spaceRepository) Create(ctx context.Context, space *models.Space) error {
	if err := r.db.WithContext(ctx).Create(space).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError(fmt.Sprintf("Duplicate space: %s", space.Title))
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *spaceRepository) Update(ctx context.Context, space *models.Space) error {
	// Omit the preloaded associations so a space update never writes
	// category or location rows.
	if err := r.db.WithContext(ctx).Omit("Category", "Location").Save(space).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError(fmt.Sprintf("Duplicate space title: %s", space.Title))
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *spaceRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Space{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
