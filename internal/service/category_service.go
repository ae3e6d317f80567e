package service

import (
	"context"
	"fmt"

	"happyhour/internal/models"
	"happyhour/internal/observability"
	"happyhour/internal/repository"
	"happyhour/internal/validation"
)

// CategoryService handles category lifecycle. Creation and renames run the
// duplicate guard on the capitalized type; deletion runs the referential
// integrity guard against spaces.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	spaceRepo    repository.SpaceRepository
}

// CategoryDetail is a category together with the spaces that reference it.
type CategoryDetail struct {
	models.Category
	Spaces []models.Space `json:"spaces"`
}

// NewCategoryService returns a new CategoryService.
func NewCategoryService(categoryRepo repository.CategoryRepository, spaceRepo repository.SpaceRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, spaceRepo: spaceRepo}
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Get returns a category and its spaces ordered by title.
func (s *CategoryService) Get(ctx context.Context, catType string) (*CategoryDetail, error) {
	category, err := s.categoryRepo.GetByType(ctx, catType)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, models.NewNotFoundError(fmt.Sprintf("Cannot find category: %s", catType))
	}
	spaces, err := s.spaceRepo.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	return &CategoryDetail{Category: *category, Spaces: spaces}, nil
}

// Create inserts a new category after capitalizing and duplicate-checking the
// candidate type.
func (s *CategoryService) Create(ctx context.Context, catType string) (*models.Category, error) {
	if err := validation.ValidateRequired("cat_type", catType); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	capped := capitalizeWords(catType)

	existing, err := s.categoryRepo.GetByType(ctx, capped)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		observability.DuplicateRejections.WithLabelValues("category").Inc()
		return nil, models.NewValidationError(fmt.Sprintf("%s already exists.", capped))
	}

	category := &models.Category{CatType: capped}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Rename changes a category's type. The duplicate check excludes the row
// being renamed, so a case-only rename of itself is allowed.
func (s *CategoryService) Rename(ctx context.Context, catType, newType string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByType(ctx, catType)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, models.NewNotFoundError(fmt.Sprintf("No such category: %s", catType))
	}

	if err := validation.ValidateRequired("cat_type", newType); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	capped := capitalizeWords(newType)

	existing, err := s.categoryRepo.GetByType(ctx, capped)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != category.ID {
		observability.DuplicateRejections.WithLabelValues("category").Inc()
		return nil, models.NewValidationError(fmt.Sprintf("%s already exists.", capped))
	}

	category.CatType = capped
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category. Existence is checked before the referential
// guard; a category still referenced by spaces fails with an untyped error
// and no partial deletion occurs.
func (s *CategoryService) Delete(ctx context.Context, catType string) error {
	category, err := s.categoryRepo.GetByType(ctx, catType)
	if err != nil {
		return err
	}
	if category == nil {
		return models.NewNotFoundError(fmt.Sprintf("No such category: %s", catType))
	}

	count, err := s.spaceRepo.CountByCategory(ctx, category.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("Cannot delete category with associated spaces!")
	}

	return s.categoryRepo.Delete(ctx, category.ID)
}
