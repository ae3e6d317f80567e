package service

import (
	"context"
	"testing"

	"happyhour/internal/models"
	"happyhour/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpaceService_List_EmptyIsNotFound(t *testing.T) {
	t.Parallel()
	svc := NewSpaceService(noopSpaceRepo())

	_, err := svc.List(context.Background(), repository.SpaceFilters{Title: "nothing"})
	assertNotFoundError(t, err)
	assert.Contains(t, err.Error(), "No spaces found matching the criteria.")
}

func TestSpaceService_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("capitalizes the title", func(t *testing.T) {
		var created *models.Space
		spaceRepo := noopSpaceRepo()
		spaceRepo.createFn = func(_ context.Context, space *models.Space) error {
			created = space
			return nil
		}
		spaceRepo.getByTitleFn = func(_ context.Context, title string) (*models.Space, error) {
			if created != nil && title == created.Title {
				return created, nil
			}
			return nil, nil
		}
		svc := NewSpaceService(spaceRepo)

		space, err := svc.Create(ctx, CreateSpaceInput{
			Title:      "loft nine",
			CategoryID: 1,
			LocationID: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, "Loft Nine", space.Title)
	})

	t.Run("duplicate title rejected", func(t *testing.T) {
		spaceRepo := noopSpaceRepo()
		spaceRepo.getByTitleFn = func(_ context.Context, title string) (*models.Space, error) {
			if title == "Loft Nine" {
				return &models.Space{ID: 1, Title: "Loft Nine"}, nil
			}
			return nil, nil
		}
		svc := NewSpaceService(spaceRepo)

		_, err := svc.Create(ctx, CreateSpaceInput{Title: "loft nine", CategoryID: 1, LocationID: 1})
		assertValidationError(t, err)
		assert.Contains(t, err.Error(), "Duplicate space: Loft Nine")
	})

	t.Run("missing references rejected", func(t *testing.T) {
		svc := NewSpaceService(noopSpaceRepo())
		_, err := svc.Create(ctx, CreateSpaceInput{Title: "Loft Nine"})
		assertValidationError(t, err)
	})
}

func TestSpaceService_Update_RenameExcludesSelf(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	spaceRepo := noopSpaceRepo()
	spaceRepo.getByTitleFn = func(_ context.Context, title string) (*models.Space, error) {
		switch title {
		case "Loft Nine":
			return &models.Space{ID: 1, Title: "Loft Nine"}, nil
		case "Velvet Room":
			return &models.Space{ID: 2, Title: "Velvet Room"}, nil
		}
		return nil, nil
	}
	svc := NewSpaceService(spaceRepo)

	t.Run("case-only rename of itself is allowed", func(t *testing.T) {
		newTitle := "loft nine"
		space, err := svc.Update(ctx, "Loft Nine", UpdateSpaceInput{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, "Loft Nine", space.Title)
	})

	t.Run("rename onto another space rejected", func(t *testing.T) {
		newTitle := "velvet room"
		_, err := svc.Update(ctx, "Loft Nine", UpdateSpaceInput{Title: &newTitle})
		assertValidationError(t, err)
		assert.Contains(t, err.Error(), "Duplicate space title: Velvet Room")
	})

	t.Run("missing space is not found", func(t *testing.T) {
		_, err := svc.Update(ctx, "Ghost Loft", UpdateSpaceInput{})
		assertNotFoundError(t, err)
	})
}

func TestSpaceService_Delete(t *testing.T) {
	t.Parallel()
	spaceRepo := noopSpaceRepo()
	spaceRepo.getByTitleFn = func(_ context.Context, title string) (*models.Space, error) {
		if title == "Loft Nine" {
			return &models.Space{ID: 1, Title: "Loft Nine"}, nil
		}
		return nil, nil
	}
	svc := NewSpaceService(spaceRepo)

	assert.NoError(t, svc.Delete(context.Background(), "Loft Nine"))
	assertNotFoundError(t, svc.Delete(context.Background(), "Ghost Loft"))
}
