package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"happyhour/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestCategoryRepository_GetByType(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "cat_type"}).AddRow(1, "Fine Dining")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories" WHERE cat_type = $1`)).
			WithArgs("Fine Dining", 1).
			WillReturnRows(rows)

		category, err := repo.GetByType(ctx, "Fine Dining")

		assert.NoError(t, err)
		if assert.NotNil(t, category) {
			assert.Equal(t, "Fine Dining", category.CatType)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Absent", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories" WHERE cat_type = $1`)).
			WithArgs("Nope", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		category, err := repo.GetByType(ctx, "Nope")

		assert.NoError(t, err)
		assert.Nil(t, category)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCategoryRepository_Create_Duplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "categories"`)).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_categories_cat_type" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Category{CatType: "Fine Dining"})

	assert.Error(t, err)
	assert.True(t, models.IsValidation(err))
	assert.Contains(t, err.Error(), "Fine Dining already exists.")
	assert.NoError(t, mock.ExpectationsWereMet())
}
