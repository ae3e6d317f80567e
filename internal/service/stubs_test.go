package service

import (
	"context"
	"testing"

	"happyhour/internal/models"
	"happyhour/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, models.IsValidation(err), "expected validation error, got %v", err)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err), "expected not-found error, got %v", err)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, models.IsUnauthorized(err), "expected unauthorized error, got %v", err)
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	listFn      func(context.Context) ([]models.Category, error)
	getByTypeFn func(context.Context, string) (*models.Category, error)
	createFn    func(context.Context, *models.Category) error
	updateFn    func(context.Context, *models.Category) error
	deleteFn    func(context.Context, uint) error
}

func (s *categoryRepoStub) List(ctx context.Context) ([]models.Category, error) {
	return s.listFn(ctx)
}
func (s *categoryRepoStub) GetByType(ctx context.Context, catType string) (*models.Category, error) {
	return s.getByTypeFn(ctx, catType)
}
func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) Update(ctx context.Context, category *models.Category) error {
	return s.updateFn(ctx, category)
}
func (s *categoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		listFn:      func(_ context.Context) ([]models.Category, error) { return nil, nil },
		getByTypeFn: func(_ context.Context, _ string) (*models.Category, error) { return nil, nil },
		createFn:    func(_ context.Context, _ *models.Category) error { return nil },
		updateFn:    func(_ context.Context, _ *models.Category) error { return nil },
		deleteFn:    func(_ context.Context, _ uint) error { return nil },
	}
}

// locationRepoStub is a stub for repository.LocationRepository.
type locationRepoStub struct {
	listFn               func(context.Context) ([]models.Location, error)
	getByIDFn            func(context.Context, uint) (*models.Location, error)
	getByPairFn          func(context.Context, string, string) (*models.Location, error)
	getByNeighborhoodFn  func(context.Context, string) (*models.Location, error)
	listByCityFn         func(context.Context, string) ([]models.Location, error)
	listByNeighborhoodFn func(context.Context, string) ([]models.Location, error)
	createFn             func(context.Context, *models.Location) error
	updateFn             func(context.Context, *models.Location) error
	deleteFn             func(context.Context, uint) error
}

func (s *locationRepoStub) List(ctx context.Context) ([]models.Location, error) {
	return s.listFn(ctx)
}
func (s *locationRepoStub) GetByID(ctx context.Context, id uint) (*models.Location, error) {
	return s.getByIDFn(ctx, id)
}
func (s *locationRepoStub) GetByPair(ctx context.Context, city, neighborhood string) (*models.Location, error) {
	return s.getByPairFn(ctx, city, neighborhood)
}
func (s *locationRepoStub) GetByNeighborhood(ctx context.Context, neighborhood string) (*models.Location, error) {
	return s.getByNeighborhoodFn(ctx, neighborhood)
}
func (s *locationRepoStub) ListByCity(ctx context.Context, city string) ([]models.Location, error) {
	return s.listByCityFn(ctx, city)
}
func (s *locationRepoStub) ListByNeighborhood(ctx context.Context, neighborhood string) ([]models.Location, error) {
	return s.listByNeighborhoodFn(ctx, neighborhood)
}
func (s *locationRepoStub) Create(ctx context.Context, location *models.Location) error {
	return s.createFn(ctx, location)
}
func (s *locationRepoStub) Update(ctx context.Context, location *models.Location) error {
	return s.updateFn(ctx, location)
}
func (s *locationRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopLocationRepo() *locationRepoStub {
	return &locationRepoStub{
		listFn:               func(_ context.Context) ([]models.Location, error) { return nil, nil },
		getByIDFn:            func(_ context.Context, _ uint) (*models.Location, error) { return &models.Location{}, nil },
		getByPairFn:          func(_ context.Context, _, _ string) (*models.Location, error) { return nil, nil },
		getByNeighborhoodFn:  func(_ context.Context, _ string) (*models.Location, error) { return nil, nil },
		listByCityFn:         func(_ context.Context, _ string) ([]models.Location, error) { return nil, nil },
		listByNeighborhoodFn: func(_ context.Context, _ string) ([]models.Location, error) { return nil, nil },
		createFn:             func(_ context.Context, _ *models.Location) error { return nil },
		updateFn:             func(_ context.Context, _ *models.Location) error { return nil },
		deleteFn:             func(_ context.Context, _ uint) error { return nil },
	}
}

// spaceRepoStub is a stub for repository.SpaceRepository.
type spaceRepoStub struct {
	listFn             func(context.Context, repository.SpaceFilters) ([]models.Space, error)
	getByTitleFn       func(context.Context, string) (*models.Space, error)
	listByCategoryFn   func(context.Context, uint) ([]models.Space, error)
	countByCategoryFn  func(context.Context, uint) (int64, error)
	countByLocationFn  func(context.Context, uint) (int64, error)
	createFn           func(context.Context, *models.Space) error
	updateFn           func(context.Context, *models.Space) error
	deleteFn           func(context.Context, uint) error
}

func (s *spaceRepoStub) List(ctx context.Context, filters repository.SpaceFilters) ([]models.Space, error) {
	return s.listFn(ctx, filters)
}
func (s *spaceRepoStub) GetByTitle(ctx context.Context, title string) (*models.Space, error) {
	return s.getByTitleFn(ctx, title)
}
func (s *spaceRepoStub) ListByCategory(ctx context.Context, categoryID uint) ([]models.Space, error) {
	return s.listByCategoryFn(ctx, categoryID)
}
func (s *spaceRepoStub) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	return s.countByCategoryFn(ctx, categoryID)
}
func (s *spaceRepoStub) CountByLocation(ctx context.Context, locationID uint) (int64, error) {
	return s.countByLocationFn(ctx, locationID)
}
func (s *spaceRepoStub) Create(ctx context.Context, space *models.Space) error {
	return s.createFn(ctx, space)
}
func (s *spaceRepoStub) Update(ctx context.Context, space *models.Space) error {
	return s.updateFn(ctx, space)
}
func (s *spaceRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopSpaceRepo() *spaceRepoStub {
	return &spaceRepoStub{
		listFn:            func(_ context.Context, _ repository.SpaceFilters) ([]models.Space, error) { return nil, nil },
		getByTitleFn:      func(_ context.Context, _ string) (*models.Space, error) { return nil, nil },
		listByCategoryFn:  func(_ context.Context, _ uint) ([]models.Space, error) { return nil, nil },
		countByCategoryFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countByLocationFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		createFn:          func(_ context.Context, _ *models.Space) error { return nil },
		updateFn:          func(_ context.Context, _ *models.Space) error { return nil },
		deleteFn:          func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	listBySpaceFn func(context.Context, uint) ([]models.Comment, error)
	listByUserFn  func(context.Context, uint) ([]models.Comment, error)
	createFn      func(context.Context, *models.Comment) error
	updateFn      func(context.Context, *models.Comment) error
	deleteFn      func(context.Context, uint) error
}

func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListBySpace(ctx context.Context, spaceID uint) ([]models.Comment, error) {
	return s.listBySpaceFn(ctx, spaceID)
}
func (s *commentRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Comment, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		getByIDFn:     func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listBySpaceFn: func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
		listByUserFn:  func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
		createFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		updateFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

// ratingRepoStub is a stub for repository.RatingRepository.
type ratingRepoStub struct {
	getByIDFn           func(context.Context, uint) (*models.Rating, error)
	getByUserAndSpaceFn func(context.Context, uint, uint) (*models.Rating, error)
	averageForSpaceFn   func(context.Context, uint) (*float64, error)
	createFn            func(context.Context, *models.Rating) error
	updateFn            func(context.Context, *models.Rating) error
	deleteFn            func(context.Context, uint) error
}

func (s *ratingRepoStub) GetByID(ctx context.Context, id uint) (*models.Rating, error) {
	return s.getByIDFn(ctx, id)
}
func (s *ratingRepoStub) GetByUserAndSpace(ctx context.Context, userID, spaceID uint) (*models.Rating, error) {
	return s.getByUserAndSpaceFn(ctx, userID, spaceID)
}
func (s *ratingRepoStub) AverageForSpace(ctx context.Context, spaceID uint) (*float64, error) {
	return s.averageForSpaceFn(ctx, spaceID)
}
func (s *ratingRepoStub) Create(ctx context.Context, rating *models.Rating) error {
	return s.createFn(ctx, rating)
}
func (s *ratingRepoStub) Update(ctx context.Context, rating *models.Rating) error {
	return s.updateFn(ctx, rating)
}
func (s *ratingRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopRatingRepo() *ratingRepoStub {
	return &ratingRepoStub{
		getByIDFn:           func(_ context.Context, _ uint) (*models.Rating, error) { return &models.Rating{}, nil },
		getByUserAndSpaceFn: func(_ context.Context, _, _ uint) (*models.Rating, error) { return nil, nil },
		averageForSpaceFn:   func(_ context.Context, _ uint) (*float64, error) { return nil, nil },
		createFn:            func(_ context.Context, _ *models.Rating) error { return nil },
		updateFn:            func(_ context.Context, _ *models.Rating) error { return nil },
		deleteFn:            func(_ context.Context, _ uint) error { return nil },
	}
}

// engagementRepoStub is a stub for repository.EngagementRepository.
type engagementRepoStub struct {
	likeExistsFn      func(context.Context, uint, uint) (bool, error)
	createLikeFn      func(context.Context, *models.Like) error
	deleteLikeFn      func(context.Context, uint, uint) error
	listLikedSpacesFn func(context.Context, uint) ([]models.Space, error)
	visitExistsFn     func(context.Context, uint, uint) (bool, error)
	createVisitFn     func(context.Context, *models.Visit) error
	listVisitsFn      func(context.Context, uint) ([]models.Visit, error)
}

func (s *engagementRepoStub) LikeExists(ctx context.Context, userID, spaceID uint) (bool, error) {
	return s.likeExistsFn(ctx, userID, spaceID)
}
func (s *engagementRepoStub) CreateLike(ctx context.Context, like *models.Like) error {
	return s.createLikeFn(ctx, like)
}
func (s *engagementRepoStub) DeleteLike(ctx context.Context, userID, spaceID uint) error {
	return s.deleteLikeFn(ctx, userID, spaceID)
}
func (s *engagementRepoStub) ListLikedSpaces(ctx context.Context, userID uint) ([]models.Space, error) {
	return s.listLikedSpacesFn(ctx, userID)
}
func (s *engagementRepoStub) VisitExists(ctx context.Context, userID, spaceID uint) (bool, error) {
	return s.visitExistsFn(ctx, userID, spaceID)
}
func (s *engagementRepoStub) CreateVisit(ctx context.Context, visit *models.Visit) error {
	return s.createVisitFn(ctx, visit)
}
func (s *engagementRepoStub) ListVisits(ctx context.Context, userID uint) ([]models.Visit, error) {
	return s.listVisitsFn(ctx, userID)
}

func noopEngagementRepo() *engagementRepoStub {
	return &engagementRepoStub{
		likeExistsFn:      func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		createLikeFn:      func(_ context.Context, _ *models.Like) error { return nil },
		deleteLikeFn:      func(_ context.Context, _, _ uint) error { return nil },
		listLikedSpacesFn: func(_ context.Context, _ uint) ([]models.Space, error) { return nil, nil },
		visitExistsFn:     func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		createVisitFn:     func(_ context.Context, _ *models.Visit) error { return nil },
		listVisitsFn:      func(_ context.Context, _ uint) ([]models.Visit, error) { return nil, nil },
	}
}
