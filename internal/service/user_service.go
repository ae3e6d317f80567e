// Package service implements the business logic layer: ownership, duplicate,
// referential-integrity and aggregation policy over the repositories.
package service

import (
	"context"
	"fmt"

	"happyhour/internal/models"
	"happyhour/internal/repository"
	"happyhour/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles identity, credential and user-profile operations.
type UserService struct {
	userRepo   repository.UserRepository
	bcryptCost int
}

// RegisterInput carries the self-serve registration payload.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// CreateUserInput is the admin user-create payload; unlike self-serve
// registration it may grant the admin flag.
type CreateUserInput struct {
	RegisterInput
	IsAdmin bool
}

// UpdateUserInput is a partial profile update. Nil fields are left unchanged;
// a non-nil Password is re-hashed before storage.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{userRepo: userRepo, bcryptCost: bcryptCost}
}

// sanitized returns a copy of the user with the password hash blanked. The
// original is left intact: repositories may keep returning the same struct,
// and the stored hash must survive the response scrub.
func sanitized(user *models.User) *models.User {
	out := *user
	out.Password = ""
	return &out
}

// Authenticate verifies a username/password pair. The error is identical for
// an unknown username and a wrong password so account existence never leaks.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid username/password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid username/password")
	}
	return sanitized(user), nil
}

// Profile returns the authenticated caller's own record, looked up by the
// principal's id so the per-user cache serves repeat calls.
func (s *UserService) Profile(ctx context.Context, principal models.Principal) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return sanitized(user), nil
}

// Register creates a self-serve account. The admin flag is never set here.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	user, err := s.create(ctx, in, false)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser is the admin variant of Register and may grant the admin flag.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	return s.create(ctx, in.RegisterInput, in.IsAdmin)
}

func (s *UserService) create(ctx context.Context, in RegisterInput, isAdmin bool) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError(fmt.Sprintf("Duplicate username: %s", in.Username))
	}

	// Email carries a unique index too; checking here keeps the error
	// specific instead of surfacing as a username collision.
	existingEmail, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existingEmail != nil {
		return nil, models.NewValidationError(fmt.Sprintf("Duplicate email: %s", in.Email))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:  in.Username,
		Password:  string(hashed),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		IsAdmin:   isAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return sanitized(user), nil
}

// authorizeSelfOrAdmin gates user-profile access on the route's username.
// The check runs before any database lookup, matching the like/visit
// short-circuit: the route parameter is the owner identifier here.
func authorizeSelfOrAdmin(principal models.Principal, username string) error {
	if principal.Username != username && !principal.IsAdmin {
		return models.NewUnauthorizedError("Must be admin or logged-in user to access.")
	}
	return nil
}

// Get returns a user's profile. Permitted for the user themselves or an admin.
func (s *UserService) Get(ctx context.Context, principal models.Principal, username string) (*models.User, error) {
	if err := authorizeSelfOrAdmin(principal, username); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError(fmt.Sprintf("No user: %s", username))
	}
	return sanitized(user), nil
}

// Update applies a partial profile update. Username is immutable.
func (s *UserService) Update(ctx context.Context, principal models.Principal, username string, in UpdateUserInput) (*models.User, error) {
	if err := authorizeSelfOrAdmin(principal, username); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError(fmt.Sprintf("No user: %s", username))
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Email != nil {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = *in.Email
	}
	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.bcryptCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return sanitized(user), nil
}

// Delete removes a user. Permitted for the user themselves or an admin.
func (s *UserService) Delete(ctx context.Context, principal models.Principal, username string) error {
	if err := authorizeSelfOrAdmin(principal, username); err != nil {
		return err
	}
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError(fmt.Sprintf("No user: %s", username))
	}
	return s.userRepo.Delete(ctx, user.ID)
}

// List returns all users. Route-level middleware restricts this to admins.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]models.User, len(users))
	for i := range users {
		out[i] = *sanitized(&users[i])
	}
	return out, nil
}
