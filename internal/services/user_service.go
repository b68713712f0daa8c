package services

import (
	"context"
	"strings"
	"time"

	"task-management/internal/auth"
	"task-management/internal/domain"
	"task-management/internal/errors"
	"task-management/internal/repository/sqlite"
	"task-management/internal/validation"
)

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	repo          sqlite.Repository
	hasher        auth.PasswordHasher
	tokens        *auth.TokenIssuer
	mapper        *domain.Mapper
	userValidator *validation.UserValidator
}

// NewUserService creates a new UserService instance
func NewUserService(repo sqlite.Repository, hasher auth.PasswordHasher, tokens *auth.TokenIssuer) UserService {
	return &userServiceImpl{
		repo:          repo,
		hasher:        hasher,
		tokens:        tokens,
		mapper:        domain.NewMapper(),
		userValidator: validation.NewUserValidator(),
	}
}

// Register creates a new account. Username and email are checked for
// uniqueness before insertion; the unique indexes close the remaining
// race, surfacing as the same Conflict outcome.
func (u *userServiceImpl) Register(ctx context.Context, reg domain.UserRegistration) (*domain.User, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)

	if err := u.userValidator.ValidateRegistration(reg); err != nil {
		return nil, errors.NewValidationError("invalid registration", err)
	}

	exists, err := u.repo.UsernameExists(ctx, reg.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.NewConflictError("username")
	}

	exists, err = u.repo.EmailExists(ctx, reg.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.NewConflictError("email")
	}

	hash, err := u.hasher.Hash(reg.Password)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeDatabase, "hash password")
	}

	dbUser := u.mapper.User.ToDatabase(domain.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	})

	if err := u.repo.CreateUser(ctx, &dbUser); err != nil {
		return nil, err
	}

	user := u.mapper.User.FromDatabase(dbUser)
	return &user, nil
}

// Authenticate verifies credentials and issues a session token. The
// observable outcome never distinguishes an unknown username, an inactive
// account, or a wrong password.
func (u *userServiceImpl) Authenticate(ctx context.Context, username, password string) (*AuthSession, error) {
	if err := u.userValidator.ValidateLogin(username, password); err != nil {
		return nil, errors.NewValidationError("invalid credentials", err)
	}

	dbUser, err := u.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewUnauthenticatedError()
		}
		return nil, err
	}

	if !dbUser.IsActive || !u.hasher.Verify(password, dbUser.PasswordHash) {
		return nil, errors.NewUnauthenticatedError()
	}

	user := u.mapper.User.FromDatabase(*dbUser)
	token, expiresAt, err := u.tokens.Issue(user, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return &AuthSession{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// ChangePassword re-hashes and persists a new password. It returns false
// rather than an error when the user is absent or the current password
// does not verify. Previously issued tokens stay valid until expiry.
func (u *userServiceImpl) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) (bool, error) {
	if err := u.userValidator.ValidatePasswordChange(currentPassword, newPassword); err != nil {
		return false, errors.NewValidationError("invalid password change", err)
	}

	dbUser, err := u.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return false, nil
		}
		return false, err
	}

	if !u.hasher.Verify(currentPassword, dbUser.PasswordHash) {
		return false, nil
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return false, errors.WrapError(err, errors.ErrorTypeDatabase, "hash password")
	}

	now := time.Now().UTC()
	dbUser.PasswordHash = hash
	dbUser.UpdatedAt = &now

	if err := u.repo.UpdateUser(ctx, dbUser); err != nil {
		return false, err
	}
	return true, nil
}

// GetByID retrieves a user by ID
func (u *userServiceImpl) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	dbUser, err := u.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user := u.mapper.User.FromDatabase(*dbUser)
	return &user, nil
}

// GetByUsername retrieves a user by username
func (u *userServiceImpl) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	dbUser, err := u.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	user := u.mapper.User.FromDatabase(*dbUser)
	return &user, nil
}

// Update applies a partial update. Only supplied fields overwrite; a
// changed email is re-checked for uniqueness first.
func (u *userServiceImpl) Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	if err := u.userValidator.ValidateUpdate(update); err != nil {
		return nil, errors.NewValidationError("invalid user update", err)
	}

	dbUser, err := u.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Email != nil && *update.Email != dbUser.Email {
		exists, err := u.repo.EmailExists(ctx, *update.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errors.NewConflictError("email")
		}
		dbUser.Email = *update.Email
	}
	if update.FirstName != nil {
		dbUser.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		dbUser.LastName = *update.LastName
	}

	now := time.Now().UTC()
	dbUser.UpdatedAt = &now

	if err := u.repo.UpdateUser(ctx, dbUser); err != nil {
		return nil, err
	}

	user := u.mapper.User.FromDatabase(*dbUser)
	return &user, nil
}

// Delete removes a user, returning false if no such user exists. Owned
// tasks are removed by the schema-level cascade.
func (u *userServiceImpl) Delete(ctx context.Context, id int64) (bool, error) {
	err := u.repo.DeleteUser(ctx, id)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
