package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-management/internal/domain"
	"task-management/internal/errors"
)

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name           string
		registration   domain.UserRegistration
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name: "should register user with valid data",
			registration: domain.UserRegistration{
				Username:  "alice",
				Email:     "alice@example.com",
				Password:  "password123",
				FirstName: "Alice",
				LastName:  "Smith",
			},
		},
		{
			name: "should trim surrounding whitespace from username and email",
			registration: domain.UserRegistration{
				Username: "  bob  ",
				Email:    "  bob@example.com  ",
				Password: "password123",
			},
		},
		{
			name: "should return validation error for short username",
			registration: domain.UserRegistration{
				Username: "ab",
				Email:    "ab@example.com",
				Password: "password123",
			},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
			},
		},
		{
			name: "should return validation error for invalid email",
			registration: domain.UserRegistration{
				Username: "carol",
				Email:    "not-an-email",
				Password: "password123",
			},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
			},
		},
		{
			name: "should return validation error for short password",
			registration: domain.UserRegistration{
				Username: "dave",
				Email:    "dave@example.com",
				Password: "12345",
			},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, _ := newTestUserService(t)
			ctx := context.Background()

			user, err := users.Register(ctx, tt.registration)

			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			assert.NotZero(t, user.ID)
			assert.True(t, user.IsActive)
			assert.NotContains(t, user.Username, " ")
			assert.NotContains(t, user.Email, " ")
		})
	}
}

func TestUserService_Register_Conflicts(t *testing.T) {
	users, _ := newTestUserService(t)
	ctx := context.Background()

	registerTestUser(t, users, "alice")

	_, err := users.Register(ctx, domain.UserRegistration{
		Username: "alice",
		Email:    "other@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))

	_, err = users.Register(ctx, domain.UserRegistration{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))
}

func TestUserService_Authenticate(t *testing.T) {
	users, _ := newTestUserService(t)
	ctx := context.Background()

	registered := registerTestUser(t, users, "alice")

	t.Run("should authenticate with correct credentials", func(t *testing.T) {
		session, err := users.Authenticate(ctx, "alice", "password123")
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, registered.ID, session.User.ID)
		assert.Equal(t, "alice", session.User.Username)
	})

	t.Run("should reject wrong password", func(t *testing.T) {
		session, err := users.Authenticate(ctx, "alice", "wrongpassword")
		require.Error(t, err)
		assert.Nil(t, session)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeUnauthenticated))
	})

	t.Run("should reject unknown username", func(t *testing.T) {
		session, err := users.Authenticate(ctx, "nobody", "password123")
		require.Error(t, err)
		assert.Nil(t, session)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeUnauthenticated))
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		_, errUnknown := users.Authenticate(ctx, "nobody", "password123")
		_, errWrong := users.Authenticate(ctx, "alice", "wrongpassword")
		require.Error(t, errUnknown)
		require.Error(t, errWrong)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})
}

func TestUserService_Authenticate_InactiveUser(t *testing.T) {
	users, repo := newTestUserService(t)
	ctx := context.Background()

	registered := registerTestUser(t, users, "alice")

	dbUser, err := repo.GetUser(ctx, registered.ID)
	require.NoError(t, err)
	dbUser.IsActive = false
	require.NoError(t, repo.UpdateUser(ctx, dbUser))

	session, err := users.Authenticate(ctx, "alice", "password123")
	require.Error(t, err)
	assert.Nil(t, session)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeUnauthenticated))
}

func TestUserService_ChangePassword(t *testing.T) {
	users, _ := newTestUserService(t)
	ctx := context.Background()

	registered := registerTestUser(t, users, "alice")

	t.Run("should return false for wrong current password", func(t *testing.T) {
		changed, err := users.ChangePassword(ctx, registered.ID, "wrongpassword", "newpassword1")
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("should return false for absent user", func(t *testing.T) {
		changed, err := users.ChangePassword(ctx, 99999, "password123", "newpassword1")
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("should change password and invalidate the old one", func(t *testing.T) {
		changed, err := users.ChangePassword(ctx, registered.ID, "password123", "newpassword1")
		require.NoError(t, err)
		assert.True(t, changed)

		_, err = users.Authenticate(ctx, "alice", "password123")
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeUnauthenticated))

		session, err := users.Authenticate(ctx, "alice", "newpassword1")
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
	})
}

func TestUserService_Update(t *testing.T) {
	users, _ := newTestUserService(t)
	ctx := context.Background()

	alice := registerTestUser(t, users, "alice")
	registerTestUser(t, users, "bob")

	t.Run("should update only supplied fields", func(t *testing.T) {
		firstName := "Alice"
		updated, err := users.Update(ctx, alice.ID, domain.UserUpdate{FirstName: &firstName})
		require.NoError(t, err)
		assert.Equal(t, "Alice", updated.FirstName)
		assert.Equal(t, alice.Email, updated.Email)
		require.NotNil(t, updated.UpdatedAt)
	})

	t.Run("should reject email already taken by another user", func(t *testing.T) {
		email := "bob@example.com"
		_, err := users.Update(ctx, alice.ID, domain.UserUpdate{Email: &email})
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))
	})

	t.Run("should allow changing email to a fresh address", func(t *testing.T) {
		email := "alice.new@example.com"
		updated, err := users.Update(ctx, alice.ID, domain.UserUpdate{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, email, updated.Email)
	})
}

func TestUserService_Delete(t *testing.T) {
	users, tasks, _ := newTestServices(t)
	ctx := context.Background()

	alice := registerTestUser(t, users, "alice")
	task := createTestTask(t, tasks, alice.ID, "orphan me")

	deleted, err := users.Delete(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Owned tasks are cascade-deleted with the account.
	_, err = tasks.GetByID(ctx, task.ID, alice.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	deleted, err = users.Delete(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
