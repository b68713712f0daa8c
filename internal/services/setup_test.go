package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"task-management/internal/auth"
	"task-management/internal/domain"
	"task-management/internal/repository/sqlite"
)

const testSecret = "test-signing-secret-at-least-32-bytes!!"

func newTestRepo(t *testing.T) sqlite.Repository {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err, "failed to create in-memory repo")
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newTestTokenIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer([]byte(testSecret), "TaskManagement", "TaskManagementUsers", 24*time.Hour)
}

func newTestUserService(t *testing.T) (UserService, sqlite.Repository) {
	t.Helper()
	repo := newTestRepo(t)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	return NewUserService(repo, hasher, newTestTokenIssuer()), repo
}

func newTestServices(t *testing.T) (UserService, TaskService, sqlite.Repository) {
	t.Helper()
	repo := newTestRepo(t)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	return NewUserService(repo, hasher, newTestTokenIssuer()), NewTaskService(repo), repo
}

func registerTestUser(t *testing.T, users UserService, username string) *domain.User {
	t.Helper()
	user, err := users.Register(context.Background(), domain.UserRegistration{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func createTestTask(t *testing.T, tasks TaskService, ownerID int64, title string) *domain.Task {
	t.Helper()
	task, err := tasks.Create(context.Background(), domain.TaskCreate{
		Title:    title,
		Priority: domain.PriorityMedium,
	}, ownerID)
	require.NoError(t, err)
	require.NotNil(t, task)
	return task
}
