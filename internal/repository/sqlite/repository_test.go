package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-management/internal/errors"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(":memory:")
	require.NoError(t, err, "failed to create in-memory repository")
	t.Cleanup(func() { repo.Close() })
	return repo
}

func insertTestUser(t *testing.T, repo *SQLiteRepository, username string) *User {
	t.Helper()
	user := &User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	require.NotZero(t, user.ID)
	return user
}

func insertTestTask(t *testing.T, repo *SQLiteRepository, ownerID int64, title string) *Task {
	t.Helper()
	task := &Task{
		Title:     title,
		Priority:  2,
		Status:    1,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.CreateTask(context.Background(), task))
	require.NotZero(t, task.ID)
	return task
}

func TestRepository_UserCRUD(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	user := insertTestUser(t, repo, "alice")

	got, err := repo.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.True(t, got.IsActive)

	byName, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	exists, err := repo.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.UsernameExists(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, exists)

	now := time.Now().UTC()
	got.FirstName = "Alice"
	got.UpdatedAt = &now
	require.NoError(t, repo.UpdateUser(ctx, got))

	updated, err := repo.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.FirstName)
	require.NotNil(t, updated.UpdatedAt)

	require.NoError(t, repo.DeleteUser(ctx, user.ID))
	_, err = repo.GetUser(ctx, user.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestRepository_CreateUser_UniqueViolations(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	insertTestUser(t, repo, "alice")

	t.Run("duplicate username becomes a conflict", func(t *testing.T) {
		err := repo.CreateUser(ctx, &User{
			Username:     "alice",
			Email:        "different@example.com",
			PasswordHash: "hash",
			IsActive:     true,
			CreatedAt:    time.Now().UTC(),
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))
	})

	t.Run("duplicate email becomes a conflict", func(t *testing.T) {
		err := repo.CreateUser(ctx, &User{
			Username:     "alice2",
			Email:        "alice@example.com",
			PasswordHash: "hash",
			IsActive:     true,
			CreatedAt:    time.Now().UTC(),
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))
	})
}

func TestRepository_TaskCRUD(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	owner := insertTestUser(t, repo, "alice")
	task := insertTestTask(t, repo, owner.ID, "write tests")

	got, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "write tests", got.Title)
	assert.Equal(t, owner.ID, got.OwnerID)
	assert.Nil(t, got.CompletedAt)

	now := time.Now().UTC()
	got.Status = 3
	got.CompletedAt = &now
	got.UpdatedAt = &now
	require.NoError(t, repo.UpdateTask(ctx, got))

	updated, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	assert.WithinDuration(t, now, *updated.CompletedAt, time.Second)

	require.NoError(t, repo.DeleteTask(ctx, task.ID))
	_, err = repo.GetTask(ctx, task.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestRepository_ForeignKeyCascade(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	owner := insertTestUser(t, repo, "alice")
	task := insertTestTask(t, repo, owner.ID, "doomed")

	require.NoError(t, repo.DeleteUser(ctx, owner.ID))

	_, err := repo.GetTask(ctx, task.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestRepository_CreateTask_MissingOwnerFails(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	err := repo.CreateTask(ctx, &Task{
		Title:     "orphan",
		Priority:  1,
		Status:    1,
		OwnerID:   99999,
		CreatedAt: time.Now().UTC(),
	})
	assert.Error(t, err)
}

func TestRepository_SearchTasks(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	alice := insertTestUser(t, repo, "alice")
	bob := insertTestUser(t, repo, "bob")

	due := time.Now().UTC().Add(24 * time.Hour)
	mine := &Task{
		Title:       "groceries",
		Description: "milk and eggs",
		Priority:    1,
		Status:      1,
		OwnerID:     alice.ID,
		CreatedAt:   time.Now().UTC(),
		DueDate:     &due,
	}
	require.NoError(t, repo.CreateTask(ctx, mine))
	insertTestTask(t, repo, alice.ID, "laundry")
	insertTestTask(t, repo, bob.ID, "groceries")

	t.Run("owner scoping is always applied", func(t *testing.T) {
		found, err := repo.SearchTasks(ctx, TaskSearchOptions{
			OwnerID: alice.ID, Limit: 10,
		})
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("search matches title or description", func(t *testing.T) {
		found, err := repo.SearchTasks(ctx, TaskSearchOptions{
			OwnerID: alice.ID, SearchTerm: "eggs", Limit: 10,
		})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, mine.ID, found[0].ID)
	})

	t.Run("count agrees with unpaginated search", func(t *testing.T) {
		count, err := repo.CountTasks(ctx, TaskSearchOptions{OwnerID: alice.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("due date range bounds are inclusive", func(t *testing.T) {
		from := due.Add(-time.Hour)
		to := due.Add(time.Hour)
		found, err := repo.SearchTasks(ctx, TaskSearchOptions{
			OwnerID: alice.ID, DueDateFrom: &from, DueDateTo: &to, Limit: 10,
		})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, mine.ID, found[0].ID)
	})

	t.Run("limit and offset paginate deterministically", func(t *testing.T) {
		first, err := repo.SearchTasks(ctx, TaskSearchOptions{
			OwnerID: alice.ID, Limit: 1, Offset: 0,
		})
		require.NoError(t, err)
		second, err := repo.SearchTasks(ctx, TaskSearchOptions{
			OwnerID: alice.ID, Limit: 1, Offset: 1,
		})
		require.NoError(t, err)
		require.Len(t, first, 1)
		require.Len(t, second, 1)
		assert.NotEqual(t, first[0].ID, second[0].ID)
	})
}

func TestRepository_SearchTasks_OrderedNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	alice := insertTestUser(t, repo, "alice")
	for i := 1; i <= 5; i++ {
		insertTestTask(t, repo, alice.ID, fmt.Sprintf("task %d", i))
	}

	found, err := repo.SearchTasks(ctx, TaskSearchOptions{OwnerID: alice.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, found, 5)
	for i := 1; i < len(found); i++ {
		assert.True(t, found[i-1].ID > found[i].ID, "expected descending ids for same-second rows")
	}
}

func TestRepository_ListOverdueTasks(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	alice := insertTestUser(t, repo, "alice")
	now := time.Now().UTC()

	seed := func(title string, due *time.Time, status int) *Task {
		task := &Task{
			Title:     title,
			Priority:  2,
			Status:    status,
			OwnerID:   alice.ID,
			CreatedAt: now,
			DueDate:   due,
		}
		require.NoError(t, repo.CreateTask(ctx, task))
		return task
	}

	wayPast := now.Add(-72 * time.Hour)
	recentPast := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	oldest := seed("oldest", &wayPast, 1)
	recent := seed("recent", &recentPast, 2)
	seed("completed", &recentPast, 3)
	seed("future", &future, 1)
	seed("no due date", nil, 1)

	overdue, err := repo.ListOverdueTasks(ctx, alice.ID, now)
	require.NoError(t, err)
	require.Len(t, overdue, 2)
	assert.Equal(t, oldest.ID, overdue[0].ID)
	assert.Equal(t, recent.ID, overdue[1].ID)
}

func TestRepository_TimesRoundTripAsUTC(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	alice := insertTestUser(t, repo, "alice")

	loc := time.FixedZone("UTC+5", 5*3600)
	local := time.Date(2026, 3, 14, 15, 9, 26, 0, loc)
	task := &Task{
		Title:     "timezone check",
		Priority:  1,
		Status:    1,
		OwnerID:   alice.ID,
		CreatedAt: local,
		DueDate:   &local,
	}
	require.NoError(t, repo.CreateTask(ctx, task))

	got, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(local))
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(local))
}
