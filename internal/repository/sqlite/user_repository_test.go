package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"users-api/internal/domain"
	"users-api/internal/repository"
)

func setupRepo(t *testing.T) repository.UserRepository {
	t.Helper()
	db, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func newUser(email, token string) *domain.User {
	return &domain.User{
		Email:        email,
		PasswordHash: "hash",
		AuthToken:    token,
		FirstName:    "Jane",
		LastName:     "Doe",
		Bio:          "bio",
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	u := newUser("jane@example.com", "tok-1")
	id, err := repo.Create(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", byID.Email)
	assert.Equal(t, "Jane", byID.FirstName)

	byEmail, err := repo.GetByEmail(ctx, "JANE@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)

	byToken, err := repo.GetByAuthToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, id, byToken.ID)
}

func TestGet_NotFound(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetByAuthToken(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, newUser("jane@example.com", "tok-1"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newUser("jane@example.com", "tok-2"))
	assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestCreate_DuplicateToken(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, newUser("a@example.com", "tok-1"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newUser("b@example.com", "tok-1"))
	assert.ErrorIs(t, err, repository.ErrTokenTaken)
}

func TestUpdate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	u := newUser("jane@example.com", "tok-1")
	_, err := repo.Create(ctx, u)
	require.NoError(t, err)

	u.Email = "new@example.com"
	u.PasswordHash = "hash-2"
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
	assert.Equal(t, "hash-2", got.PasswordHash)
	assert.Equal(t, "Jane", got.FirstName)

	missing := newUser("x@example.com", "tok-x")
	missing.ID = 1234
	assert.ErrorIs(t, repo.Update(ctx, missing), repository.ErrNotFound)
}

func TestUpdateAuthToken(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	u := newUser("jane@example.com", "tok-1")
	_, err := repo.Create(ctx, u)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateAuthToken(ctx, u.ID, "tok-2"))

	_, err = repo.GetByAuthToken(ctx, "tok-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	got, err := repo.GetByAuthToken(ctx, "tok-2")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestDeleteAndCount(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	a := newUser("a@example.com", "tok-a")
	_, err := repo.Create(ctx, a)
	require.NoError(t, err)
	_, err = repo.Create(ctx, newUser("b@example.com", "tok-b"))
	require.NoError(t, err)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), repository.ErrNotFound)

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
