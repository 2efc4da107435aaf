package user

import (
	"context"
	"os"
	"testing"
	"time"

	"video-app/pkg/database/dbtest"
	"video-app/pkg/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pg *dbtest.Server

func TestMain(m *testing.M) {
	os.Exit(dbtest.Run(m, &pg))
}

func newTestRepository(t *testing.T) Repository {
	t.Helper()
	if pg == nil {
		t.Skip("embedded postgres not running")
	}
	pg.Reset(t, "users")
	return NewRepository(pg.DB)
}

func newUser(email string) *model.User {
	return &model.User{
		ID:           uuid.New(),
		Name:         "Ada",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	user := newUser("ada@example.com")
	require.NoError(t, repo.Create(ctx, user))

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, user.PasswordHash, byEmail.PasswordHash)
	assert.True(t, user.CreatedAt.Equal(byEmail.CreatedAt))

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "ada@example.com", byID.Email)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("ada@example.com")))

	err := repo.Create(ctx, newUser("ada@example.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestGet_Unknown(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	byEmail, err := repo.GetByEmail(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, byEmail)

	byID, err := repo.GetByID(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, byID)
}
