package user

import (
	"context"
	"errors"
	"sync"
	"testing"

	"video-app/pkg/model"
	userRepo "video-app/service-api/internal/repository/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type inMemoryUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]model.User
	failGet error
}

func newInMemoryUserRepo() *inMemoryUserRepo {
	return &inMemoryUserRepo{byEmail: make(map[string]model.User)}
}

func (r *inMemoryUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[user.Email]; exists {
		return userRepo.ErrDuplicateEmail
	}
	r.byEmail[user.Email] = *user
	return nil
}

func (r *inMemoryUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGet != nil {
		return nil, r.failGet
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *inMemoryUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGet != nil {
		return nil, r.failGet
	}
	for _, u := range r.byEmail {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func newTestService() (*userService, *inMemoryUserRepo) {
	repo := newInMemoryUserRepo()
	svc := NewUserService(repo).(*userService)
	svc.cost = bcrypt.MinCost
	return svc, repo
}

func TestCreate_NormalizesEmailAndHashesPassword(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	profile, err := svc.Create(ctx, "  Ada ", " Ada@Example.COM ", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, "ada@example.com", profile.Email)
	assert.NotEqual(t, uuid.Nil, profile.ID)
	assert.False(t, profile.CreatedAt.IsZero())

	stored := repo.byEmail["ada@example.com"]
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestCreate_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "A", "a@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "B", "A@X.com", "other-secret")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestFindByEmail_CaseInsensitive(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "A", "a@x.com", "secret1")
	require.NoError(t, err)

	user, err := svc.FindByEmail(ctx, "A@X.COM")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, user.PasswordHash)

	missing, err := svc.FindByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindByID(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "A", "a@x.com", "secret1")
	require.NoError(t, err)

	found, err := svc.FindByID(ctx, created.ID.String())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, *created, *found)

	for _, id := range []string{"", "not-a-uuid", "123", uuid.NewString()} {
		profile, err := svc.FindByID(ctx, id)
		assert.NoError(t, err, id)
		assert.Nil(t, profile, id)
	}

	repo.failGet = errors.New("connection reset")
	_, err = svc.FindByID(ctx, created.ID.String())
	assert.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "A", "a@x.com", "secret1")
	require.NoError(t, err)
	user, err := svc.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	tests := []struct {
		candidate string
		want      bool
	}{
		{candidate: "secret1", want: true},
		{candidate: "secret2", want: false},
		{candidate: "secret", want: false},
		{candidate: "Secret1", want: false},
		{candidate: "", want: false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.VerifyPassword(user, tt.candidate), tt.candidate)
	}

	assert.False(t, svc.VerifyPassword(nil, "secret1"))
}
