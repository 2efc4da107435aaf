package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"video-app/pkg/model"
	userRepo "video-app/service-api/internal/repository/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
)

// Service is the credential store: it owns password hashing and is the only
// place a password hash is read.
type Service interface {
	Create(ctx context.Context, name, email, password string) (*model.UserProfile, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.UserProfile, error)
	VerifyPassword(user *model.User, candidate string) bool
}

// userService provides user-related services.
type userService struct {
	userRepo userRepo.Repository
	cost     int
	now      func() time.Time
}

// NewUserService creates a new user service instance.
func NewUserService(userRepo userRepo.Repository) Service {
	return &userService{
		userRepo: userRepo,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// Create hashes the password and stores a new user. The email is stored
// lowercased; a taken email yields ErrUserAlreadyExists.
func (s *userService) Create(ctx context.Context, name, email, password string) (*model.UserProfile, error) {
	hashedPassword, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: hashedPassword,
		CreatedAt:    s.now().UTC(),
	}

	err = s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	profile := user.ToProfile()
	return &profile, nil
}

// FindByEmail returns the raw user record, or nil when no user matches.
func (s *userService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userRepo.GetByEmail(ctx, NormalizeEmail(email))
}

// FindByID returns the public profile, or nil when the id is unknown or is
// not a valid UUID.
func (s *userService) FindByID(ctx context.Context, id string) (*model.UserProfile, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user == nil {
		return nil, err
	}

	profile := user.ToProfile()
	return &profile, nil
}

// VerifyPassword compares candidate with the stored bcrypt hash.
func (s *userService) VerifyPassword(user *model.User, candidate string) bool {
	if user == nil || user.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(candidate)) == nil
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// hashPassword hashes a password using bcrypt
func (s *userService) hashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}
