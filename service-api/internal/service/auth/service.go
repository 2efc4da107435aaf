package auth

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"video-app/pkg/model"
	userService "video-app/service-api/internal/service/user"
)

const (
	// MinPasswordLength is the shortest password accepted at signup.
	MinPasswordLength = 6
	// MaxPasswordBytes is bcrypt's input limit.
	MaxPasswordBytes = 72
)

var (
	ErrMissingRegisterFields = errors.New("name, email, and password are required")
	ErrMissingLoginFields    = errors.New("email and password are required")
	ErrPasswordTooShort      = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong       = errors.New("password must be at most 72 bytes")
	ErrInvalidCredentials    = errors.New("invalid credentials")
)

// TokenIssuer issues session tokens.
type TokenIssuer interface {
	GenerateToken(userID string) (string, error)
}

// Service defines the auth service interface
type Service interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	Profile(ctx context.Context, userID string) (*model.UserProfile, error)
}

// authService provides auth-related services.
type authService struct {
	tokens      TokenIssuer
	userService userService.Service
}

// NewAuthService creates a new auth service instance.
func NewAuthService(
	tokens TokenIssuer,
	userService userService.Service,
) Service {
	return &authService{
		tokens:      tokens,
		userService: userService,
	}
}

// Register validates the request, creates the user and issues a session token
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, ErrMissingRegisterFields
	}
	if utf8.RuneCountInString(req.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if len(req.Password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	profile, err := s.userService.Create(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(profile.ID.String())
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		Token: token,
		User:  *profile,
	}, nil
}

// Login authenticates a user and returns a session token. Unknown emails and
// wrong passwords both yield ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, ErrMissingLoginFields
	}

	user, err := s.userService.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if user == nil || !s.userService.VerifyPassword(user, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		Token: token,
		User:  user.ToProfile(),
	}, nil
}

// Profile returns the public profile of userID
func (s *authService) Profile(ctx context.Context, userID string) (*model.UserProfile, error) {
	profile, err := s.userService.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, userService.ErrUserNotFound
	}
	return profile, nil
}
