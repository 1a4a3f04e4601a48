package service

import (
	"context"
	"errors"
	"strings"

	"github.com/qaztour/qaztour-api/internal/domain"
	"github.com/qaztour/qaztour-api/internal/repository/ports"
	"github.com/qaztour/qaztour-api/internal/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("username already taken")
	ErrRegisterValidation = errors.New("registration validation failed")
)

type AuthService struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	tokens   *util.JWTManager
}

func NewAuthService(users ports.UserRepository, profiles ports.ProfileRepository, tokens *util.JWTManager) *AuthService {
	return &AuthService{users: users, profiles: profiles, tokens: tokens}
}

type RegisterInput struct {
	Username string
	Password string
	Email    string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrRegisterValidation
	}
	if err := util.ValidatePassword(input.Password); err != nil {
		return nil, ErrRegisterValidation
	}

	hash, salt, err := util.DerivePassword(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		PasswordSalt: salt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	// Every account gets an empty profile so /profiles/me/ never 404s.
	if _, err := s.profiles.GetOrCreate(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues the access/refresh pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (*util.TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.tokens.GeneratePair(user.ID, user.Username, user.IsStaff)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return s.tokens.RefreshAccess(refreshToken)
}

// Authenticate resolves a bearer access token to its user. The staff flag is
// always re-read from the database, not from the token, so a demoted admin
// loses privilege as soon as the next request hits.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.tokens.ParseAccess(accessToken)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}
