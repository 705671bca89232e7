package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"aqarshare/admin-portal/admin-portal-backend/internal/users"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailExists        = errors.New("email already registered")
)

type Service interface {
	Register(ctx context.Context, email, name, password, role string) (*users.User, error)
	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, email, password string) (string, *users.User, error)
	GetUser(ctx context.Context, id string) (*users.User, error)
}

type authService struct {
	userRepo users.Repository
	tokens   *JWTManager
}

func NewService(userRepo users.Repository, tokens *JWTManager) Service {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Register(ctx context.Context, email, name, password, role string) (*users.User, error) {
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}
	if role != users.RoleAdmin && role != users.RoleFunder {
		return nil, fmt.Errorf("unsupported role %q", role)
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &users.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *users.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) GetUser(ctx context.Context, id string) (*users.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", id, err)
	}
	return s.userRepo.GetByID(ctx, uid)
}
