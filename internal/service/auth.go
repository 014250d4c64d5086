package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"fashion-cart/internal/dto"
	"fashion-cart/internal/model"
	"fashion-cart/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type AuthSession struct {
	User         *model.User
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*AuthSession, error)
	// Refresh issues a new access token for a valid refresh token.
	Refresh(ctx context.Context, refreshToken string) (*AuthSession, error)
	Me(ctx context.Context, userID string) (*model.User, error)
}

type authServiceImpl struct {
	userRepo   repository.UserRepository
	tokens     *TokenManager
	bcryptCost int
}

func NewAuthService(userRepo repository.UserRepository, tokens *TokenManager) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, model.Invalid("Name, email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, model.Invalid("Invalid email address")
	}
	if len(req.Password) < minPasswordLength {
		return nil, model.Invalid(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			return nil, model.NewError(model.ErrAlreadyExists, "User with this email exists!")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*AuthSession, error) {
	invalid := model.NewError(model.ErrUnauthorized, "Invalid credentials")

	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, invalid
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, invalid
	}

	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(user)
	if err != nil {
		return nil, err
	}

	return &AuthSession{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*AuthSession, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewError(model.ErrUnauthorized, "User not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, err
	}

	return &AuthSession{User: user, AccessToken: access}, nil
}

func (s *authServiceImpl) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}
