package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fashion-cart/internal/config"
	"fashion-cart/internal/dto"
	"fashion-cart/internal/model"
	"fashion-cart/internal/repository"
	"fashion-cart/internal/testutil"

	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (AuthService, *TokenManager) {
	t.Helper()
	db := testutil.NewDB(t)
	tokens := testTokenManager()
	svc := NewAuthService(repository.NewUserRepository(db), tokens)
	svc.(*authServiceImpl).bcryptCost = bcrypt.MinCost
	return svc, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc, tokens := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Asha", Email: " Asha@Example.com ", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "asha@example.com" || user.Role != model.RoleUser {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.Password == "secret1" {
		t.Fatal("password stored in clear")
	}

	_, err = svc.Register(ctx, &dto.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	if !errors.Is(err, model.ErrAlreadyExists) {
		t.Fatalf("expected duplicate, got %v", err)
	}

	session, err := svc.Login(ctx, &dto.LoginRequest{Email: "ASHA@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := tokens.ParseAccess(session.AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.RoleUser {
		t.Fatalf("claims = %+v", claims)
	}
	if _, err := tokens.ParseAccess(session.RefreshToken); err == nil {
		t.Fatal("refresh token accepted as access token")
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "wrong"}); !errors.Is(err, model.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"}); !errors.Is(err, model.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}

	refreshed, err := svc.Refresh(ctx, session.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.User.ID != user.ID {
		t.Fatalf("refresh session = %+v", refreshed)
	}
	if _, err := svc.Refresh(ctx, session.AccessToken); !errors.Is(err, model.ErrUnauthorized) {
		t.Fatalf("access token accepted as refresh token: %v", err)
	}

	me, err := svc.Me(ctx, user.ID)
	if err != nil || me.Email != "asha@example.com" {
		t.Fatalf("me = %+v, %v", me, err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	for name, req := range map[string]*dto.RegisterRequest{
		"missing name":   {Email: "a@example.com", Password: "secret1"},
		"bad email":      {Name: "A", Email: "not-an-email", Password: "secret1"},
		"short password": {Name: "A", Email: "a@example.com", Password: "12345"},
	} {
		if _, err := svc.Register(ctx, req); !errors.Is(err, model.ErrInvalidInput) {
			t.Errorf("%s: expected invalid input, got %v", name, err)
		}
	}
}

func TestTokenExpiry(t *testing.T) {
	tokens := NewTokenManager(&config.JWT{AccessSecret: "a", RefreshSecret: "r", AccessTTL: -time.Minute})
	token, err := tokens.IssueAccess(&model.User{ID: "u1", Role: model.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = tokens.ParseAccess(token)
	if !errors.Is(err, model.ErrUnauthorized) || err.Error() != "Token expired" {
		t.Fatalf("expected expired token, got %v", err)
	}
	if _, err := tokens.ParseAccess(""); err == nil || err.Error() != "Unauthenticated user" {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}
