package handler

import (
	"net/http"
	"time"

	"fashion-cart/internal/dto"
	"fashion-cart/internal/middleware"
	"fashion-cart/internal/model"
	"fashion-cart/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService  service.AuthService
	cookieSecure bool
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

func NewAuthHandler(authService service.AuthService, tokens *service.TokenManager, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieSecure: cookieSecure,
		accessTTL:    tokens.AccessTTL(),
		refreshTTL:   tokens.RefreshTTL(),
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.RegisterResponse{
		Response: dto.OK("User registered successfully"),
		UserID:   user.ID,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Login(ctx, &req)
	if err != nil {
		return err
	}

	h.setCookie(c, middleware.AccessCookie, session.AccessToken, h.accessTTL)
	h.setCookie(c, middleware.RefreshCookie, session.RefreshToken, h.refreshTTL)

	return c.JSON(http.StatusOK, dto.LoginResponse{
		Response: dto.OK("Login successful"),
		Token:    session.AccessToken,
		User:     dto.NewUserResponse(session.User),
	})
}

func (h *AuthHandler) RefreshToken(c echo.Context) error {
	ctx := c.Request().Context()

	cookie, err := c.Cookie(middleware.RefreshCookie)
	if err != nil || cookie.Value == "" {
		return model.NewError(model.ErrUnauthorized, "Invalid refresh token")
	}

	session, err := h.authService.Refresh(ctx, cookie.Value)
	if err != nil {
		return err
	}

	h.setCookie(c, middleware.AccessCookie, session.AccessToken, h.accessTTL)

	return c.JSON(http.StatusOK, dto.OK("Refresh token refreshed successfully"))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	h.setCookie(c, middleware.AccessCookie, "", -1)
	h.setCookie(c, middleware.RefreshCookie, "", -1)

	return c.JSON(http.StatusOK, dto.OK("User logged out successfully"))
}

func (h *AuthHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.authService.Me(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MeResponse{
		Response: dto.OK(""),
		User:     dto.NewUserResponse(user),
	})
}

// setCookie with a negative ttl expires the cookie.
func (h *AuthHandler) setCookie(c echo.Context, name, value string, ttl time.Duration) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	} else {
		cookie.MaxAge = int(ttl.Seconds())
	}
	c.SetCookie(cookie)
}
