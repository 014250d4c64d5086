package middleware

import (
	"strings"

	"fashion-cart/internal/model"
	"fashion-cart/internal/service"

	"github.com/labstack/echo/v4"
)

const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"

	userIDKey = "user_id"
	emailKey  = "user_email"
	roleKey   = "user_role"
)

type TokenParser interface {
	ParseAccess(token string) (*service.Claims, error)
}

// Authenticate reads the access token from the accessToken cookie, falling
// back to an Authorization bearer header.
func Authenticate(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := tokens.ParseAccess(accessToken(c))
			if err != nil {
				return err
			}

			c.Set(userIDKey, claims.UserID)
			c.Set(emailKey, claims.Email)
			c.Set(roleKey, claims.Role)
			return next(c)
		}
	}
}

// RequireSuperAdmin must run after Authenticate.
func RequireSuperAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IsSuperAdmin(c) {
				return model.NewError(model.ErrForbidden, "Access denied! Super admin only")
			}
			return next(c)
		}
	}
}

func accessToken(c echo.Context) string {
	if cookie, err := c.Cookie(AccessCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

func Email(c echo.Context) string {
	email, _ := c.Get(emailKey).(string)
	return email
}

func Role(c echo.Context) model.Role {
	role, _ := c.Get(roleKey).(model.Role)
	return role
}

func IsSuperAdmin(c echo.Context) bool {
	return Role(c) == model.RoleSuperAdmin
}
