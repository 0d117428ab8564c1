package middleware

import (
	stdErrors "errors"
	"strings"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-voiceid/errors"
	"github.com/johnquangdev/meeting-voiceid/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-voiceid/pkg/jwt"
)

// Context keys set by EchoAuth
const (
	UserIDKey = "user_id"
	EmailKey  = "email"
	NameKey   = "name"
	RoleKey   = "role"
)

// TokenValidator parses bearer tokens
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// EchoAuth returns an Echo middleware that validates the bearer JWT and sets
// the reviewer identity into the Echo context under the keys above
func EchoAuth(tokens TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return unauthorized(c, errors.ErrUnauthenticated())
			}

			claims, err := tokens.ValidateAccessToken(token)
			if err != nil {
				appErr := errors.ErrInvalidToken()
				if stdErrors.Is(err, gojwt.ErrTokenExpired) {
					appErr = errors.ErrTokenExpired()
				}
				return unauthorized(c, appErr)
			}

			c.Set(UserIDKey, claims.UserID)
			c.Set(EmailKey, claims.Email)
			c.Set(NameKey, claims.Name)
			c.Set(RoleKey, claims.Role)

			return next(c)
		}
	}
}

// extractToken reads the Authorization header, then the access_token cookie
func extractToken(c echo.Context) string {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}

func unauthorized(c echo.Context, appErr errors.AppError) error {
	return c.JSON(appErr.HTTPCode, common.ErrorResponse{
		Code:    appErr.Code.String(),
		Message: appErr.Message,
	})
}
