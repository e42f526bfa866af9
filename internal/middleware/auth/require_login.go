package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/catalog_api/internal/logging"
	"github.com/Skotchmaster/catalog_api/internal/tokens"
)

var ErrMissingToken = errors.New("missing token")

type TokenParser interface {
	Parse(token string) (*tokens.Claims, error)
}

type Authenticator struct {
	Tokens TokenParser
}

func NewAuthenticator(p TokenParser) *Authenticator {
	return &Authenticator{Tokens: p}
}

type ValidatorFunc func(claims *tokens.Claims) error

func (a *Authenticator) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return a.requireAuthWithValidator(next, nil)
}

func (a *Authenticator) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context())

		raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			l.Warn("auth_failed", "status", http.StatusUnauthorized, "reason", ErrMissingToken.Error())
			return echo.NewHTTPError(http.StatusUnauthorized, ErrMissingToken.Error())
		}

		claims, err := a.Tokens.Parse(raw)
		if err != nil {
			l.Warn("auth_failed", "status", http.StatusUnauthorized, "reason", err.Error())
			if errors.Is(err, tokens.ErrTokenExpired) {
				return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		if validator != nil {
			if err := validator(claims); err != nil {
				l.Warn("auth_failed", "status", http.StatusForbidden, "reason", err.Error(), "user_id", claims.UserID)
				return echo.NewHTTPError(http.StatusForbidden, ErrForbidden.Error())
			}
		}

		setUserContext(c, claims)
		c.SetRequest(c.Request().WithContext(logging.IntoContext(
			c.Request().Context(),
			l.With("user_id", claims.UserID, "role", string(claims.Role)),
		)))
		return next(c)
	}
}
