package auth

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/catalog_api/internal/models"
	"github.com/Skotchmaster/catalog_api/internal/tokens"
)

var ErrForbidden = errors.New("forbidden")

// Require allows the request only when the token carries exactly role.
// An admin token does not satisfy a user requirement.
func Require(claims *tokens.Claims, role models.Role) error {
	if claims == nil || claims.Role != role {
		return ErrForbidden
	}
	return nil
}

// RequireRole authenticates the request and then checks the role claim.
func (a *Authenticator) RequireRole(role models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return a.requireAuthWithValidator(next, func(claims *tokens.Claims) error {
			return Require(claims, role)
		})
	}
}
