package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/catalog_api/internal/tokens"
)

const (
	claimsKey = "claims"
	userIDKey = "userID"
	roleKey   = "role"
)

func setUserContext(c echo.Context, claims *tokens.Claims) {
	c.Set(claimsKey, claims)
	c.Set(userIDKey, claims.UserID)
	c.Set(roleKey, claims.Role)
}

// ClaimsFrom returns the claims stored by RequireAuth, if any.
func ClaimsFrom(c echo.Context) (*tokens.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*tokens.Claims)
	return claims, ok && claims != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
