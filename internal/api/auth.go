package api

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Claims is the JWT payload the service issues and verifies. IsAdmin feeds
// the product-creation gate in the repository layer.
type Claims struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// isAdmin reports whether the request carries a verified token with the
// admin claim. Requests without a token are not admins.
func isAdmin(c echo.Context) bool {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return false
	}
	claims, ok := token.Claims.(*Claims)
	return ok && claims.IsAdmin
}
