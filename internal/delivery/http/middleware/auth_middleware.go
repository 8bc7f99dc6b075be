package middleware

import (
	"net/http"
	"strings"

	deliverycontext "patisserie/internal/delivery/context"
	"patisserie/internal/domain/entity"
	"patisserie/internal/domain/repository"
	"patisserie/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate validates the bearer token and stores the account email
// on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
		}

		email, err := m.tokenSvc.ExtractSubject(tokenString)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		deliverycontext.SetUserEmail(c, email)

		return next(c)
	}
}

// RequireAdmin checks that the authenticated account holds the ADMIN
// role. Roles live in the database, not the token, so a revocation is
// effective immediately. Must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		email := deliverycontext.GetUserEmail(c)
		if email == "" {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: identity missing"})
		}

		user, err := m.userRepo.FindByEmail(c.Request().Context(), email)
		if err != nil {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: account not found"})
		}

		if !user.HasRole(entity.RoleAdmin) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: require 'ADMIN' role"})
		}

		return next(c)
	}
}
