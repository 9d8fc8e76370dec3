package auth

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "storehub/internal/errors"
	"storehub/internal/model"
)

// identityContextKey is where the middleware stores the verified claims.
const identityContextKey = "identity"

// Authenticate returns middleware that extracts a bearer token from the
// Authorization header and verifies it through the JWT service. A missing
// token yields 401; a present but unverifiable token yields 403. The verified
// claims are attached to the request context.
func Authenticate(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: identityContextKey,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateToken(tokenString)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var extractionErr *echojwt.TokenExtractionError
			if errors.As(err, &extractionErr) {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "Access token required",
					Code:  "TOKEN_REQUIRED",
				})
			}
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "Invalid token",
				Code:  "INVALID_TOKEN",
			})
		},
	})
}

// CallerClaims returns the verified identity claims attached by Authenticate.
func CallerClaims(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(identityContextKey).(*Claims)
	return claims, ok
}

// requireRole builds a role gate on top of Authenticate. A role violation is
// 403 Forbidden, distinct from the 401 of a missing token.
func requireRole(allowed func(model.Role) bool, message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := CallerClaims(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "Access token required",
					Code:  "TOKEN_REQUIRED",
				})
			}
			if !allowed(claims.Role) {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Error: message,
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}

// RequireAdmin allows only system_admin callers.
func RequireAdmin() echo.MiddlewareFunc {
	return requireRole(model.Role.IsAdmin, "Access denied. Admin role required.")
}

// RequireUser allows normal_user and system_admin callers.
func RequireUser() echo.MiddlewareFunc {
	return requireRole(model.Role.CanRate, "Access denied. User role required.")
}

// RequireStoreOwner allows store_owner and system_admin callers.
func RequireStoreOwner() echo.MiddlewareFunc {
	return requireRole(model.Role.CanViewOwnerDashboard, "Access denied. Store owner role required.")
}
