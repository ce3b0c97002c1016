package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const claimsContextKey = "auth.claims"

// RequireRoles gates an echo route behind a valid bearer token carrying at
// least one of the given roles. With no roles listed, any valid token passes.
// Validated claims are stored on the context for handlers that need the
// caller's identity.
func RequireRoles(validator TokenValidator, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractBearerToken(c.Request())
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
			}
			claims, err := validator.Validate(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if len(roles) > 0 && !claims.HasAnyRole(roles...) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// ClaimsFromContext returns the claims RequireRoles stored, or nil when the
// route was not gated.
func ClaimsFromContext(c echo.Context) *Claims {
	claims, _ := c.Get(claimsContextKey).(*Claims)
	return claims
}
